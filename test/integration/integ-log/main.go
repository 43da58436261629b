// Copyright 2023 Hedgehog
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.githedgehog.com/syslogfmt/pkg/log"
	"go.githedgehog.com/syslogfmt/pkg/log/syslog"
	"go.githedgehog.com/syslogfmt/pkg/version"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	defaultLogLevel := zapcore.InfoLevel
	defaultFacility := syslog.DefaultFacility
	defaultFraming := log.DefaultFraming
	defaultTruncation := log.TruncationSend

	app := &cli.App{
		Name:                 "integ-log",
		Usage:                "integration test for zap logger for syslog and console combined",
		UsageText:            "integ-log --log-level debug --framing octet-counting | nc -u 192.0.2.1 514",
		Description:          "Writes syslog messages to stdout and console log messages to stderr, pipe stdout into a syslog receiver",
		Version:              version.Version,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.GenericFlag{
				Name:  "log-level",
				Usage: "minimum log level to log at",
				Value: &defaultLogLevel,
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format to use: json or console (only affects serial console)",
				Value: "console",
			},
			&cli.BoolFlag{
				Name:  "log-development",
				Usage: "enables development log settings",
				Value: false,
			},
			&cli.GenericFlag{
				Name:  "syslog-facility",
				Usage: "syslog facility to use within syslog messages",
				Value: &defaultFacility,
			},
			&cli.GenericFlag{
				Name:  "framing",
				Usage: "framing of syslog messages on stdout: none, lf or octet-counting",
				Value: &defaultFraming,
			},
			&cli.IntFlag{
				Name:  "max-message-size",
				Usage: "maximum size of a syslog message in bytes, 0 means unlimited",
				Value: log.DefaultMaxMessageSize,
			},
			&cli.GenericFlag{
				Name:  "truncate",
				Usage: "what to do with syslog messages larger than the maximum size: send or discard",
				Value: &defaultTruncation,
			},
			&cli.UintFlag{
				Name:  "generate-messages",
				Usage: "number of messages to generate, 0 means indefinite number of messages",
				Value: 0,
			},
			&cli.DurationFlag{
				Name:  "generate-sleep",
				Usage: "duration to sleep between generated messages",
				Value: time.Second,
			},
			&cli.IntFlag{
				Name:  "generate-padding",
				Usage: "number of bytes of padding to add to every generated message to test truncation",
				Value: 0,
			},
		},
		Action: func(ctx *cli.Context) error {
			// run the test
			return integLog(ctx)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to run integ-log: %s\n", err)
		os.Exit(1)
	}
}

func initLoggers(logDevelopment bool, logLevel zapcore.Level, logFormat string, syslogCfg log.SyslogConfig, framing log.Framing) (log.Interface, error) {
	// initialize zap serial logger
	serialLogger, err := log.NewSerialConsole(logLevel, logFormat, logDevelopment)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize serial logger: %w", err)
	}
	serialLogger.Info("Initialized serial logger from command-line settings", zap.Bool("logDevelopment", logDevelopment), zap.String("logLevel", logLevel.String()), zap.String("logFormat", logFormat))

	// initialize zap syslog logger on stdout
	syslogLogger, err := log.NewSyslog(logLevel, logDevelopment, syslogCfg, log.NewFramedWriteSyncer(os.Stdout, framing))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize syslog logger: %w", err)
	}
	serialLogger.Info("Initialized syslog logger from command-line settings",
		zap.String("syslogFacility", syslogCfg.Facility.String()),
		zap.String("framing", framing.String()),
		zap.Int("maxMessageSize", syslogCfg.MaxMessageSize),
		zap.String("truncate", syslogCfg.Truncation.String()),
	)

	// now create a "tee" logger for both serial and syslog destinations
	return log.NewZapWrappedLogger(serialLogger, syslogLogger), nil
}

func integLog(ctx *cli.Context) error {
	// CLI flags
	logDevelopment := ctx.Bool("log-development")
	logLevel := *ctx.Generic("log-level").(*zapcore.Level)
	logFormat := ctx.String("log-format")
	framing := *ctx.Generic("framing").(*log.Framing)
	generateMessages := ctx.Uint("generate-messages")
	generateSleep := ctx.Duration("generate-sleep")
	generatePadding := ctx.Int("generate-padding")

	syslogCfg := log.DefaultSyslogConfig()
	syslogCfg.Facility = *ctx.Generic("syslog-facility").(*syslog.Facility)
	syslogCfg.MaxMessageSize = ctx.Int("max-message-size")
	syslogCfg.Truncation = *ctx.Generic("truncate").(*log.Truncation)

	// init loggers
	logger, err := initLoggers(logDevelopment, logLevel, logFormat, syslogCfg, framing)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint: errcheck

	padding := make([]byte, 0, generatePadding)
	for i := 0; i < generatePadding; i++ {
		padding = append(padding, byte('a'+i%26))
	}

	// now generate log messages, 0 means until cancelled
	for i := uint(0); generateMessages == 0 || i < generateMessages; i++ {
		logger.Info("generated log message", zap.Uint("i", i), zap.ByteString("padding", padding))
		if err := sleep(ctx.Context, generateSleep); err != nil {
			return err
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
