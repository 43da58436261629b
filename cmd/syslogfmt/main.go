package main

import (
	"fmt"
	"os"

	"go.githedgehog.com/syslogfmt/pkg/config"
	"go.githedgehog.com/syslogfmt/pkg/log"
	"go.githedgehog.com/syslogfmt/pkg/log/syslog"
	"go.githedgehog.com/syslogfmt/pkg/version"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to run syslogfmt: %s\n", err)
		os.Exit(1)
	}
}

// newApp returns the app with its own set of flag values
func newApp() *cli.App {
	defaultLogLevel := zapcore.InfoLevel
	defaultFacility := syslog.DefaultFacility
	defaultSeverity := syslog.LOG_NOTICE
	defaultTruncation := log.TruncationSend
	defaultFraming := log.DefaultFraming

	return &cli.App{
		Name:                 "syslogfmt",
		Usage:                "formats messages as RFC 5424 syslog messages",
		UsageText:            "syslogfmt --facility local4 --severity notice --app-name myproc --sd 'origin:ip=192.0.2.1' 'It is time to make the do-nuts.'",
		Description:          "Formats the message given as arguments, or every line read from stdin, and writes it to stdout",
		Version:              version.Version,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.GenericFlag{
				Name:  "facility",
				Usage: "syslog facility of the messages",
				Value: &defaultFacility,
			},
			&cli.GenericFlag{
				Name:  "severity",
				Usage: "syslog severity of the messages",
				Value: &defaultSeverity,
			},
			&cli.StringFlag{
				Name:  "hostname",
				Usage: "HOSTNAME field, preferably the FQDN",
			},
			&cli.StringFlag{
				Name:  "app-name",
				Usage: "APP-NAME field",
			},
			&cli.StringFlag{
				Name:  "proc-id",
				Usage: "PROCID field",
			},
			&cli.StringFlag{
				Name:  "msg-id",
				Usage: "MSGID field",
			},
			&cli.StringFlag{
				Name:  "timestamp",
				Usage: "'now', 'none' or a preformatted RFC 3339 timestamp",
				Value: "now",
			},
			&cli.GenericFlag{
				Name:  "sd",
				Usage: "structured data element as ID or ID:name=value,name=value, can be repeated",
				Value: &sdFlag{},
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "write the message as bytes without the UTF-8 BOM",
			},
			&cli.IntFlag{
				Name:  "buffer-size",
				Usage: "maximum size of a message in bytes, 0 means unlimited",
			},
			&cli.GenericFlag{
				Name:  "truncate",
				Usage: "what to do with messages larger than the buffer size: send or discard",
				Value: &defaultTruncation,
			},
			&cli.GenericFlag{
				Name:  "framing",
				Usage: "framing of messages on stdout: none, lf or octet-counting",
				Value: &defaultFraming,
			},
			&cli.BoolFlag{
				Name:  "escape-param-values",
				Usage: "escape '\"', '\\' and ']' in structured data param values",
			},
			&cli.PathFlag{
				Name:  "config",
				Usage: "optional JSON or YAML configuration file, flags override its settings",
			},
			&cli.GenericFlag{
				Name:  "log-level",
				Usage: "minimum log level to log at",
				Value: &defaultLogLevel,
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format to use: json, console or syslog",
				Value: "console",
			},
			&cli.BoolFlag{
				Name:  "log-development",
				Usage: "enables development log settings",
				Value: false,
			},
			&cli.PathFlag{
				Name:  "log-syslog-file",
				Usage: "also append log messages in RFC 5424 format to this file",
			},
		},
		Action: func(ctx *cli.Context) error {
			return runSyslogfmt(ctx)
		},
	}
}

func runSyslogfmt(ctx *cli.Context) error {
	logSettings := &log.LogSettings{
		Development:    ctx.Bool("log-development"),
		Level:          *ctx.Generic("log-level").(*zapcore.Level),
		Format:         ctx.String("log-format"),
		SyslogFacility: *ctx.Generic("facility").(*syslog.Facility),
		SyslogFile:     ctx.Path("log-syslog-file"),
	}
	l, err := log.NewLogger(logSettings)
	if err != nil {
		return err
	}
	defer l.Sync() //nolint: errcheck

	// read optional configuration file first
	var fileCfg *config.File
	if configPath := ctx.Path("config"); configPath != "" {
		fileCfg, err = config.ReadFromFile(configPath)
		if err != nil {
			return err
		}
	}

	flagCfg, err := configFromFlags(ctx)
	if err != nil {
		return err
	}
	cfg := config.Merge(fileCfg, flagCfg)

	e := &encoder{
		l:       l.Named("encode"),
		cfg:     cfg,
		framing: *ctx.Generic("framing").(*log.Framing),
		out:     zapcore.AddSync(ctx.App.Writer),
	}
	if ctx.NArg() > 0 {
		return e.encodeArgs(ctx.Args().Slice())
	}
	return e.encodeLines(ctx.Context, ctx.App.Reader)
}

// configFromFlags only contains the flags which were set on the command line
func configFromFlags(ctx *cli.Context) (*config.File, error) {
	ret := &config.File{
		Hostname: ctx.String("hostname"),
		AppName:  ctx.String("app-name"),
		ProcID:   ctx.String("proc-id"),
		MsgID:    ctx.String("msg-id"),
	}
	if ctx.IsSet("facility") {
		v := *ctx.Generic("facility").(*syslog.Facility)
		ret.Facility = &v
	}
	if ctx.IsSet("severity") {
		v := *ctx.Generic("severity").(*syslog.Severity)
		ret.Severity = &v
	}
	if ctx.IsSet("timestamp") {
		ret.Timestamp = ctx.String("timestamp")
	}
	if sd := ctx.Generic("sd").(*sdFlag); len(sd.elems) > 0 {
		ret.StructuredData = sd.elems
	}
	if ctx.IsSet("raw") {
		v := ctx.Bool("raw")
		ret.Raw = &v
	}
	if ctx.IsSet("buffer-size") {
		v := ctx.Int("buffer-size")
		ret.BufferSize = &v
	}
	if ctx.IsSet("truncate") {
		v := *ctx.Generic("truncate").(*log.Truncation)
		ret.Truncation = &v
	}
	if ctx.IsSet("escape-param-values") {
		v := ctx.Bool("escape-param-values")
		ret.EscapeParamValues = &v
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
