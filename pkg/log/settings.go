package log

import (
	"fmt"
	"os"

	"go.githedgehog.com/syslogfmt/pkg/log/syslog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FormatSyslog logs RFC 5424 messages to stderr, one per line
const FormatSyslog = "syslog"

type LogSettings struct {
	Level          zapcore.Level   `json:"level,omitempty"`
	Development    bool            `json:"development,omitempty"`
	Format         string          `json:"format,omitempty"`
	SyslogFacility syslog.Facility `json:"syslog_facility,omitempty"`

	// SyslogFile additionally appends RFC 5424 messages to this file, one per line
	SyslogFile string `json:"syslog_file,omitempty"`
}

// NewLogger builds the logger for the log settings. The "console" and "json" formats are
// handled by NewSerialConsole, FormatSyslog by NewSyslog. With a SyslogFile all messages are
// also written to the file by a second logger built with NewSyslog.
func NewLogger(settings *LogSettings) (Interface, error) {
	cfg := DefaultSyslogConfig()
	cfg.Facility = settings.SyslogFacility

	var loggers []*zap.Logger
	if settings.Format == FormatSyslog {
		syslogLogger, err := NewSyslog(settings.Level, settings.Development, cfg, NewFramedWriteSyncer(zapcore.AddSync(os.Stderr), DefaultFraming))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize syslog logger: %w", err)
		}
		syslogLogger.Debug("Initialized syslog logger from command-line settings", zap.String("syslogFacility", settings.SyslogFacility.String()))
		loggers = append(loggers, syslogLogger)
	} else {
		serialLogger, err := NewSerialConsole(settings.Level, settings.Format, settings.Development)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize serial logger: %w", err)
		}
		serialLogger.Debug("Initialized serial logger from command-line settings", zap.Bool("logDevelopment", settings.Development), zap.String("logLevel", settings.Level.String()), zap.String("logFormat", settings.Format))
		loggers = append(loggers, serialLogger)
	}

	if settings.SyslogFile != "" {
		// the file stays open for the lifetime of the process, just like zap's own output paths
		ws, _, err := zap.Open(settings.SyslogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open syslog file: %w", err)
		}
		fileLogger, err := NewSyslog(settings.Level, settings.Development, cfg, NewFramedWriteSyncer(ws, DefaultFraming))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize syslog file logger: %w", err)
		}
		loggers[0].Debug("Initialized syslog file logger from command-line settings", zap.String("syslogFile", settings.SyslogFile))
		loggers = append(loggers, fileLogger)
	}

	return NewZapWrappedLogger(loggers...), nil
}
