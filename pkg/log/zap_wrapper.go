package log

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// teeLogger fans every call out to a set of zap loggers
type teeLogger struct {
	loggers []*zap.Logger
}

var _ Interface = &teeLogger{}

// skips the exported logging method and log
const teeCallerSkip = 2

// NewZapWrappedLogger fans every call out to all `loggers`, e.g. the console logger and one
// built with NewSyslog. Callers are reported as the caller of the returned logger.
func NewZapWrappedLogger(loggers ...*zap.Logger) Interface {
	ls := make([]*zap.Logger, 0, len(loggers))
	for _, logger := range loggers {
		ls = append(ls, logger.WithOptions(zap.AddCallerSkip(teeCallerSkip)))
	}
	return &teeLogger{loggers: ls}
}

func (l *teeLogger) log(lvl zapcore.Level, msg string, fields []zapcore.Field) {
	for _, logger := range l.loggers {
		if ce := logger.Check(lvl, msg); ce != nil {
			ce.Write(fields...)
		}
	}
}

// sprintf only formats the message if any of the loggers is enabled for `lvl`
func (l *teeLogger) sprintf(lvl zapcore.Level, template string, args []interface{}) string {
	for _, logger := range l.loggers {
		if logger.Core().Enabled(lvl) {
			return fmt.Sprintf(template, args...)
		}
	}
	return template
}

func (l *teeLogger) Debug(msg string, fields ...zapcore.Field) {
	l.log(zapcore.DebugLevel, msg, fields)
}

func (l *teeLogger) Debugf(template string, args ...interface{}) {
	l.log(zapcore.DebugLevel, l.sprintf(zapcore.DebugLevel, template, args), nil)
}

func (l *teeLogger) Info(msg string, fields ...zapcore.Field) {
	l.log(zapcore.InfoLevel, msg, fields)
}

func (l *teeLogger) Infof(template string, args ...interface{}) {
	l.log(zapcore.InfoLevel, l.sprintf(zapcore.InfoLevel, template, args), nil)
}

func (l *teeLogger) Warn(msg string, fields ...zapcore.Field) {
	l.log(zapcore.WarnLevel, msg, fields)
}

func (l *teeLogger) Warnf(template string, args ...interface{}) {
	l.log(zapcore.WarnLevel, l.sprintf(zapcore.WarnLevel, template, args), nil)
}

func (l *teeLogger) Error(msg string, fields ...zapcore.Field) {
	l.log(zapcore.ErrorLevel, msg, fields)
}

func (l *teeLogger) Errorf(template string, args ...interface{}) {
	l.log(zapcore.ErrorLevel, l.sprintf(zapcore.ErrorLevel, template, args), nil)
}

// With implements Interface
func (l *teeLogger) With(fields ...zapcore.Field) Interface {
	ls := make([]*zap.Logger, 0, len(l.loggers))
	for _, logger := range l.loggers {
		ls = append(ls, logger.With(fields...))
	}
	return &teeLogger{loggers: ls}
}

// Named implements Interface
func (l *teeLogger) Named(name string) Interface {
	ls := make([]*zap.Logger, 0, len(l.loggers))
	for _, logger := range l.loggers {
		ls = append(ls, logger.Named(name))
	}
	return &teeLogger{loggers: ls}
}

// Sync implements Interface
func (l *teeLogger) Sync() error {
	var err error
	for _, logger := range l.loggers {
		err = multierr.Append(err, logger.Sync())
	}
	return err
}
