package log

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrInvalidLogFormat = errors.New("log: invalid log format")

// NewSerialConsole builds a logger for stderr. The format is either "console" or "json".
func NewSerialConsole(level zapcore.Level, format string, development bool) (*zap.Logger, error) {
	// we enable callers, stacktraces and functions in development mode only
	disableCaller := true
	disableStacktrace := true
	functionKey := zapcore.OmitKey
	if development {
		disableCaller = false
		disableStacktrace = false
		functionKey = "F"
	}

	// these settings will be dependent on the format
	var encoding string
	var encodeLevel zapcore.LevelEncoder
	var keyConvert func(string) string
	switch format {
	case "", "console":
		encoding = "console"
		encodeLevel = zapcore.CapitalColorLevelEncoder
		keyConvert = func(s string) string { return s }
	case "json":
		encoding = "json"
		encodeLevel = zapcore.LowercaseLevelEncoder
		keyConvert = strings.ToLower
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidLogFormat, format)
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       development,
		DisableCaller:     disableCaller,
		DisableStacktrace: disableStacktrace,
		Encoding:          encoding,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        keyConvert("T"),
			LevelKey:       keyConvert("L"),
			NameKey:        keyConvert("N"),
			CallerKey:      keyConvert("C"),
			FunctionKey:    keyConvert(functionKey),
			MessageKey:     keyConvert("M"),
			StacktraceKey:  keyConvert("S"),
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    encodeLevel,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return cfg.Build()
}

// NewSyslog builds a logger which writes RFC 5424 messages to `out`. Writes to `out` are
// serialized. Errors of the logger itself, e.g. discarded messages, go to stderr.
func NewSyslog(level zapcore.Level, development bool, cfg SyslogConfig, out zapcore.WriteSyncer) (*zap.Logger, error) {
	// stacktraces aren't very pleasant in production - neither on the console nor in syslog
	// so we essentially disable them except for panics and above
	stackLevel := zapcore.PanicLevel
	if development {
		stackLevel = zapcore.WarnLevel
	}

	core, err := NewSyslogCore(cfg, zapcore.Lock(out), zap.NewAtomicLevelAt(level))
	if err != nil {
		return nil, err
	}

	opts := []zap.Option{
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
		zap.WithCaller(development),
		zap.AddStacktrace(stackLevel),
	}
	if development {
		opts = append(opts, zap.Development())
	}
	return zap.New(core, opts...), nil
}
