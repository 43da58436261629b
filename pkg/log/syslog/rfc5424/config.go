package rfc5424

import (
	"time"

	"go.githedgehog.com/syslogfmt/pkg/log/syslog"
)

// Config is used to build a Formatter. It is not retained by the Formatter.
//
// None of the strings are validated. RFC 5424 limits their length and character set, but this
// is left to the caller. Empty strings are written as the NILVALUE.
type Config struct {
	// Facility of all messages. Defaults to syslog.LOG_LOCAL0 if nil.
	Facility *syslog.Facility

	// Hostname should be the FQDN of the originator. It is considered highly unlikely that
	// an application cannot provide one.
	Hostname string

	// AppName identifies the application that originated the message.
	AppName string

	// ProcID is usually the process ID.
	ProcID string

	// EscapeParamValues enables escaping of '"', '\' and ']' in structured data param values.
	// It is off by default and param values are written as they are.
	EscapeParamValues bool

	// Clock is sampled for LocalNow timestamps. Defaults to time.Now.
	Clock func() time.Time
}

// Option modifies a Config. Use those when creating a Formatter with New.
type Option func(*Config)

// WithFacility sets the facility for all messages
func WithFacility(f syslog.Facility) Option {
	return func(c *Config) {
		c.Facility = &f
	}
}

// WithHostname sets the HOSTNAME field
func WithHostname(hostname string) Option {
	return func(c *Config) {
		c.Hostname = hostname
	}
}

// WithAppName sets the APP-NAME field
func WithAppName(appName string) Option {
	return func(c *Config) {
		c.AppName = appName
	}
}

// WithProcID sets the PROCID field
func WithProcID(procID string) Option {
	return func(c *Config) {
		c.ProcID = procID
	}
}

// WithParamValueEscaping turns on escaping of structured data param values
func WithParamValueEscaping() Option {
	return func(c *Config) {
		c.EscapeParamValues = true
	}
}

// WithClock replaces the clock which is used for LocalNow timestamps
func WithClock(clock func() time.Time) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

// Formatter builds a Formatter from the config
func (c Config) Formatter() *Formatter {
	return NewFormatter(c)
}

// New creates a Formatter from options. Without options it is the same as Default.
func New(options ...Option) *Formatter {
	var cfg Config

	// apply options
	for _, opt := range options {
		opt(&cfg)
	}

	return NewFormatter(cfg)
}

// Default returns a Formatter for facility local0 without hostname, app name or proc id.
func Default() *Formatter {
	return NewFormatter(Config{})
}
