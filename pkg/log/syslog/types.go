package syslog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidFacility = errors.New("syslog: invalid facility")
	ErrInvalidSeverity = errors.New("syslog: invalid severity")
)

// Facility is used to specify what type of program is logging the message. The value is
// the facility number shifted left by 3 bits so that it can be OR'ed with a Severity.
type Facility uint8

const (
	// Facility.

	// From /usr/include/sys/syslog.h.
	// These are the same up to LOG_FTP on Linux, BSD, and OS X.

	LOG_KERN Facility = iota << 3
	LOG_USER
	LOG_MAIL
	LOG_DAEMON
	LOG_AUTH
	LOG_SYSLOG
	LOG_LPR
	LOG_NEWS
	LOG_UUCP
	LOG_CRON
	LOG_AUTHPRIV
	LOG_FTP
	_ // unused
	_ // unused
	_ // unused
	_ // unused
	LOG_LOCAL0
	LOG_LOCAL1
	LOG_LOCAL2
	LOG_LOCAL3
	LOG_LOCAL4
	LOG_LOCAL5
	LOG_LOCAL6
	LOG_LOCAL7
)

// DefaultFacility is used whenever no facility was configured
const DefaultFacility = LOG_LOCAL0

// Severity is the urgency of a message. 0 is the most severe.
type Severity uint8

const (
	// Severity.

	// From /usr/include/sys/syslog.h.
	// These are the same on Linux, BSD, and OS X.

	LOG_EMERG Severity = iota
	LOG_ALERT
	LOG_CRIT
	LOG_ERR
	LOG_WARNING
	LOG_NOTICE
	LOG_INFO
	LOG_DEBUG
)

// Priority is the facility and severity combined into one value: facility number * 8 + severity.
type Priority uint8

// EncodePriority returns the PRI value for a message of severity `s` from facility `f`
func EncodePriority(f Facility, s Severity) Priority {
	return Priority(uint8(f) | uint8(s)&0x07)
}

// Facility returns the facility part of the priority
func (p Priority) Facility() Facility {
	return Facility(p &^ 0x07)
}

// Severity returns the severity part of the priority
func (p Priority) Severity() Severity {
	return Severity(p & 0x07)
}

var facilityNames = [...]string{
	"KERN",
	"USER",
	"MAIL",
	"DAEMON",
	"AUTH",
	"SYSLOG",
	"LPR",
	"NEWS",
	"UUCP",
	"CRON",
	"AUTHPRIV",
	"FTP",
	"", "", "", "",
	"LOCAL0",
	"LOCAL1",
	"LOCAL2",
	"LOCAL3",
	"LOCAL4",
	"LOCAL5",
	"LOCAL6",
	"LOCAL7",
}

var severityNames = [...]string{
	"EMERG",
	"ALERT",
	"CRIT",
	"ERR",
	"WARNING",
	"NOTICE",
	"INFO",
	"DEBUG",
}

// Number returns the conventional facility number (0-23)
func (f Facility) Number() int {
	return int(f >> 3)
}

func (f Facility) valid() bool {
	if f&0x07 != 0 {
		return false
	}
	n := f.Number()
	return n < len(facilityNames) && facilityNames[n] != ""
}

func (f Facility) String() string {
	if !f.valid() {
		return "UNKNOWN"
	}
	return facilityNames[f.Number()]
}

// FacilityFromNumber converts a conventional facility number (as found in
// syslog.h, e.g. 16 for local0) into a Facility
func FacilityFromNumber(n int) (Facility, error) {
	if n < 0 || n >= len(facilityNames) || facilityNames[n] == "" {
		return 0, fmt.Errorf("%w: %d", ErrInvalidFacility, n)
	}
	return Facility(n << 3), nil
}

// ParseFacility converts a facility string into the facility
// or returns an error. The comparison is case-insensitive.
func ParseFacility(facility string) (Facility, error) {
	s := strings.ToUpper(strings.TrimSpace(facility))
	if s != "" {
		for n, name := range facilityNames {
			if name == s {
				return Facility(n << 3), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrInvalidFacility, facility)
}

// Set sets the facility for the flag.Value interface.
func (f *Facility) Set(s string) error {
	v, err := ParseFacility(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Get gets the facility for the flag.Getter interface.
func (f *Facility) Get() interface{} {
	return *f
}

// MarshalText implements encoding.TextMarshaler
func (f Facility) MarshalText() ([]byte, error) {
	if !f.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFacility, uint8(f))
	}
	return []byte(strings.ToLower(f.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Facility) UnmarshalText(text []byte) error {
	return f.Set(string(text))
}

func (s Severity) String() string {
	if int(s) >= len(severityNames) {
		return "UNKNOWN"
	}
	return severityNames[s]
}

// SeverityFromNumber converts a numerical severity (0-7) into a Severity
func SeverityFromNumber(n int) (Severity, error) {
	if n < 0 || n >= len(severityNames) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSeverity, n)
	}
	return Severity(n), nil
}

// ParseSeverity converts a severity string into the severity or returns an error.
// Besides the syslog.h names, a few common aliases like "warn" or "error" are accepted.
func ParseSeverity(severity string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(severity)) {
	case "EMERG", "EMERGENCY", "PANIC":
		return LOG_EMERG, nil
	case "ALERT":
		return LOG_ALERT, nil
	case "CRIT", "CRITICAL":
		return LOG_CRIT, nil
	case "ERR", "ERROR":
		return LOG_ERR, nil
	case "WARNING", "WARN":
		return LOG_WARNING, nil
	case "NOTICE":
		return LOG_NOTICE, nil
	case "INFO":
		return LOG_INFO, nil
	case "DEBUG":
		return LOG_DEBUG, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidSeverity, severity)
	}
}

// Set sets the severity for the flag.Value interface.
func (s *Severity) Set(str string) error {
	v, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Get gets the severity for the flag.Getter interface.
func (s *Severity) Get() interface{} {
	return *s
}

// MarshalText implements encoding.TextMarshaler
func (s Severity) MarshalText() ([]byte, error) {
	if int(s) >= len(severityNames) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeverity, uint8(s))
	}
	return []byte(strings.ToLower(s.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Severity) UnmarshalText(text []byte) error {
	return s.Set(string(text))
}
