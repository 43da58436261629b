package rfc5424

import (
	"io"
	"strconv"
	"strings"
	"time"

	"go.githedgehog.com/syslogfmt/pkg/log/syslog"
)

const (
	// nilValue is used for any header field which has no value
	nilValue = "-"

	// version is the VERSION field of the syslog protocol
	version = '1'
)

// Formatter formats messages and optional structured data into RFC 5424 compliant messages.
//
// A Formatter is immutable after it has been created, it can be shared between goroutines
// without locking. The writers it writes to are not protected by it though: callers which
// share one writer must serialize access to it for the duration of a call.
type Formatter struct {
	facility syslog.Facility

	// the hostname, app name and proc id substring can be preformatted
	// given that they don't change per syslog session
	hostAppProcID string

	escapeParamValues bool
	clock             func() time.Time
}

// NewFormatter creates a formatter from `cfg`
func NewFormatter(cfg Config) *Formatter {
	facility := syslog.DefaultFacility
	if cfg.Facility != nil {
		facility = *cfg.Facility
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Formatter{
		facility:          facility,
		hostAppProcID:     strings.Join([]string{orNil(cfg.Hostname), orNil(cfg.AppName), orNil(cfg.ProcID)}, " "),
		escapeParamValues: cfg.EscapeParamValues,
		clock:             clock,
	}
}

func orNil(s string) string {
	if s == "" {
		return nilValue
	}
	return s
}

// Facility returns the facility of all messages of this formatter
func (f *Formatter) Facility() syslog.Facility {
	return f.facility
}

// HostAppProcID returns the preformatted "HOSTNAME APP-NAME PROCID" part of the header
func (f *Formatter) HostAppProcID() string {
	return f.hostAppProcID
}

// Format writes a message without structured data to `w`. An empty `msgID` is written as the
// NILVALUE.
//
// If `w` does not accept all bytes, Format writes as much as possible and returns
// ErrSinkExhausted. Any other error of `w` is returned wrapped. Nothing is retried.
func (f *Formatter) Format(w io.Writer, severity syslog.Severity, ts Timestamp, msg Msg, msgID string) error {
	return f.format(w, severity, ts, msg, msgID, nil)
}

// FormatWithData writes a message with structured data to `w`. It behaves like Format.
// The use of structured data is less likely than a simple message, which is why it is a
// separate method.
func (f *Formatter) FormatWithData(w io.Writer, severity syslog.Severity, ts Timestamp, msg Msg, msgID string, data StructuredData) error {
	return f.format(w, severity, ts, msg, msgID, data)
}

func (f *Formatter) format(w io.Writer, severity syslog.Severity, ts Timestamp, msg Msg, msgID string, data StructuredData) error {
	if err := f.WriteHeader(w, severity, ts, msgID); err != nil {
		return err
	}
	if err := f.WriteData(w, data); err != nil {
		return err
	}
	if msg == nil {
		return nil
	}
	return msg.writeMsg(w)
}

// WriteHeader writes the header of a message up to and including the space in front of the
// STRUCTURED-DATA field. Together with WriteData, WriteUTF8BOM and writing the message
// manually this allows to fill a single buffer piece by piece.
func (f *Formatter) WriteHeader(w io.Writer, severity syslog.Severity, ts Timestamp, msgID string) error {
	// PRI, VERSION and TIMESTAMP fit into this in the common case
	var scratch [64]byte

	b := append(scratch[:0], '<')
	b = strconv.AppendUint(b, uint64(syslog.EncodePriority(f.facility, severity)), 10)
	b = append(b, '>', version, ' ')
	if ts == nil {
		ts = NoTimestamp{}
	}
	b = ts.appendTimestamp(b, f.clock)
	b = append(b, ' ')
	if err := write(w, b); err != nil {
		return err
	}

	if err := writeString(w, f.hostAppProcID); err != nil {
		return err
	}
	if err := write(w, space); err != nil {
		return err
	}
	if err := writeString(w, orNil(msgID)); err != nil {
		return err
	}
	return write(w, space)
}

// WriteData writes the STRUCTURED-DATA field, escaping param values if the formatter was
// configured to do so.
func (f *Formatter) WriteData(w io.Writer, data StructuredData) error {
	return writeData(w, data, f.escapeParamValues)
}

// WriteUTF8BOM writes the space and the byte order mark which must precede a UTF-8 message
func WriteUTF8BOM(w io.Writer) error {
	return write(w, utf8BOM)
}
