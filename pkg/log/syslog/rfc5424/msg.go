package rfc5424

import (
	"fmt"
	"io"
)

// Msg is the MSG part of a syslog message, a free-form message about the event.
//
// The character set used in MSG should be Unicode encoded as UTF-8, in which case the message
// must start with the UTF-8 byte order mark. If the application cannot encode the message in
// Unicode, it may use any other encoding.
//
// The implementations are Text, Bytes and the results of Printf and Stringer.
type Msg interface {
	writeMsg(w io.Writer) error
}

// Text is a UTF-8 message. It is prefixed with a space and the BOM.
type Text string

// Bytes is a message that is not Unicode. It is written as is: no space, no BOM.
type Bytes []byte

type printfMsg struct {
	format string
	args   []any
}

type stringerMsg struct {
	s fmt.Stringer
}

var (
	_ Msg = Text("")
	_ Msg = Bytes(nil)
	_ Msg = printfMsg{}
	_ Msg = stringerMsg{}
)

// Printf formats the message with fmt when it is being written. It is prefixed with a space
// but without a BOM.
func Printf(format string, args ...any) Msg {
	return printfMsg{format: format, args: args}
}

// Stringer writes the result of s.String() as a message, prefixed with a space but without a BOM.
func Stringer(s fmt.Stringer) Msg {
	return stringerMsg{s: s}
}

// utf8BOM is prefixed by an ASCII space
var utf8BOM = []byte{' ', 0xEF, 0xBB, 0xBF}

func (m Text) writeMsg(w io.Writer) error {
	if m == "" {
		return nil
	}
	if err := write(w, utf8BOM); err != nil {
		return err
	}
	return writeString(w, string(m))
}

func (m Bytes) writeMsg(w io.Writer) error {
	return write(w, m)
}

func (m printfMsg) writeMsg(w io.Writer) error {
	pw := &spacePrefixWriter{w: w}
	if _, err := fmt.Fprintf(pw, m.format, m.args...); err != nil {
		return pw.mapErr(err)
	}
	return nil
}

func (m stringerMsg) writeMsg(w io.Writer) error {
	if m.s == nil {
		return nil
	}
	s := m.s.String()
	if s == "" {
		return nil
	}
	if err := write(w, utf8BOM[:1]); err != nil {
		return err
	}
	return writeString(w, s)
}

// spacePrefixWriter writes a single space in front of the first non-empty write
type spacePrefixWriter struct {
	w       io.Writer
	started bool
	err     error
}

func (pw *spacePrefixWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if !pw.started {
		if err := write(pw.w, utf8BOM[:1]); err != nil {
			pw.err = err
			return 0, err
		}
		pw.started = true
	}
	if err := write(pw.w, p); err != nil {
		pw.err = err
		return 0, err
	}
	return len(p), nil
}

// mapErr returns the error of the underlying writer if there was one. fmt itself only fails
// if the writer failed.
func (pw *spacePrefixWriter) mapErr(err error) error {
	if pw.err != nil {
		return pw.err
	}
	return err
}
