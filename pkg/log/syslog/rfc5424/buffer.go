package rfc5424

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrSinkExhausted is returned when the writer did not accept all bytes of a message.
	// Everything that did fit has been written.
	ErrSinkExhausted = errors.New("rfc5424: sink exhausted")
)

var (
	_ io.Writer       = &FixedBuffer{}
	_ io.StringWriter = &FixedBuffer{}
)

// FixedBuffer is a writer with a fixed capacity. It never grows: a write which does not fit
// copies as many bytes as there is room for and fails with ErrSinkExhausted.
// The zero value is a buffer with no capacity.
type FixedBuffer struct {
	buf []byte
}

// NewFixedBuffer allocates a buffer which can hold up to `capacity` bytes
func NewFixedBuffer(capacity int) *FixedBuffer {
	return &FixedBuffer{buf: make([]byte, 0, capacity)}
}

// NewFixedBufferFrom uses the capacity of `backing` as storage, e.g. an array on the stack.
// The length of `backing` is ignored, the buffer starts empty.
func NewFixedBufferFrom(backing []byte) *FixedBuffer {
	return &FixedBuffer{buf: backing[:0]}
}

// Write implements io.Writer
func (b *FixedBuffer) Write(p []byte) (int, error) {
	n := copy(b.buf[len(b.buf):cap(b.buf)], p)
	b.buf = b.buf[:len(b.buf)+n]
	if n < len(p) {
		return n, ErrSinkExhausted
	}
	return n, nil
}

// WriteString implements io.StringWriter
func (b *FixedBuffer) WriteString(s string) (int, error) {
	n := copy(b.buf[len(b.buf):cap(b.buf)], s)
	b.buf = b.buf[:len(b.buf)+n]
	if n < len(s) {
		return n, ErrSinkExhausted
	}
	return n, nil
}

// Bytes returns the written bytes. The slice aliases the buffer until the next Reset.
func (b *FixedBuffer) Bytes() []byte {
	return b.buf
}

func (b *FixedBuffer) String() string {
	return string(b.buf)
}

// Len returns the number of bytes written
func (b *FixedBuffer) Len() int {
	return len(b.buf)
}

// Cap returns the capacity of the buffer
func (b *FixedBuffer) Cap() int {
	return cap(b.buf)
}

// Available returns how many more bytes can be written
func (b *FixedBuffer) Available() int {
	return cap(b.buf) - len(b.buf)
}

// Reset empties the buffer, keeping its capacity
func (b *FixedBuffer) Reset() {
	b.buf = b.buf[:0]
}

// write pushes `p` to `w` and maps a short write to ErrSinkExhausted
func write(w io.Writer, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	n, err := w.Write(p)
	return checkWrite(n, len(p), err)
}

func writeString(w io.Writer, s string) error {
	if s == "" {
		return nil
	}
	n, err := io.WriteString(w, s)
	return checkWrite(n, len(s), err)
}

func checkWrite(n, want int, err error) error {
	if n < want {
		if err == nil || errors.Is(err, ErrSinkExhausted) || errors.Is(err, io.ErrShortWrite) {
			return ErrSinkExhausted
		}
		return fmt.Errorf("rfc5424: write: %w", err)
	}
	if err != nil {
		return fmt.Errorf("rfc5424: write: %w", err)
	}
	return nil
}
