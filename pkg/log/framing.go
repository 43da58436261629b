package log

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var ErrInvalidFraming = errors.New("log: invalid framing")

// Framing separates messages on a stream as described in RFC 6587
type Framing uint8

const (
	// FramingNone writes messages as they are, e.g. for datagrams
	FramingNone Framing = iota
	// FramingNonTransparent terminates every message with a line feed
	FramingNonTransparent
	// FramingOctetCounting prefixes every message with its length and a space
	FramingOctetCounting
)

// DefaultFraming is used for streams which are read by humans
const DefaultFraming = FramingNonTransparent

var framingNames = [...]string{
	FramingNone:           "none",
	FramingNonTransparent: "lf",
	FramingOctetCounting:  "octet-counting",
}

func (f Framing) String() string {
	if int(f) < len(framingNames) {
		return framingNames[f]
	}
	return "unknown(" + strconv.Itoa(int(f)) + ")"
}

// ParseFraming accepts "none", "lf" and "octet-counting"
func ParseFraming(s string) (Framing, error) {
	for i, name := range framingNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Framing(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFraming, s)
}

// Set implements flag.Value
func (f *Framing) Set(s string) error {
	v, err := ParseFraming(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Get implements flag.Getter
func (f *Framing) Get() any {
	return *f
}

// MarshalText implements encoding.TextMarshaler
func (f Framing) MarshalText() ([]byte, error) {
	if int(f) >= len(framingNames) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFraming, f)
	}
	return []byte(framingNames[f]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Framing) UnmarshalText(text []byte) error {
	return f.Set(string(text))
}

// AppendFramed appends `msg` with the framing to `dst`
func (f Framing) AppendFramed(dst []byte, msg []byte) []byte {
	switch f {
	case FramingNonTransparent:
		dst = append(dst, msg...)
		return append(dst, '\n')
	case FramingOctetCounting:
		dst = strconv.AppendInt(dst, int64(len(msg)), 10)
		dst = append(dst, ' ')
		return append(dst, msg...)
	default:
		return append(dst, msg...)
	}
}

type framedWriteSyncer struct {
	zapcore.WriteSyncer
	framing Framing
}

var framedPool = buffer.NewPool()

// NewFramedWriteSyncer frames every Write to `ws` as one message. Each Write results in a single
// Write to `ws`, which reports the length of `p` on success.
func NewFramedWriteSyncer(ws zapcore.WriteSyncer, framing Framing) zapcore.WriteSyncer {
	if framing == FramingNone {
		return ws
	}
	return &framedWriteSyncer{WriteSyncer: ws, framing: framing}
}

func (w *framedWriteSyncer) Write(p []byte) (int, error) {
	buf := framedPool.Get()
	defer buf.Free()

	framed := w.framing.AppendFramed(buf.Bytes(), p)
	n, err := w.WriteSyncer.Write(framed)
	if err != nil {
		return 0, err
	}
	if n < len(framed) {
		return 0, io.ErrShortWrite
	}
	return len(p), nil
}
