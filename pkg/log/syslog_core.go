package log

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.githedgehog.com/syslogfmt/pkg/log/syslog"
	"go.githedgehog.com/syslogfmt/pkg/log/syslog/rfc5424"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var (
	ErrInvalidTruncation     = errors.New("log: invalid truncation policy")
	ErrInvalidMaxMessageSize = errors.New("log: invalid max message size")
	ErrMessageDiscarded      = errors.New("log: message exceeds max message size and was discarded")
)

// DefaultStructuredDataID is the SD-ID of the element which carries the zap fields. It uses the
// enterprise number 32473 which is reserved for documentation by RFC 5612.
const DefaultStructuredDataID = "fields@32473"

// DefaultMaxMessageSize is the message size which every RFC 5424 receiver should accept.
const DefaultMaxMessageSize = 2048

// Truncation decides what happens to a message which is longer than the max message size
type Truncation uint8

const (
	// TruncationSend sends everything up to the max message size
	TruncationSend Truncation = iota
	// TruncationDiscard drops the message and reports it on the error output of the logger
	TruncationDiscard
)

var truncationNames = [...]string{
	TruncationSend:    "send",
	TruncationDiscard: "discard",
}

func (t Truncation) String() string {
	if int(t) < len(truncationNames) {
		return truncationNames[t]
	}
	return "unknown(" + strconv.Itoa(int(t)) + ")"
}

// ParseTruncation accepts "send" and "discard"
func ParseTruncation(s string) (Truncation, error) {
	for i, name := range truncationNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Truncation(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTruncation, s)
}

// Set implements flag.Value
func (t *Truncation) Set(s string) error {
	v, err := ParseTruncation(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Get implements flag.Getter
func (t *Truncation) Get() any {
	return *t
}

// MarshalText implements encoding.TextMarshaler
func (t Truncation) MarshalText() ([]byte, error) {
	if int(t) >= len(truncationNames) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTruncation, t)
	}
	return []byte(truncationNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Truncation) UnmarshalText(text []byte) error {
	return t.Set(string(text))
}

// SyslogConfig configures the RFC 5424 zap core
type SyslogConfig struct {
	Facility syslog.Facility
	Hostname string
	AppName  string
	ProcID   string

	// MaxMessageSize limits the length of an encoded message in bytes. 0 means no limit.
	MaxMessageSize int

	// Truncation is applied to messages longer than MaxMessageSize
	Truncation Truncation

	// StructuredDataID is the SD-ID of the element with the logger fields. Defaults to
	// DefaultStructuredDataID if empty.
	StructuredDataID string
}

// DefaultSyslogConfig describes the running process: facility local0, the hostname of the
// machine, the name of the binary as app name and the PID as proc ID.
func DefaultSyslogConfig() SyslogConfig {
	// hostname will be unknown if we cannot resolve our hostname
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	// NOTE: as this is not resolving symlinks, this is perfect to do justice
	// even for busybox-style executables
	app := filepath.Base(os.Args[0])

	return SyslogConfig{
		Facility:         syslog.DefaultFacility,
		Hostname:         hostname,
		AppName:          app,
		ProcID:           strconv.Itoa(os.Getpid()),
		MaxMessageSize:   DefaultMaxMessageSize,
		Truncation:       TruncationSend,
		StructuredDataID: DefaultStructuredDataID,
	}
}

func (c SyslogConfig) validate() error {
	if c.MaxMessageSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxMessageSize, c.MaxMessageSize)
	}
	if int(c.Truncation) >= len(truncationNames) {
		return fmt.Errorf("%w: %d", ErrInvalidTruncation, c.Truncation)
	}
	return nil
}

// SeverityForLevel maps a zap level to a syslog severity. There is no zap level for notice.
func SeverityForLevel(l zapcore.Level) syslog.Severity {
	switch {
	case l <= zapcore.DebugLevel:
		return syslog.LOG_DEBUG
	case l == zapcore.InfoLevel:
		return syslog.LOG_INFO
	case l == zapcore.WarnLevel:
		return syslog.LOG_WARNING
	case l == zapcore.ErrorLevel:
		return syslog.LOG_ERR
	case l == zapcore.DPanicLevel:
		return syslog.LOG_CRIT
	case l == zapcore.PanicLevel:
		return syslog.LOG_ALERT
	default:
		return syslog.LOG_EMERG
	}
}

type syslogCore struct {
	zapcore.LevelEnabler
	formatter  *rfc5424.Formatter
	out        zapcore.WriteSyncer
	sdID       string
	maxSize    int
	truncation Truncation
	pool       *sync.Pool
	fields     []zapcore.Field
}

var _ zapcore.Core = &syslogCore{}

var unboundedPool = buffer.NewPool()

// NewSyslogCore returns a zap core which writes every entry as one RFC 5424 message to `out`.
// Every message is passed to `out` with a single Write call. `out` must be safe for concurrent
// use, wrap it with zapcore.Lock otherwise.
//
// The entry time becomes the timestamp, the logger name the MSGID and the message the UTF-8 MSG.
// Fields and the caller are written as params of one structured data element.
func NewSyslogCore(cfg SyslogConfig, out zapcore.WriteSyncer, enab zapcore.LevelEnabler) (zapcore.Core, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	sdID := cfg.StructuredDataID
	if sdID == "" {
		sdID = DefaultStructuredDataID
	}

	c := &syslogCore{
		LevelEnabler: enab,
		formatter: rfc5424.New(
			rfc5424.WithFacility(cfg.Facility),
			rfc5424.WithHostname(cfg.Hostname),
			rfc5424.WithAppName(cfg.AppName),
			rfc5424.WithProcID(cfg.ProcID),
			// field values are arbitrary strings
			rfc5424.WithParamValueEscaping(),
		),
		out:        out,
		sdID:       sdID,
		maxSize:    cfg.MaxMessageSize,
		truncation: cfg.Truncation,
	}
	if c.maxSize > 0 {
		size := c.maxSize
		c.pool = &sync.Pool{
			New: func() any {
				return rfc5424.NewFixedBuffer(size)
			},
		}
	}
	return c, nil
}

// With implements zapcore.Core
func (c *syslogCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return &clone
}

// Check implements zapcore.Core
func (c *syslogCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write implements zapcore.Core
func (c *syslogCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if c.pool == nil {
		buf := unboundedPool.Get()
		defer buf.Free()
		if err := c.encode(buf, ent, fields); err != nil {
			return err
		}
		return c.write(ent, buf.Bytes())
	}

	buf := c.pool.Get().(*rfc5424.FixedBuffer)
	defer func() {
		buf.Reset()
		c.pool.Put(buf)
	}()
	if err := c.encode(buf, ent, fields); err != nil {
		if !errors.Is(err, rfc5424.ErrSinkExhausted) {
			return err
		}
		if c.truncation == TruncationDiscard {
			return fmt.Errorf("%w (max %d bytes): %q", ErrMessageDiscarded, c.maxSize, ent.Message)
		}
	}
	return c.write(ent, buf.Bytes())
}

// Sync implements zapcore.Core
func (c *syslogCore) Sync() error {
	return c.out.Sync()
}

func (c *syslogCore) encode(w io.Writer, ent zapcore.Entry, fields []zapcore.Field) error {
	return c.formatter.FormatWithData(
		w,
		SeverityForLevel(ent.Level),
		rfc5424.Time(ent.Time),
		rfc5424.Text(ent.Message),
		ent.LoggerName,
		c.structuredData(ent, fields),
	)
}

func (c *syslogCore) write(ent zapcore.Entry, p []byte) error {
	if _, err := c.out.Write(p); err != nil {
		return err
	}
	if ent.Level > zapcore.ErrorLevel {
		// the logger might be about to panic or exit, make sure the message is out
		_ = c.Sync()
	}
	return nil
}

// structuredData returns nil if there is nothing to add. Field params are sorted by name and
// followed by the caller and stacktrace params, which replace fields of the same name.
func (c *syslogCore) structuredData(ent zapcore.Entry, fields []zapcore.Field) rfc5424.StructuredData {
	if len(c.fields) == 0 && len(fields) == 0 && !ent.Caller.Defined && ent.Stack == "" {
		return nil
	}

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	var generated []rfc5424.SDParam
	if ent.Caller.Defined {
		generated = append(generated, rfc5424.SDParam{Name: callerParam, Value: ent.Caller.TrimmedPath()})
	}
	if ent.Stack != "" {
		generated = append(generated, rfc5424.SDParam{Name: stacktraceParam, Value: ent.Stack})
	}

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// keys which are equal after sanitizing keep the first one in key order
	seen := make(map[string]struct{}, len(keys)+len(generated))
	for _, p := range generated {
		seen[p.Name] = struct{}{}
	}
	params := make([]rfc5424.SDParam, 0, len(keys)+len(generated))
	for _, k := range keys {
		name := paramName(k)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		params = append(params, rfc5424.SDParam{Name: name, Value: paramValue(enc.Fields[k])})
	}
	sort.SliceStable(params, func(i, j int) bool {
		return params[i].Name < params[j].Name
	})
	params = append(params, generated...)
	return rfc5424.StructuredData{{ID: c.sdID, Params: params}}
}

const (
	callerParam     = "caller"
	stacktraceParam = "stacktrace"
	maxParamName    = 32
)

// paramName turns a field key into a PARAM-NAME: 1 to 32 printable US-ASCII characters except
// '=', ' ', ']' and '"'. Every other byte becomes '_'.
func paramName(key string) string {
	if key == "" {
		return "_"
	}
	if len(key) > maxParamName {
		key = key[:maxParamName]
	}
	b := []byte(key)
	for i, c := range b {
		if c <= ' ' || c > '~' || c == '=' || c == ']' || c == '"' {
			b[i] = '_'
		}
	}
	return string(b)
}

// paramValue renders a value of the map encoder. Objects and arrays are rendered as JSON.
func paramValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return x.String()
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}
