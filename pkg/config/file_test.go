package config

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"go.githedgehog.com/syslogfmt/pkg/log"
	"go.githedgehog.com/syslogfmt/pkg/log/syslog"
	"go.githedgehog.com/syslogfmt/pkg/log/syslog/rfc5424"
)

func ptr[T any](v T) *T {
	return &v
}

var exampleFile = &File{
	Facility:  ptr(syslog.LOG_LOCAL4),
	Severity:  ptr(syslog.LOG_NOTICE),
	Hostname:  "192.0.2.1",
	AppName:   "myproc",
	ProcID:    "8710",
	MsgID:     "ID47",
	Timestamp: "2003-08-24T05:14:15.000003-07:00",
	StructuredData: []SDElement{
		{ID: "exampleSDID@32473", Params: []SDParam{{Name: "iut", Value: "3"}, {Name: "eventSource", Value: "Application"}}},
		{ID: "examplePriority@32473", Params: []SDParam{{Name: "class", Value: "high"}}},
	},
	BufferSize:        ptr(480),
	Truncation:        ptr(log.TruncationDiscard),
	EscapeParamValues: ptr(true),
}

func TestReadFromFile(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		want      *File
		wantErr   bool
		wantErrIs error
	}{
		{
			name: "yaml",
			path: "testdata/message.yaml",
			want: exampleFile,
		},
		{
			name: "json",
			path: "testdata/message.json",
			want: exampleFile,
		},
		{
			name: "empty yaml",
			path: "testdata/empty.yaml",
			want: &File{},
		},
		{
			name:      "unknown file type",
			path:      "testdata/message.txt",
			wantErr:   true,
			wantErrIs: ErrUnknownFileType,
		},
		{
			name:      "file does not exist",
			path:      "testdata/missing.yaml",
			wantErr:   true,
			wantErrIs: os.ErrNotExist,
		},
		{
			name:      "invalid facility",
			path:      "testdata/invalid_facility.yaml",
			wantErr:   true,
			wantErrIs: syslog.ErrInvalidFacility,
		},
		{
			name:    "unknown field",
			path:    "testdata/unknown_field.json",
			wantErr: true,
		},
		{
			name:      "duplicate structured data ID",
			path:      "testdata/duplicate_sd.yml",
			wantErr:   true,
			wantErrIs: ErrDuplicateSDElementID,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFromFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadFromFile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErrIs != nil && !errors.Is(err, tt.wantErrIs) {
				t.Errorf("ReadFromFile() error = %v, wantErrIs %v", err, tt.wantErrIs)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadFromFile() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadFrom(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		typ       FileType
		want      *File
		wantErrIs error
	}{
		{
			name:  "yaml",
			input: "hostname: host\nbuffer_size: 64\ntruncation: send\n",
			typ:   YAML,
			want:  &File{Hostname: "host", BufferSize: ptr(64), Truncation: ptr(log.TruncationSend)},
		},
		{
			name:  "json",
			input: `{"severity":"err","raw":true}`,
			typ:   JSON,
			want:  &File{Severity: ptr(syslog.LOG_ERR), Raw: ptr(true)},
		},
		{
			name:      "negative buffer size",
			input:     "buffer_size: -1",
			typ:       YAML,
			wantErrIs: ErrInvalidBufferSize,
		},
		{
			name:      "invalid truncation",
			input:     `{"truncation":"drop"}`,
			typ:       JSON,
			wantErrIs: log.ErrInvalidTruncation,
		},
		{
			name:      "empty param name",
			input:     "structured_data:\n  - id: origin\n    params:\n      - value: x\n",
			typ:       YAML,
			wantErrIs: ErrInvalidSDElement,
		},
		{
			name:      "unknown type",
			input:     "{}",
			typ:       Unknown,
			wantErrIs: ErrUnknownFileType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFrom(strings.NewReader(tt.input), tt.typ)
			if !errors.Is(err, tt.wantErrIs) {
				t.Fatalf("ReadFrom() error = %v, want %v", err, tt.wantErrIs)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadFrom() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFileTypeFromPath(t *testing.T) {
	tests := map[string]FileType{
		"a.yaml":      YAML,
		"dir/b.yml":   YAML,
		"c.json":      JSON,
		"d.toml":      Unknown,
		"yaml":        Unknown,
		"e.yaml.bak":  Unknown,
		"/etc/x.json": JSON,
	}
	for path, want := range tests {
		if got := FileTypeFromPath(path); got != want {
			t.Errorf("FileTypeFromPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		base     *File
		override *File
		want     *File
	}{
		{
			name: "both nil",
			want: &File{},
		},
		{
			name: "nil override",
			base: &File{Hostname: "base", BufferSize: ptr(10)},
			want: &File{Hostname: "base", BufferSize: ptr(10)},
		},
		{
			name:     "nil base",
			override: &File{Hostname: "override"},
			want:     &File{Hostname: "override"},
		},
		{
			name: "override wins when set",
			base: &File{
				Facility:  ptr(syslog.LOG_DAEMON),
				Severity:  ptr(syslog.LOG_INFO),
				Hostname:  "base",
				AppName:   "app",
				ProcID:    "1",
				MsgID:     "base",
				Timestamp: "none",
				Raw:       ptr(true),
			},
			override: &File{
				Facility:          ptr(syslog.LOG_LOCAL7),
				Hostname:          "override",
				MsgID:             "override",
				Raw:               ptr(false),
				BufferSize:        ptr(100),
				Truncation:        ptr(log.TruncationDiscard),
				EscapeParamValues: ptr(true),
			},
			want: &File{
				Facility:          ptr(syslog.LOG_LOCAL7),
				Severity:          ptr(syslog.LOG_INFO),
				Hostname:          "override",
				AppName:           "app",
				ProcID:            "1",
				MsgID:             "override",
				Timestamp:         "none",
				Raw:               ptr(false),
				BufferSize:        ptr(100),
				Truncation:        ptr(log.TruncationDiscard),
				EscapeParamValues: ptr(true),
			},
		},
		{
			name:     "explicit zero buffer size overrides",
			base:     &File{BufferSize: ptr(480)},
			override: &File{BufferSize: ptr(0)},
			want:     &File{BufferSize: ptr(0)},
		},
		{
			name: "structured data merged by ID",
			base: &File{StructuredData: []SDElement{
				{ID: "a", Params: []SDParam{{Name: "x", Value: "1"}}},
				{ID: "b"},
			}},
			override: &File{StructuredData: []SDElement{
				{ID: "c"},
				{ID: "a", Params: []SDParam{{Name: "y", Value: "2"}}},
			}},
			want: &File{StructuredData: []SDElement{
				{ID: "a", Params: []SDParam{{Name: "y", Value: "2"}}},
				{ID: "b"},
				{ID: "c"},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Merge(tt.base, tt.override); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMerge_doesNotModifyArguments(t *testing.T) {
	base := &File{
		Facility:          ptr(syslog.LOG_DAEMON),
		Severity:          ptr(syslog.LOG_INFO),
		Raw:               ptr(true),
		BufferSize:        ptr(480),
		Truncation:        ptr(log.TruncationDiscard),
		EscapeParamValues: ptr(true),
		StructuredData:    []SDElement{{ID: "a", Params: []SDParam{{Name: "x", Value: "1"}}}},
	}
	override := &File{StructuredData: []SDElement{{ID: "a"}}}

	got := Merge(base, override)
	*got.Facility = syslog.LOG_KERN
	*got.Severity = syslog.LOG_EMERG
	*got.Raw = false
	*got.BufferSize = 1
	*got.Truncation = log.TruncationSend
	*got.EscapeParamValues = false
	got.StructuredData[0].ID = "changed"

	if *base.Facility != syslog.LOG_DAEMON {
		t.Errorf("base facility changed to %v", *base.Facility)
	}
	if *base.Severity != syslog.LOG_INFO {
		t.Errorf("base severity changed to %v", *base.Severity)
	}
	if !*base.Raw || !*base.EscapeParamValues {
		t.Errorf("base flags changed to raw=%v escape=%v", *base.Raw, *base.EscapeParamValues)
	}
	if *base.BufferSize != 480 {
		t.Errorf("base buffer size changed to %d", *base.BufferSize)
	}
	if *base.Truncation != log.TruncationDiscard {
		t.Errorf("base truncation changed to %v", *base.Truncation)
	}

	// the same for values taken from the override
	override = &File{Facility: ptr(syslog.LOG_USER), BufferSize: ptr(0)}
	got = Merge(nil, override)
	*got.Facility = syslog.LOG_KERN
	*got.BufferSize = 1
	if *override.Facility != syslog.LOG_USER || *override.BufferSize != 0 {
		t.Errorf("override changed to facility=%v buffer size=%d", *override.Facility, *override.BufferSize)
	}
	want := []SDElement{{ID: "a", Params: []SDParam{{Name: "x", Value: "1"}}}}
	if !reflect.DeepEqual(base.StructuredData, want) {
		t.Errorf("base structured data changed to %+v", base.StructuredData)
	}
	if override.StructuredData[0].ID != "a" {
		t.Errorf("override structured data changed to %+v", override.StructuredData)
	}
}

func TestParseSDElement(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    SDElement
		wantErr bool
	}{
		{name: "id only", in: "origin", want: SDElement{ID: "origin"}},
		{name: "one param", in: "origin:ip=192.0.2.1", want: SDElement{ID: "origin", Params: []SDParam{{Name: "ip", Value: "192.0.2.1"}}}},
		{
			name: "params",
			in:   "exampleSDID@32473:iut=3,eventSource=Application,eventID=1011",
			want: SDElement{ID: "exampleSDID@32473", Params: []SDParam{
				{Name: "iut", Value: "3"},
				{Name: "eventSource", Value: "Application"},
				{Name: "eventID", Value: "1011"},
			}},
		},
		{name: "value with equal sign", in: "x:q=a=b", want: SDElement{ID: "x", Params: []SDParam{{Name: "q", Value: "a=b"}}}},
		{name: "empty value", in: "x:q=", want: SDElement{ID: "x", Params: []SDParam{{Name: "q", Value: ""}}}},
		{name: "empty", in: "", wantErr: true},
		{name: "empty id", in: ":a=b", wantErr: true},
		{name: "missing equal sign", in: "x:a", wantErr: true},
		{name: "empty param", in: "x:a=1,", wantErr: true},
		{name: "empty name", in: "x:=1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSDElement(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSDElement() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSDElement) {
					t.Errorf("ParseSDElement() error = %v, want %v", err, ErrInvalidSDElement)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSDElement() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want rfc5424.Timestamp
	}{
		{in: "", want: rfc5424.LocalNow{}},
		{in: "now", want: rfc5424.LocalNow{}},
		{in: "NOW", want: rfc5424.LocalNow{}},
		{in: "none", want: rfc5424.NoTimestamp{}},
		{in: "-", want: rfc5424.NoTimestamp{}},
		{in: "1985-04-12T23:20:50.52Z", want: rfc5424.Preformatted("1985-04-12T23:20:50.52Z")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseTimestamp(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTimestamp() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFile_conversions(t *testing.T) {
	cfg := exampleFile.FormatterConfig()
	if cfg.Facility == nil || *cfg.Facility != syslog.LOG_LOCAL4 {
		t.Errorf("FormatterConfig().Facility = %v", cfg.Facility)
	}
	if cfg.Hostname != "192.0.2.1" || cfg.AppName != "myproc" || cfg.ProcID != "8710" || !cfg.EscapeParamValues {
		t.Errorf("FormatterConfig() = %+v", cfg)
	}

	wantData := rfc5424.StructuredData{
		rfc5424.Element("exampleSDID@32473", "iut", "3", "eventSource", "Application"),
		rfc5424.Element("examplePriority@32473", "class", "high"),
	}
	if got := exampleFile.RFC5424StructuredData(); !reflect.DeepEqual(got, wantData) {
		t.Errorf("RFC5424StructuredData() = %+v, want %+v", got, wantData)
	}

	empty := &File{}
	if empty.FormatterConfig().Facility != nil {
		t.Errorf("FormatterConfig().Facility should default to nil")
	}
	if empty.RFC5424StructuredData() != nil {
		t.Errorf("RFC5424StructuredData() should be nil without elements")
	}
	if empty.SeverityOrDefault() != syslog.LOG_NOTICE || empty.TruncationOrDefault() != log.TruncationSend || empty.IsRaw() {
		t.Errorf("defaults of an empty file are wrong")
	}
	if exampleFile.SeverityOrDefault() != syslog.LOG_NOTICE || exampleFile.TruncationOrDefault() != log.TruncationDiscard {
		t.Errorf("settings of the example file are not used")
	}
}
