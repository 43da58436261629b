// Copyright 2023 Hedgehog
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the settings of the syslogfmt command, which can be read from a JSON or
// YAML file and merged with the command line flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.githedgehog.com/syslogfmt/pkg/log"
	"go.githedgehog.com/syslogfmt/pkg/log/syslog"
	"go.githedgehog.com/syslogfmt/pkg/log/syslog/rfc5424"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownFileType      = errors.New("config: unknown file type, not a JSON or YAML file")
	ErrInvalidBufferSize    = errors.New("config: buffer size must not be negative")
	ErrInvalidSDElement     = errors.New("config: invalid structured data element")
	ErrDuplicateSDElementID = errors.New("config: duplicate structured data element ID")
)

type FileType int

const (
	Unknown FileType = iota
	JSON
	YAML
)

// FileTypeFromPath detects the file type by the file extension
func FileTypeFromPath(path string) FileType {
	switch {
	case strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml"):
		return YAML
	case strings.HasSuffix(path, ".json"):
		return JSON
	default:
		return Unknown
	}
}

// File are the settings of a message. Every field is optional.
//
// Here is an example YAML:
//
//	facility: local4
//	severity: notice
//	hostname: switch-1.example.com
//	app_name: agent
//	msg_id: ID47
//	timestamp: now
//	structured_data:
//	  - id: origin
//	    params:
//	      - name: ip
//	        value: 192.0.2.1
//	buffer_size: 480
//	truncation: send
type File struct {
	Facility *syslog.Facility `json:"facility,omitempty" yaml:"facility,omitempty"`
	Severity *syslog.Severity `json:"severity,omitempty" yaml:"severity,omitempty"`

	Hostname string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	AppName  string `json:"app_name,omitempty" yaml:"app_name,omitempty"`
	ProcID   string `json:"proc_id,omitempty" yaml:"proc_id,omitempty"`
	MsgID    string `json:"msg_id,omitempty" yaml:"msg_id,omitempty"`

	// Timestamp is "now", "none" or a preformatted timestamp. See ParseTimestamp.
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`

	StructuredData []SDElement `json:"structured_data,omitempty" yaml:"structured_data,omitempty"`

	// Raw writes the message as bytes without the BOM
	Raw *bool `json:"raw,omitempty" yaml:"raw,omitempty"`

	// BufferSize limits the size of the message in bytes. 0 means no limit.
	BufferSize *int `json:"buffer_size,omitempty" yaml:"buffer_size,omitempty"`

	// Truncation decides if a message larger than BufferSize is written truncated or not at all
	Truncation *log.Truncation `json:"truncation,omitempty" yaml:"truncation,omitempty"`

	EscapeParamValues *bool `json:"escape_param_values,omitempty" yaml:"escape_param_values,omitempty"`
}

// SDElement is a structured data element
type SDElement struct {
	ID     string    `json:"id" yaml:"id"`
	Params []SDParam `json:"params,omitempty" yaml:"params,omitempty"`
}

// SDParam is a structured data param
type SDParam struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

func ReadFromFile(path string) (*File, error) {
	// test the file type
	typ := FileTypeFromPath(path)
	if typ == Unknown {
		return nil, fmt.Errorf("config at '%s': %w", path, ErrUnknownFileType)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config at '%s': %w", path, err)
	}
	defer f.Close()

	// pass it on to the reader function
	cfg, err := ReadFrom(f, typ)
	if err != nil {
		return nil, fmt.Errorf("config at '%s': %w", path, err)
	}
	return cfg, nil
}

func ReadFrom(r io.Reader, typ FileType) (*File, error) {
	var cfg File
	switch typ { //nolint:exhaustive
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("config: JSON decoder: %w", err)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: YAML decoder: %w", err)
		}
	default:
		return nil, ErrUnknownFileType
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings which cannot be checked while decoding
func (f *File) Validate() error {
	if f.BufferSize != nil && *f.BufferSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBufferSize, *f.BufferSize)
	}
	ids := make(map[string]struct{}, len(f.StructuredData))
	for _, elem := range f.StructuredData {
		if elem.ID == "" {
			return fmt.Errorf("%w: empty ID", ErrInvalidSDElement)
		}
		if _, ok := ids[elem.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateSDElementID, elem.ID)
		}
		ids[elem.ID] = struct{}{}
		for _, param := range elem.Params {
			if param.Name == "" {
				return fmt.Errorf("%w: %s: empty param name", ErrInvalidSDElement, elem.ID)
			}
		}
	}
	return nil
}

// Merge returns a new config with all settings of `override` which are set replacing the ones of
// `base`. Structured data elements of `override` are appended, replacing elements of `base` with
// the same ID. Neither argument is modified.
func Merge(base *File, override *File) *File {
	// clone the values from the base config
	// so that we don't override the arguments for the caller
	var ret File
	if base != nil {
		ret = *base
		ret.Facility = clonePtr(base.Facility)
		ret.Severity = clonePtr(base.Severity)
		ret.Raw = clonePtr(base.Raw)
		ret.BufferSize = clonePtr(base.BufferSize)
		ret.Truncation = clonePtr(base.Truncation)
		ret.EscapeParamValues = clonePtr(base.EscapeParamValues)
		ret.StructuredData = cloneSD(base.StructuredData)
	}
	if override == nil {
		return &ret
	}

	if override.Facility != nil {
		ret.Facility = clonePtr(override.Facility)
	}
	if override.Severity != nil {
		ret.Severity = clonePtr(override.Severity)
	}
	if override.Hostname != "" {
		ret.Hostname = override.Hostname
	}
	if override.AppName != "" {
		ret.AppName = override.AppName
	}
	if override.ProcID != "" {
		ret.ProcID = override.ProcID
	}
	if override.MsgID != "" {
		ret.MsgID = override.MsgID
	}
	if override.Timestamp != "" {
		ret.Timestamp = override.Timestamp
	}
	if override.Raw != nil {
		ret.Raw = clonePtr(override.Raw)
	}
	if override.BufferSize != nil {
		ret.BufferSize = clonePtr(override.BufferSize)
	}
	if override.Truncation != nil {
		ret.Truncation = clonePtr(override.Truncation)
	}
	if override.EscapeParamValues != nil {
		ret.EscapeParamValues = clonePtr(override.EscapeParamValues)
	}

	// structured data elements are merged by ID
	for _, elem := range cloneSD(override.StructuredData) {
		replaced := false
		for i := range ret.StructuredData {
			if ret.StructuredData[i].ID == elem.ID {
				ret.StructuredData[i] = elem
				replaced = true
				break
			}
		}
		if !replaced {
			ret.StructuredData = append(ret.StructuredData, elem)
		}
	}

	return &ret
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSD(in []SDElement) []SDElement {
	if in == nil {
		return nil
	}
	out := make([]SDElement, len(in))
	for i, elem := range in {
		out[i] = SDElement{ID: elem.ID}
		if elem.Params != nil {
			out[i].Params = make([]SDParam, len(elem.Params))
			copy(out[i].Params, elem.Params)
		}
	}
	return out
}

// FormatterConfig returns the config for the message formatter. The facility defaults to local0.
func (f *File) FormatterConfig() rfc5424.Config {
	cfg := rfc5424.Config{
		Hostname: f.Hostname,
		AppName:  f.AppName,
		ProcID:   f.ProcID,
	}
	if f.Facility != nil {
		v := *f.Facility
		cfg.Facility = &v
	}
	if f.EscapeParamValues != nil {
		cfg.EscapeParamValues = *f.EscapeParamValues
	}
	return cfg
}

// SeverityOrDefault returns the severity or notice if it is not set
func (f *File) SeverityOrDefault() syslog.Severity {
	if f.Severity == nil {
		return syslog.LOG_NOTICE
	}
	return *f.Severity
}

// BufferSizeOrDefault returns the buffer size or 0 (unlimited) if it is not set
func (f *File) BufferSizeOrDefault() int {
	if f.BufferSize == nil {
		return 0
	}
	return *f.BufferSize
}

// TruncationOrDefault returns the truncation policy or log.TruncationSend if it is not set
func (f *File) TruncationOrDefault() log.Truncation {
	if f.Truncation == nil {
		return log.TruncationSend
	}
	return *f.Truncation
}

// IsRaw reports if the message is written without the BOM
func (f *File) IsRaw() bool {
	return f.Raw != nil && *f.Raw
}

// RFC5424StructuredData converts the structured data for the formatter
func (f *File) RFC5424StructuredData() rfc5424.StructuredData {
	if len(f.StructuredData) == 0 {
		return nil
	}
	data := make(rfc5424.StructuredData, 0, len(f.StructuredData))
	for _, elem := range f.StructuredData {
		e := rfc5424.SDElement{ID: elem.ID}
		for _, param := range elem.Params {
			e.Params = append(e.Params, rfc5424.SDParam{Name: param.Name, Value: param.Value})
		}
		data = append(data, e)
	}
	return data
}

// ParseTimestamp turns the timestamp setting into a timestamp. An empty string and "now" sample
// the clock, "none" and "-" are the NILVALUE and everything else is a preformatted timestamp.
func ParseTimestamp(s string) rfc5424.Timestamp {
	switch strings.ToLower(s) {
	case "", "now":
		return rfc5424.LocalNow{}
	case "none", "-":
		return rfc5424.NoTimestamp{}
	default:
		return rfc5424.Preformatted(s)
	}
}

// ParseSDElement parses the command line notation of a structured data element:
// `ID` or `ID:name=value,name=value`. The first '=' separates name and value, values cannot
// contain a ','.
func ParseSDElement(s string) (SDElement, error) {
	id, rest, hasParams := strings.Cut(s, ":")
	id = strings.TrimSpace(id)
	if id == "" {
		return SDElement{}, fmt.Errorf("%w: %q: empty ID", ErrInvalidSDElement, s)
	}
	elem := SDElement{ID: id}
	if !hasParams {
		return elem, nil
	}
	for _, kv := range strings.Split(rest, ",") {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return SDElement{}, fmt.Errorf("%w: %q: param %q is not name=value", ErrInvalidSDElement, s, kv)
		}
		elem.Params = append(elem.Params, SDParam{Name: name, Value: value})
	}
	return elem, nil
}
