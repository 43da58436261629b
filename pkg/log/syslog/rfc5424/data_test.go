package rfc5424

import (
	"bytes"
	"reflect"
	"testing"
)

func TestWriteData(t *testing.T) {
	tests := []struct {
		name string
		data StructuredData
		want string
	}{
		{
			name: "nil",
			want: "-",
		},
		{
			name: "empty",
			data: StructuredData{},
			want: "-",
		},
		{
			name: "one element without params",
			data: StructuredData{{ID: "first"}},
			want: "[first]",
		},
		{
			name: "two elements without params",
			data: StructuredData{{ID: "first"}, {ID: "second"}},
			want: "[first][second]",
		},
		{
			name: "one param",
			data: StructuredData{Element("first", "p-one", "pv-one")},
			want: `[first p-one="pv-one"]`,
		},
		{
			name: "two params",
			data: StructuredData{Element("first", "p-one", "pv-one", "p-two", "pv-two")},
			want: `[first p-one="pv-one" p-two="pv-two"]`,
		},
		{
			name: "two elements with params",
			data: StructuredData{
				Element("first", "p-one", "pv-one", "p-two", "pv-two"),
				Element("second", "p-one", "pv-one", "p-two", "pv-two"),
			},
			want: `[first p-one="pv-one" p-two="pv-two"][second p-one="pv-one" p-two="pv-two"]`,
		},
		{
			name: "repeated param",
			data: StructuredData{Element("first", "p", "1", "p", "2")},
			want: `[first p="1" p="2"]`,
		},
		{
			name: "empty value",
			data: StructuredData{Element("first", "p", "")},
			want: `[first p=""]`,
		},
		// special characters are not escaped
		{
			name: "special characters",
			data: StructuredData{Element("first", "p", `a "quoted" \ value]`)},
			want: `[first p="a "quoted" \ value]"]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteData(&buf, tt.data); err != nil {
				t.Fatalf("WriteData() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("WriteData() = %v, want %v", buf.String(), tt.want)
			}
		})
	}
}

func TestWriteEscapedData(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "nothing to escape", value: "plain", want: `[id p="plain"]`},
		{name: "quote", value: `say "hi"`, want: `[id p="say \"hi\""]`},
		{name: "backslash", value: `C:\temp`, want: `[id p="C:\\temp"]`},
		{name: "closing bracket", value: `[x]`, want: `[id p="[x\]"]`},
		{name: "all of them", value: `"\]`, want: `[id p="\"\\\]"]`},
		{name: "utf-8", value: "grüße", want: `[id p="grüße"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteEscapedData(&buf, StructuredData{Element("id", "p", tt.value)}); err != nil {
				t.Fatalf("WriteEscapedData() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("WriteEscapedData() = %v, want %v", buf.String(), tt.want)
			}
		})
	}
}

func TestFormatter_WriteData_escaping(t *testing.T) {
	data := StructuredData{Element("id", "p", `a"b`)}

	var plain, escaped bytes.Buffer
	if err := Default().WriteData(&plain, data); err != nil {
		t.Fatalf("Formatter.WriteData() error = %v", err)
	}
	if err := New(WithParamValueEscaping()).WriteData(&escaped, data); err != nil {
		t.Fatalf("Formatter.WriteData() error = %v", err)
	}
	if plain.String() != `[id p="a"b"]` {
		t.Errorf("Formatter.WriteData() = %v", plain.String())
	}
	if escaped.String() != `[id p="a\"b"]` {
		t.Errorf("Formatter.WriteData() with escaping = %v", escaped.String())
	}
}

func TestElement(t *testing.T) {
	tests := []struct {
		name       string
		nameValues []string
		want       SDElement
	}{
		{name: "no params", want: SDElement{ID: "id"}},
		{name: "pairs", nameValues: []string{"a", "1", "b", "2"}, want: SDElement{ID: "id", Params: []SDParam{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}}},
		{name: "odd", nameValues: []string{"a", "1", "b"}, want: SDElement{ID: "id", Params: []SDParam{{Name: "a", Value: "1"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Element("id", tt.nameValues...); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Element() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
