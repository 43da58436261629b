package rfc5424

import (
	"io"
	"strings"
)

// StructuredData is the STRUCTURED-DATA part of a message. It can contain zero, one or multiple
// structured data elements. With zero elements the NILVALUE is written.
//
// SD-IDs must be printable US-ASCII and must not exist more than once in a message. Param values
// must be UTF-8. None of this is validated, malformed input ends up in the message as it is.
type StructuredData []SDElement

// SDElement consists of a name, the SD-ID, and parameter name-value pairs.
type SDElement struct {
	ID     string
	Params []SDParam
}

// SDParam is one PARAM-NAME="PARAM-VALUE" pair of an SDElement
type SDParam struct {
	Name  string
	Value string
}

// Element is a shorthand for building an SDElement from name-value pairs.
// An odd number of `nameValues` drops the last name.
func Element(id string, nameValues ...string) SDElement {
	e := SDElement{ID: id}
	if len(nameValues) > 1 {
		e.Params = make([]SDParam, 0, len(nameValues)/2)
	}
	for i := 0; i+1 < len(nameValues); i += 2 {
		e.Params = append(e.Params, SDParam{Name: nameValues[i], Value: nameValues[i+1]})
	}
	return e
}

// WriteData writes the STRUCTURED-DATA field. Param values are written as they are, the
// characters '"', '\' and ']' are not escaped.
func WriteData(w io.Writer, data StructuredData) error {
	return writeData(w, data, false)
}

// WriteEscapedData writes the STRUCTURED-DATA field and escapes '"', '\' and ']' inside
// param values with a backslash as required by RFC 5424 section 6.3.3.
func WriteEscapedData(w io.Writer, data StructuredData) error {
	return writeData(w, data, true)
}

var (
	sdOpen       = []byte{'['}
	sdClose      = []byte{']'}
	sdParamStart = []byte{'=', '"'}
	sdParamEnd   = []byte{'"'}
	space        = []byte{' '}
)

func writeData(w io.Writer, data StructuredData, escape bool) error {
	if len(data) == 0 {
		return writeString(w, nilValue)
	}
	for _, elem := range data {
		if err := write(w, sdOpen); err != nil {
			return err
		}
		if err := writeString(w, elem.ID); err != nil {
			return err
		}
		for _, param := range elem.Params {
			if err := write(w, space); err != nil {
				return err
			}
			if err := writeString(w, param.Name); err != nil {
				return err
			}
			if err := write(w, sdParamStart); err != nil {
				return err
			}
			if escape {
				if err := writeEscapedParamValue(w, param.Value); err != nil {
					return err
				}
			} else if err := writeString(w, param.Value); err != nil {
				return err
			}
			if err := write(w, sdParamEnd); err != nil {
				return err
			}
		}
		if err := write(w, sdClose); err != nil {
			return err
		}
	}
	return nil
}

const paramValueSpecials = "\"\\]"

func writeEscapedParamValue(w io.Writer, v string) error {
	for {
		i := strings.IndexAny(v, paramValueSpecials)
		if i < 0 {
			return writeString(w, v)
		}
		if err := writeString(w, v[:i]); err != nil {
			return err
		}
		if err := write(w, []byte{'\\', v[i]}); err != nil {
			return err
		}
		v = v[i+1:]
	}
}
