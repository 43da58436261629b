package main

import (
	"strings"

	"go.githedgehog.com/syslogfmt/pkg/config"
)

// sdFlag collects the structured data elements of every occurrence of the flag
type sdFlag struct {
	elems []config.SDElement
	raw   []string
}

// Set implements flag.Value
func (f *sdFlag) Set(s string) error {
	elem, err := config.ParseSDElement(s)
	if err != nil {
		return err
	}
	f.elems = append(f.elems, elem)
	f.raw = append(f.raw, s)
	return nil
}

func (f *sdFlag) String() string {
	return strings.Join(f.raw, " ")
}
