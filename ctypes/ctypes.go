// Package ctypes holds the table of primitives that have a fixed C
// representation on both sides of the boundary.
package ctypes

import (
	_ "embed"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

const (
	HeaderStdint  = "stdint.h"
	HeaderStdbool = "stdbool.h"
)

//go:embed ctypes.yaml
var rawPrimitives []byte

var primitives Primitives

func All() Primitives {
	return primitives
}

type Primitives []Primitive
type Primitive struct {
	Name   string `yaml:"name"`
	C      string `yaml:"c"`
	Header string `yaml:"header"`
}

// NeedsIntHeader reports whether a C declaration using this primitive must
// include the fixed-width integer header.
func (p Primitive) NeedsIntHeader() bool {
	return p.Header == HeaderStdint
}

func (t Primitives) Lookup(name string) (Primitive, bool) {
	i := slices.IndexFunc(t, func(p Primitive) bool {
		return p.Name == name
	})
	if i < 0 {
		return Primitive{}, false
	}
	return t[i], true
}

// Lookup finds the primitive spelled name in the source language.
func Lookup(name string) (Primitive, bool) {
	return primitives.Lookup(name)
}

func init() {
	var t struct {
		Elements []Primitive `yaml:"primitives"`
	}
	if err := yaml.Unmarshal(rawPrimitives, &t); err != nil {
		panic(err)
	}

	primitives = t.Elements
}
