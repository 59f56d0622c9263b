package ir

import (
	"omibyte.io/bridge/ctypes"
)

type Class int

const (
	// ClassOpaque is any type without a built-in representation. Opaque
	// values cross the boundary as untyped pointers.
	ClassOpaque Class = iota
	ClassPrimitive
	ClassStringRef
	ClassRefSlice
)

func (c Class) String() string {
	switch c {
	case ClassPrimitive:
		return "primitive"
	case ClassStringRef:
		return "str-ref"
	case ClassRefSlice:
		return "ref-slice"
	default:
		return "opaque"
	}
}

// Classification is the result of classifying a type expression.
type Classification struct {
	Class     Class
	Primitive ctypes.Primitive
	Elem      *Classification
}

// Classify decides whether t is one of the built-in marshalable types. It
// never fails: anything that is not recognized is opaque.
func Classify(t *Type) Classification {
	if t == nil {
		return Classification{}
	}

	switch t.Kind {
	case TypePath:
		if p, ok := ctypes.Lookup(t.Path); ok {
			return Classification{Class: ClassPrimitive, Primitive: p}
		}
	case TypeRef:
		elem := t.Elem
		if elem == nil {
			break
		}
		switch elem.Kind {
		case TypePath:
			if elem.Path == "str" {
				return Classification{Class: ClassStringRef}
			}
		case TypeSlice:
			if inner := Classify(elem.Elem); inner.IsBuiltin() {
				return Classification{Class: ClassRefSlice, Elem: &inner}
			}
		}
	}
	return Classification{}
}

func (c Classification) IsBuiltin() bool {
	return c.Class != ClassOpaque
}

// CType returns the C spelling. String references and slices cross as a
// pointer to a pointer/length pair, opaque values as an untyped pointer.
func (c Classification) CType() string {
	if c.Class == ClassPrimitive {
		return c.Primitive.C
	}
	return "void*"
}

// NeedsIntHeader reports whether the C spelling requires <stdint.h>.
func (c Classification) NeedsIntHeader() bool {
	return c.Class == ClassPrimitive && c.Primitive.NeedsIntHeader()
}

// Header returns the C header the spelling depends on, if any.
func (c Classification) Header() string {
	if c.Class == ClassPrimitive {
		return c.Primitive.Header
	}
	return ""
}

func (c Classification) String() string {
	switch c.Class {
	case ClassPrimitive:
		return c.Class.String() + "(" + c.Primitive.Name + ")"
	case ClassRefSlice:
		return c.Class.String() + "(" + c.Elem.String() + ")"
	default:
		return c.Class.String()
	}
}
