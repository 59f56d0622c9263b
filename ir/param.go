package ir

import "strings"

// Passing is how a parameter is handed to the callee.
type Passing int

const (
	ByValue Passing = iota
	ByRef
	ByRefMut
)

func (p Passing) String() string {
	switch p {
	case ByRef:
		return "ref"
	case ByRefMut:
		return "ref-mut"
	default:
		return "value"
	}
}

type ParamKind int

const (
	ParamNamed ParamKind = iota
	ParamReceiver
)

// Param is one entry of a signature's parameter list. It is either the
// receiver or a named, typed parameter.
type Param struct {
	Kind ParamKind

	// Name is the parameter name. Empty for receivers.
	Name string

	// Type is the declared type. For a receiver it is only set when the
	// receiver was written with an explicit type (`self: &Foo`).
	Type *Type

	Passing  Passing
	Lifetime string
}

// Receiver returns an implicitly typed receiver (`self`, `&self`, `&mut self`).
func Receiver(passing Passing) Param {
	return Param{Kind: ParamReceiver, Passing: passing}
}

// TypedReceiver returns an explicitly typed receiver (`self: &Foo`).
func TypedReceiver(ty *Type) Param {
	passing, lifetime := passingOf(ty)
	return Param{Kind: ParamReceiver, Type: ty, Passing: passing, Lifetime: lifetime}
}

func Named(name string, ty *Type) Param {
	passing, lifetime := passingOf(ty)
	return Param{Kind: ParamNamed, Name: name, Type: ty, Passing: passing, Lifetime: lifetime}
}

func passingOf(ty *Type) (Passing, string) {
	if !ty.IsRef() {
		return ByValue, ""
	}
	if ty.Mutable {
		return ByRefMut, ty.Lifetime
	}
	return ByRef, ty.Lifetime
}

func (p Param) IsReceiver() bool {
	return p.Kind == ParamReceiver
}

// IsNamedSelf reports whether p is a non-receiver parameter literally named
// `self`. Such a parameter carries the proxy handle of an alternate calling
// convention and is lowered like the receiver.
func (p Param) IsNamedSelf() bool {
	return p.Kind == ParamNamed && p.Name == "self"
}

// Reference is a `&` or `&mut` marker with an optional lifetime.
type Reference struct {
	Mutable  bool
	Lifetime string
}

// Reference returns the reference marker of a by-reference parameter.
func (p Param) Reference() (Reference, bool) {
	if p.Passing == ByValue {
		return Reference{}, false
	}
	return Reference{Mutable: p.Passing == ByRefMut, Lifetime: p.Lifetime}, true
}

func (p Param) String() string {
	if p.IsReceiver() {
		if p.Type != nil {
			return "self: " + p.Type.String()
		}

		var b strings.Builder
		if ref, ok := p.Reference(); ok {
			b.WriteByte('&')
			if len(ref.Lifetime) > 0 {
				b.WriteString("'" + ref.Lifetime + " ")
			}
			if ref.Mutable {
				b.WriteString("mut ")
			}
		}
		b.WriteString("self")
		return b.String()
	}
	return p.Name + ": " + p.Type.String()
}
