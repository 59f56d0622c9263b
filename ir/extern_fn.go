package ir

import (
	"strings"

	"golang.org/x/exp/slices"
)

// HostLang identifies the runtime that contains the real implementation of a
// bridged function.
type HostLang int

const (
	HostRust HostLang = iota
	HostSwift
)

// WrapperHost is the side the generated transfer functions live on.
const WrapperHost = HostRust

func (h HostLang) String() string {
	switch h {
	case HostSwift:
		return "swift"
	default:
		return "rust"
	}
}

// Signature is a parsed function signature.
type Signature struct {
	Name   string
	Params []Param

	// Return is nil when the function returns nothing.
	Return *Type
}

// Receiver returns the receiver. Only the first parameter may be one.
func (s *Signature) Receiver() (Param, bool) {
	if len(s.Params) > 0 && s.Params[0].IsReceiver() {
		return s.Params[0], true
	}
	return Param{}, false
}

func (s *Signature) String() string {
	params := make([]string, len(s.Params))
	for i, param := range s.Params {
		params[i] = param.String()
	}

	result := "fn " + s.Name + "(" + strings.Join(params, ", ") + ")"
	if s.Return != nil {
		result += " -> " + s.Return.String()
	}
	return result
}

// ExternFn is a bridged function: its signature plus the metadata resolved
// for it upstream. It is built once and never mutated; every artifact
// generated for the function is derived from it.
//
//	fn bar(&self);
//	fn buzz(self: &Foo) -> u8;
//	fn new() -> Foo;   // init, associated to Foo
type ExternFn struct {
	Signature

	// Owner is the owning type of a method or associated function. Empty
	// for free functions.
	Owner string

	// Initializer marks the function as a constructor of Owner.
	Initializer bool

	Host HostLang
}

func (f *ExternFn) IsMethod() bool {
	_, ok := f.Receiver()
	return ok
}

// SelfReference returns the reference marker of the receiver when it is
// passed by reference, either as `&self` or as `self: &Foo`.
func (f *ExternFn) SelfReference() (Reference, bool) {
	recv, ok := f.Receiver()
	if !ok {
		return Reference{}, false
	}
	return recv.Reference()
}

// SelfMutability reports whether the receiver is a mutable reference.
func (f *ExternFn) SelfMutability() bool {
	ref, ok := f.SelfReference()
	return ok && ref.Mutable
}

func (f *ExternFn) ReturnsSlice() bool {
	return f.Return != nil && Classify(f.Return).Class == ClassRefSlice
}

// ContainsInts reports whether the return type or any parameter needs the
// fixed-width integer header.
func (f *ExternFn) ContainsInts() bool {
	if f.Return != nil && Classify(f.Return).NeedsIntHeader() {
		return true
	}
	for _, param := range f.Params {
		if param.Type != nil && Classify(param.Type).NeedsIntHeader() {
			return true
		}
	}
	return false
}

// Includes returns the sorted C headers the header declaration depends on.
func (f *ExternFn) Includes() []string {
	var headers []string
	add := func(t *Type) {
		if h := Classify(t).Header(); len(h) > 0 && !slices.Contains(headers, h) {
			headers = append(headers, h)
		}
	}

	if f.Return != nil {
		add(f.Return)
	}
	for _, param := range f.Params {
		if param.Type != nil && !param.IsReceiver() && !param.IsNamedSelf() {
			add(param.Type)
		}
	}
	slices.Sort(headers)
	return headers
}

// HasNamedSelf reports whether a parameter other than the receiver is named
// `self`.
func (f *ExternFn) HasNamedSelf() bool {
	return slices.IndexFunc(f.Params, Param.IsNamedSelf) >= 0
}

func (f *ExternFn) LinkName(n Namer) string {
	return n.LinkSymbol(f.Owner, f.Name)
}

func (f *ExternFn) PrefixedName(n Namer) string {
	return n.PrefixedIdent(f.Owner, f.Name)
}
