package ir

import "strings"

type TypeKind int

const (
	TypePath TypeKind = iota
	TypeRef
	TypeSlice
	TypePtr
)

// Type is a parsed source-language type expression.
type Type struct {
	Kind TypeKind

	// Path is the path as written ("u8", "super::Foo", "Vec<u8>"). Only set
	// for TypePath.
	Path string

	// Mutable marks `&mut T` and `*mut T`.
	Mutable bool

	// Lifetime is the reference lifetime without its leading quote.
	Lifetime string

	// Elem is the referenced, pointed-to or slice element type.
	Elem *Type
}

func Path(path string) *Type {
	return &Type{Kind: TypePath, Path: path}
}

func Ref(elem *Type) *Type {
	return &Type{Kind: TypeRef, Elem: elem}
}

func RefMut(elem *Type) *Type {
	return &Type{Kind: TypeRef, Mutable: true, Elem: elem}
}

func Slice(elem *Type) *Type {
	return &Type{Kind: TypeSlice, Elem: elem}
}

func MutPtr(elem *Type) *Type {
	return &Type{Kind: TypePtr, Mutable: true, Elem: elem}
}

func ConstPtr(elem *Type) *Type {
	return &Type{Kind: TypePtr, Elem: elem}
}

// WithLifetime returns a copy of a reference type carrying the lifetime.
func (t *Type) WithLifetime(lifetime string) *Type {
	cpy := *t
	cpy.Lifetime = strings.TrimPrefix(lifetime, "'")
	return &cpy
}

// IsRef reports whether t is a reference type.
func (t *Type) IsRef() bool {
	return t != nil && t.Kind == TypeRef
}

// Deref strips one level of reference. Other types are returned unchanged.
func (t *Type) Deref() *Type {
	if t.IsRef() {
		return t.Elem
	}
	return t
}

// Name returns the last path segment of a path type, ignoring generic
// arguments.
func (t *Type) Name() string {
	if t == nil || t.Kind != TypePath {
		return ""
	}
	name := t.Path
	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	return strings.TrimSpace(name)
}

func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind || t.Path != other.Path || t.Mutable != other.Mutable || t.Lifetime != other.Lifetime {
		return false
	}
	return t.Elem.Equal(other.Elem)
}

func (t *Type) String() string {
	if t == nil {
		return "()"
	}

	switch t.Kind {
	case TypeRef:
		var b strings.Builder
		b.WriteByte('&')
		if len(t.Lifetime) > 0 {
			b.WriteString("'" + t.Lifetime + " ")
		}
		if t.Mutable {
			b.WriteString("mut ")
		}
		b.WriteString(t.Elem.String())
		return b.String()
	case TypeSlice:
		return "[" + t.Elem.String() + "]"
	case TypePtr:
		if t.Mutable {
			return "*mut " + t.Elem.String()
		}
		return "*const " + t.Elem.String()
	default:
		return t.Path
	}
}
