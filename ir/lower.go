package ir

import "strings"

// AbiParam is one parameter of the transfer function that crosses the
// boundary.
type AbiParam struct {
	Name string
	Type *Type
}

func (p AbiParam) String() string {
	return p.Name + ": " + p.Type.String()
}

// AbiParams lowers the parameter list to an ABI-safe one. The receiver
// becomes `this: *mut Owner`, built-in parameters are kept verbatim and
// opaque parameters become pointers to the underlying value.
func (f *ExternFn) AbiParams() []AbiParam {
	params := make([]AbiParam, 0, len(f.Params))
	for _, param := range f.Params {
		switch {
		case param.IsReceiver():
			if len(f.Owner) == 0 {
				panic("receiver without an owning type: " + f.Name)
			}
			params = append(params, AbiParam{Name: "this", Type: MutPtr(Path(f.Owner))})
		case Classify(param.Type).IsBuiltin():
			params = append(params, AbiParam{Name: param.Name, Type: param.Type})
		default:
			name := param.Name
			if param.IsNamedSelf() {
				name = "this"
			}
			params = append(params, AbiParam{Name: name, Type: MutPtr(param.Type.Deref())})
		}
	}
	return params
}

func (f *ExternFn) RenderAbiParams() string {
	params := f.AbiParams()
	rendered := make([]string, len(params))
	for i, param := range params {
		rendered[i] = param.String()
	}
	return strings.Join(rendered, ", ")
}

type ArgKind int

const (
	// ArgValue is passed through by name.
	ArgValue ArgKind = iota

	// ArgHandle is the opaque handle held by a proxy of a type that lives on
	// the other side.
	ArgHandle

	// ArgBorrow dereferences a raw pointer without taking ownership.
	ArgBorrow

	// ArgBorrowMut dereferences a raw pointer mutably without taking
	// ownership.
	ArgBorrowMut

	// ArgConsume takes ownership of the value behind a raw pointer. The
	// pointer must not be used again afterwards.
	ArgConsume
)

// CallArg is one argument of the call that reconstructs the original call
// from the lowered raw arguments.
type CallArg struct {
	Kind ArgKind
	Name string
}

// Unsafe reports whether the argument dereferences a raw pointer.
func (a CallArg) Unsafe() bool {
	return a.Kind == ArgBorrow || a.Kind == ArgBorrowMut || a.Kind == ArgConsume
}

// Consumes reports whether the argument takes ownership of the pointee.
func (a CallArg) Consumes() bool {
	return a.Kind == ArgConsume
}

func (a CallArg) String() string {
	switch a.Kind {
	case ArgHandle:
		return "self.0"
	case ArgBorrow:
		return "unsafe { &*" + a.Name + " }"
	case ArgBorrowMut:
		return "unsafe { &mut *" + a.Name + " }"
	case ArgConsume:
		return "unsafe { *Box::from_raw(" + a.Name + ") }"
	default:
		return a.Name
	}
}

// CallArgs reconstructs the argument list of the original call.
//
//	fn foo(&self, arg1: u8, arg2: &SomeType)
//	  becomes
//	arg1, unsafe { &*arg2 }
//
// The receiver and a parameter named `self` are omitted when the function is
// implemented on the wrapper's side and become the proxy handle otherwise.
func (f *ExternFn) CallArgs() []CallArg {
	var args []CallArg
	for _, param := range f.Params {
		if param.IsReceiver() || param.IsNamedSelf() {
			if f.Host != WrapperHost {
				args = append(args, CallArg{Kind: ArgHandle, Name: "self"})
			}
			continue
		}

		if Classify(param.Type).IsBuiltin() {
			args = append(args, CallArg{Kind: ArgValue, Name: param.Name})
			continue
		}

		switch param.Passing {
		case ByRef:
			args = append(args, CallArg{Kind: ArgBorrow, Name: param.Name})
		case ByRefMut:
			args = append(args, CallArg{Kind: ArgBorrowMut, Name: param.Name})
		default:
			args = append(args, CallArg{Kind: ArgConsume, Name: param.Name})
		}
	}
	return args
}

func (f *ExternFn) RenderCallArgs() string {
	args := f.CallArgs()
	rendered := make([]string, len(args))
	for i, arg := range args {
		rendered[i] = arg.String()
	}
	return strings.Join(rendered, ", ")
}
