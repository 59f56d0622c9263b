package gen

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"omibyte.io/bridge/ctypes"
	"omibyte.io/bridge/ir"
)

const indent = "    "

// RenderRust renders the Rust side of fn. Functions implemented in Rust get
// an exported transfer function that forwards to the implementation.
// Functions implemented in Swift get an extern import plus a safe proxy that
// calls it.
func RenderRust(fn *ir.ExternFn, opts Options) (string, error) {
	if fn.Host == ir.WrapperHost {
		return renderExport(fn, opts)
	}
	return renderImport(fn, opts)
}

// renderExport renders
//
//	#[export_name = "__swift_bridge__$Foo$bar"]
//	pub extern "C" fn __swift_bridge__Foo_bar(this: *mut super::Foo, n: u8) -> u8 {
//	    (unsafe { &*this }).bar(n)
//	}
func renderExport(fn *ir.ExternFn, opts Options) (string, error) {
	scope := opts.CalleeScope
	call := exportCallee(fn, scope) + "(" + fn.RenderCallArgs() + ")"

	var ret string
	body := call
	switch {
	case fn.Return == nil:
	case ir.Classify(fn.Return).IsBuiltin():
		ret = fn.Return.String()
	case fn.Return.IsRef():
		ptr := ir.ConstPtr(qualify(fn.Return.Elem, scope))
		if fn.Return.Mutable {
			ptr = ir.MutPtr(qualify(fn.Return.Elem, scope))
		}
		ret = ptr.String()
		body = call + " as " + ret
	case fn.Return.Kind == ir.TypePtr:
		ret = qualify(fn.Return, scope).String()
	default:
		ret = ir.MutPtr(qualify(fn.Return, scope)).String()
		body = "Box::into_raw(Box::new(" + call + "))"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "#[export_name = \"%s\"]\n", fn.LinkName(opts.Namer))
	fmt.Fprintf(&b, "pub extern \"C\" fn %s(%s)", fn.PrefixedName(opts.Namer), renderParams(fn.AbiParams(), scope))
	if len(ret) > 0 {
		b.WriteString(" -> " + ret)
	}
	b.WriteString(" {\n")
	b.WriteString(indent + body + "\n")
	b.WriteString("}\n")
	return b.String(), nil
}

func exportCallee(fn *ir.ExternFn, scope string) string {
	if recv, ok := fn.Receiver(); ok {
		return receiverExpr(recv.Passing) + "." + fn.Name
	}
	if i := slices.IndexFunc(fn.Params, ir.Param.IsNamedSelf); i >= 0 {
		return receiverExpr(fn.Params[i].Passing) + "." + fn.Name
	}
	if len(fn.Owner) > 0 {
		return scope + fn.Owner + "::" + fn.Name
	}
	return scope + fn.Name
}

// receiverExpr rebuilds the receiver from the `this` pointer.
func receiverExpr(passing ir.Passing) string {
	switch passing {
	case ir.ByRef:
		return "(unsafe { &*this })"
	case ir.ByRefMut:
		return "(unsafe { &mut *this })"
	default:
		return "(unsafe { *Box::from_raw(this) })"
	}
}

// renderImport renders
//
//	extern "C" {
//	    #[link_name = "__swift_bridge__$Foo$bar"]
//	    fn __swift_bridge__Foo_bar(this: *mut Foo, n: u8) -> u8;
//	}
//
//	impl Foo {
//	    pub fn bar(&self, n: u8) -> u8 {
//	        unsafe { __swift_bridge__Foo_bar(self.0, n) }
//	    }
//	}
func renderImport(fn *ir.ExternFn, opts Options) (string, error) {
	if fn.Return != nil && !ir.Classify(fn.Return).IsBuiltin() {
		return "", fmt.Errorf("%w: %s returns opaque type %s across an import", ErrUnsupported, fn.Name, fn.Return)
	}
	for _, param := range fn.Params {
		if param.IsReceiver() || param.IsNamedSelf() {
			continue
		}
		if !ir.Classify(param.Type).IsBuiltin() {
			return "", fmt.Errorf("%w: %s passes opaque type %s across an import", ErrUnsupported, fn.Name, param.Type)
		}
	}

	ident := fn.PrefixedName(opts.Namer)

	var b strings.Builder
	b.WriteString("extern \"C\" {\n")
	fmt.Fprintf(&b, "%s#[link_name = \"%s\"]\n", indent, fn.LinkName(opts.Namer))
	fmt.Fprintf(&b, "%sfn %s(%s)", indent, ident, renderParams(fn.AbiParams(), ""))
	if fn.Return != nil {
		b.WriteString(" -> " + fn.Return.String())
	}
	b.WriteString(";\n}\n\n")

	var outer string
	if len(fn.Owner) > 0 {
		fmt.Fprintf(&b, "impl %s {\n", fn.Owner)
		outer = indent
	}

	fmt.Fprintf(&b, "%spub %s {\n", outer, proxySignature(fn))
	fmt.Fprintf(&b, "%s%sunsafe { %s(%s) }\n", outer, indent, ident, fn.RenderCallArgs())
	fmt.Fprintf(&b, "%s}\n", outer)

	if len(fn.Owner) > 0 {
		b.WriteString("}\n")
	}
	return b.String(), nil
}

// proxySignature renders the safe signature of an imported function. A
// parameter named self is folded into a leading `&self`.
func proxySignature(fn *ir.ExternFn) string {
	if fn.IsMethod() || !fn.HasNamedSelf() {
		return fn.Signature.String()
	}

	sig := ir.Signature{Name: fn.Name, Return: fn.Return}
	sig.Params = append(sig.Params, ir.Receiver(ir.ByRef))
	for _, param := range fn.Params {
		if !param.IsNamedSelf() {
			sig.Params = append(sig.Params, param)
		}
	}
	return sig.String()
}

func renderParams(params []ir.AbiParam, scope string) string {
	rendered := make([]string, len(params))
	for i, param := range params {
		rendered[i] = ir.AbiParam{Name: param.Name, Type: qualify(param.Type, scope)}.String()
	}
	return strings.Join(rendered, ", ")
}

// qualify prefixes bare opaque type paths with scope so the generated module
// can name types declared by its parent.
func qualify(t *ir.Type, scope string) *ir.Type {
	if t == nil || len(scope) == 0 {
		return t
	}

	switch t.Kind {
	case ir.TypePath:
		if _, ok := ctypes.Lookup(t.Path); ok || t.Path == "str" || strings.ContainsAny(t.Path, ":<") {
			return t
		}
		return ir.Path(scope + t.Path)
	default:
		cpy := *t
		cpy.Elem = qualify(t.Elem, scope)
		return &cpy
	}
}
