package ir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func method(name string, recv Param, rest ...Param) *ExternFn {
	return &ExternFn{
		Signature: Signature{Name: name, Params: append([]Param{recv}, rest...)},
		Owner:     "Foo",
	}
}

// receiverForms covers every way of writing the receiver.
func receiverForms() []*ExternFn {
	return []*ExternFn{
		method("make1", Receiver(ByValue)),
		method("make2", Receiver(ByRef)),
		method("make3", Receiver(ByRefMut)),
		method("make4", TypedReceiver(Path("Foo"))),
		method("make5", TypedReceiver(Ref(Path("Foo")))),
		method("make6", TypedReceiver(RefMut(Path("Foo")))),
	}
}

func TestRenamesSelfToThisInParams(t *testing.T) {
	for _, fn := range receiverForms() {
		t.Run(fn.Name, func(t *testing.T) {
			params := fn.AbiParams()
			require.Len(t, params, 1)
			assert.Equal(t, "this", params[0].Name)
			assert.Equal(t, "this: *mut Foo", fn.RenderAbiParams())
		})
	}
}

func TestDoesNotIncludeSelfInCallArgs(t *testing.T) {
	for _, fn := range receiverForms() {
		t.Run(fn.Name, func(t *testing.T) {
			assert.Empty(t, fn.CallArgs())
			assert.Equal(t, "", fn.RenderCallArgs())
		})
	}
}

func TestReceiverOnOtherSideIsUnwrapped(t *testing.T) {
	for _, fn := range receiverForms() {
		fn.Host = HostSwift
		t.Run(fn.Name, func(t *testing.T) {
			args := fn.CallArgs()
			require.Len(t, args, 1)
			assert.Equal(t, ArgHandle, args[0].Kind)
			assert.Equal(t, "self.0", fn.RenderCallArgs())
		})
	}
}

func TestSelfReference(t *testing.T) {
	tests := []struct {
		fn      *ExternFn
		ok      bool
		mutable bool
	}{
		{method("a", Receiver(ByValue)), false, false},
		{method("b", Receiver(ByRef)), true, false},
		{method("c", Receiver(ByRefMut)), true, true},
		{method("d", TypedReceiver(Path("Foo"))), false, false},
		{method("e", TypedReceiver(Ref(Path("Foo")))), true, false},
		{method("f", TypedReceiver(RefMut(Path("Foo")))), true, true},
		{&ExternFn{Signature: Signature{Name: "g"}}, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.fn.Name, func(t *testing.T) {
			ref, ok := tc.fn.SelfReference()
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.mutable, ref.Mutable)
			assert.Equal(t, tc.mutable, tc.fn.SelfMutability())
		})
	}
}

func TestSelfReferenceLifetime(t *testing.T) {
	recv := Receiver(ByRef)
	recv.Lifetime = "a"
	ref, ok := method("a", recv).SelfReference()
	require.True(t, ok)
	assert.Equal(t, "a", ref.Lifetime)

	ref, ok = method("b", TypedReceiver(Ref(Path("Foo")).WithLifetime("'b"))).SelfReference()
	require.True(t, ok)
	assert.Equal(t, "b", ref.Lifetime)
}

func TestIsMethod(t *testing.T) {
	assert.True(t, method("a", Receiver(ByRef)).IsMethod())

	free := &ExternFn{Signature: Signature{Name: "f", Params: []Param{Named("x", Path("u32"))}}}
	assert.False(t, free.IsMethod())

	// A parameter named self that is not first is not a receiver.
	namedSelf := &ExternFn{Signature: Signature{Name: "g", Params: []Param{
		Named("x", Path("u8")),
		Named("self", Ref(Path("Foo"))),
	}}}
	assert.False(t, namedSelf.IsMethod())
	assert.True(t, namedSelf.HasNamedSelf())
}

func TestFreeFunction(t *testing.T) {
	fn := &ExternFn{Signature: Signature{Name: "f", Params: []Param{Named("x", Path("u32"))}}}

	assert.Equal(t, "x: u32", fn.RenderAbiParams())
	assert.Equal(t, "x", fn.RenderCallArgs())
	assert.Equal(t, "uint32_t x", fn.HeaderParams())
	assert.Equal(t, "void", fn.HeaderReturn())
	assert.True(t, fn.ContainsInts())
	assert.Equal(t, []string{"stdint.h"}, fn.Includes())

	n := NewNamer("")
	assert.Equal(t, "__swift_bridge__$f", fn.LinkName(n))
	assert.Equal(t, "__swift_bridge__f", fn.PrefixedName(n))
}

func TestMethodReturningPrimitive(t *testing.T) {
	fn := method("make", Receiver(ByRef))
	fn.Return = Path("u8")

	assert.Equal(t, "this: *mut Foo", fn.RenderAbiParams())
	assert.Equal(t, "void* self", fn.HeaderParams())
	assert.Equal(t, "uint8_t", fn.HeaderReturn())
	assert.True(t, fn.ContainsInts())

	n := NewNamer("")
	assert.Equal(t, "__swift_bridge__$Foo$make", fn.LinkName(n))
	assert.Equal(t, "__swift_bridge__Foo_make", fn.PrefixedName(n))
}

func TestOwnedOpaqueArgIsConsumed(t *testing.T) {
	fn := method("set", Receiver(ByRefMut), Named("other", Path("Bar")))

	assert.Equal(t, "this: *mut Foo, other: *mut Bar", fn.RenderAbiParams())

	args := fn.CallArgs()
	require.Len(t, args, 1)
	assert.Equal(t, ArgConsume, args[0].Kind)
	assert.True(t, args[0].Consumes())
	assert.True(t, args[0].Unsafe())
	assert.Equal(t, "unsafe { *Box::from_raw(other) }", args[0].String())

	assert.Equal(t, "void* self, void* other", fn.HeaderParams())
	assert.False(t, fn.ContainsInts())
}

func TestBorrowedOpaqueArgs(t *testing.T) {
	fn := method("merge", Receiver(ByRef),
		Named("a", Ref(Path("Bar"))),
		Named("b", RefMut(Path("Bar")).WithLifetime("a")),
		Named("n", Path("usize")),
	)

	assert.Equal(t, "this: *mut Foo, a: *mut Bar, b: *mut Bar, n: usize", fn.RenderAbiParams())
	assert.Equal(t, "unsafe { &*a }, unsafe { &mut *b }, n", fn.RenderCallArgs())

	args := fn.CallArgs()
	require.Len(t, args, 3)
	assert.False(t, args[0].Consumes())
	assert.False(t, args[1].Consumes())
	assert.False(t, args[2].Unsafe())

	assert.Equal(t, "void* self, void* a, void* b, uintptr_t n", fn.HeaderParams())
}

func TestReturnsSlice(t *testing.T) {
	fn := &ExternFn{Signature: Signature{Name: "bytes", Return: Ref(Slice(Path("u8")))}}
	assert.True(t, fn.ReturnsSlice())
	assert.Equal(t, "void*", fn.HeaderReturn())
	assert.Equal(t, "void", fn.HeaderParams())

	fn.Return = Ref(Path("str"))
	assert.False(t, fn.ReturnsSlice())

	fn.Return = nil
	assert.False(t, fn.ReturnsSlice())
}

func TestOpaqueReturn(t *testing.T) {
	fn := &ExternFn{Signature: Signature{Name: "new", Return: Path("Foo")}, Owner: "Foo", Initializer: true}
	assert.Equal(t, "void*", fn.HeaderReturn())
	assert.Equal(t, "void", fn.HeaderParams())
	assert.Equal(t, "", fn.RenderAbiParams())
	assert.Empty(t, fn.CallArgs())
}

func TestNamedSelfParam(t *testing.T) {
	fn := &ExternFn{
		Signature: Signature{Name: "visit", Params: []Param{
			Named("count", Path("u16")),
			Named("self", Ref(Path("Foo"))),
			Named("flag", Path("bool")),
		}},
		Owner: "Foo",
	}

	assert.Equal(t, "count: u16, this: *mut Foo, flag: bool", fn.RenderAbiParams())
	assert.Equal(t, "count, flag", fn.RenderCallArgs())
	assert.Equal(t, "uint16_t count, void* self, bool flag", fn.HeaderParams())
	assert.Equal(t, []string{"stdbool.h", "stdint.h"}, fn.Includes())

	fn.Host = HostSwift
	assert.Equal(t, "count, self.0, flag", fn.RenderCallArgs())
}

func TestBuiltinParamsPassThrough(t *testing.T) {
	fn := &ExternFn{Signature: Signature{Name: "log", Params: []Param{
		Named("msg", Ref(Path("str"))),
		Named("data", Ref(Slice(Path("u8")))),
		Named("ratio", Path("f64")),
	}}}

	assert.Equal(t, "msg: &str, data: &[u8], ratio: f64", fn.RenderAbiParams())
	assert.Equal(t, "msg, data, ratio", fn.RenderCallArgs())
	assert.Equal(t, "void* msg, void* data, double ratio", fn.HeaderParams())
	assert.False(t, fn.ContainsInts())
	assert.Empty(t, fn.Includes())
}

func TestArtifactsAgreeOnOrder(t *testing.T) {
	fns := append(receiverForms(),
		method("set", Receiver(ByRefMut), Named("other", Path("Bar")), Named("x", Path("i32"))),
		&ExternFn{Signature: Signature{Name: "f", Params: []Param{
			Named("a", Path("u8")),
			Named("self", Path("Foo")),
			Named("b", Ref(Path("Baz"))),
		}}, Owner: "Foo"},
	)

	for _, fn := range fns {
		t.Run(fn.Name, func(t *testing.T) {
			abi := fn.AbiParams()
			header := strings.Split(fn.HeaderParams(), ", ")
			require.Len(t, header, len(abi))

			for i, param := range fn.Params {
				h := header[i]
				switch {
				case param.IsReceiver(), param.IsNamedSelf():
					assert.Equal(t, "this", abi[i].Name)
					assert.Equal(t, "void* self", h)
				default:
					assert.Equal(t, param.Name, abi[i].Name)
					assert.True(t, strings.HasSuffix(h, " "+param.Name), h)
				}
			}
		})
	}
}

func TestHeaderParamSpelling(t *testing.T) {
	types := []*Type{
		Path("u8"), Path("i32"), Path("f32"), Path("bool"),
		Path("Foo"), Ref(Path("Foo")), RefMut(Path("Bar")), Ref(Path("str")),
	}

	for _, ty := range types {
		fn := &ExternFn{Signature: Signature{Name: "f", Params: []Param{Named("arg", ty)}}}
		c := Classify(ty)
		if c.IsBuiltin() {
			assert.Equal(t, c.CType()+" arg", fn.HeaderParams())
		} else {
			assert.Equal(t, "void* arg", fn.HeaderParams())
		}
	}
}

func TestReceiverWithoutOwnerPanics(t *testing.T) {
	fn := method("broken", Receiver(ByRef))
	fn.Owner = ""
	assert.Panics(t, func() { fn.AbiParams() })
}

func TestSignatureString(t *testing.T) {
	recv := Receiver(ByRefMut)
	recv.Lifetime = "a"
	sig := Signature{
		Name:   "set",
		Params: []Param{recv, Named("other", Ref(Path("Bar"))), Named("n", Path("u8"))},
		Return: Ref(Slice(Path("u8"))),
	}
	assert.Equal(t, "fn set(&'a mut self, other: &Bar, n: u8) -> &[u8]", sig.String())

	sig = Signature{Name: "own", Params: []Param{TypedReceiver(Path("Foo"))}}
	assert.Equal(t, "fn own(self: Foo)", sig.String())
}
