package gen

import (
	"golang.org/x/exp/slices"

	"omibyte.io/bridge/ctypes"
	"omibyte.io/bridge/ir"
)

// HeaderDecl renders the C declaration of fn.
//
//	uint8_t __swift_bridge__$Foo$make(void* self);
func HeaderDecl(fn *ir.ExternFn, namer ir.Namer) string {
	return fn.HeaderReturn() + " " + fn.LinkName(namer) + "(" + fn.HeaderParams() + ");"
}

// HeaderIncludes returns the C headers fn's declaration depends on.
func HeaderIncludes(fn *ir.ExternFn) []string {
	includes := fn.Includes()
	if fn.ContainsInts() && !slices.Contains(includes, ctypes.HeaderStdint) {
		includes = append(includes, ctypes.HeaderStdint)
	}
	return includes
}
