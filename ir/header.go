package ir

import "strings"

// HeaderParams renders the C parameter list.
//
//	fn foo(&self, arg1: u8, arg2: u32)
//	  becomes
//	void* self, uint8_t arg1, uint32_t arg2
func (f *ExternFn) HeaderParams() string {
	if len(f.Params) == 0 {
		return "void"
	}

	params := make([]string, len(f.Params))
	for i, param := range f.Params {
		if param.IsReceiver() || param.IsNamedSelf() {
			params[i] = "void* self"
			continue
		}

		if c := Classify(param.Type); c.IsBuiltin() {
			params[i] = c.CType() + " " + param.Name
		} else {
			params[i] = "void* " + param.Name
		}
	}
	return strings.Join(params, ", ")
}

func (f *ExternFn) HeaderReturn() string {
	if f.Return == nil {
		return "void"
	}
	if c := Classify(f.Return); c.IsBuiltin() {
		return c.CType()
	}
	return "void*"
}
