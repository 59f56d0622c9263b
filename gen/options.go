package gen

import (
	"omibyte.io/bridge/ir"
)

type Options struct {
	Namer ir.Namer

	// Jobs bounds the number of functions rendered concurrently.
	Jobs int

	// CalleeScope is prepended to paths that reach the real implementation
	// and its types, e.g. "super::".
	CalleeScope string
}

func (o Options) jobs() int {
	if o.Jobs < 1 {
		return 1
	}
	return o.Jobs
}
