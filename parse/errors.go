package parse

import "errors"

var (
	ErrSyntax      = errors.New("syntax error")
	ErrUnsupported = errors.New("unsupported construct")
)
