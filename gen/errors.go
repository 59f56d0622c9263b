package gen

import "errors"

var (
	ErrLinknameAlreadyUsed = errors.New("encountered duplicate linkname")
	ErrIdentAlreadyUsed    = errors.New("encountered duplicate transfer function name")
	ErrUnsupported         = errors.New("unsupported signature")
)
