package manifest

import "errors"

var (
	ErrSchema             = errors.New("manifest does not match schema")
	ErrMissingOwner       = errors.New("method has no owning type")
	ErrOwnedOpaqueArg     = errors.New("owned opaque argument not allowed")
	ErrInvalidInitializer = errors.New("initializer must return its owning type")
	ErrDuplicateType      = errors.New("type declared more than once")
)
