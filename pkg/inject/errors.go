package inject

import "errors"

var (
	ErrNotFunc      = errors.New("inject: value is not a function")
	ErrBadSignature = errors.New("inject: function must return a value and an optional error")
	ErrUnresolved   = errors.New("inject: no value provided for argument type")
	ErrNilValue     = errors.New("inject: cannot provide a nil value")
)
