package paramtype

import "errors"

var (
	ErrEmptyName         = errors.New("paramtype: type name cannot be empty")
	ErrDuplicateType     = errors.New("paramtype: duplicate type name")
	ErrResolverRequired  = errors.New("paramtype: context required to resolve deferred definition")
	ErrInvalidDefinition = errors.New("paramtype: invalid type definition")
	ErrDecode            = errors.New("paramtype: cannot decode value")
)
