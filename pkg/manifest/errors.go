package manifest

import "errors"

var (
	ErrInvalidFile    = errors.New("manifest: invalid route file")
	ErrEmptyRoute     = errors.New("manifest: route has no locale patterns")
	ErrDuplicateRoute = errors.New("manifest: duplicate route name")
	ErrUnknownRoute   = errors.New("manifest: unknown route")
)
