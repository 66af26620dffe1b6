package urlmatcher

import "errors"

var (
	ErrInvalidPattern = errors.New("urlmatcher: invalid pattern")
	ErrDuplicateParam = errors.New("urlmatcher: duplicate parameter name")
	ErrRegistryOpen   = errors.New("urlmatcher: named types need a finalized registry")
)
