package locale

import "errors"

var (
	ErrEmptyLocale   = errors.New("locale: locale cannot be empty")
	ErrInvalidLocale = errors.New("locale: invalid BCP 47 tag")
)
