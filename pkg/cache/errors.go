package cache

import "errors"

var ErrInvalidSize = errors.New("cache: size must be positive")
