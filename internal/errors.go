package internal

import (
	"errors"
	"strings"
)

// Sentinel errors. Every construction, registration and finalization failure
// is returned wrapped in a *ConfigurationError.
var (
	ErrNoPatterns          = errors.New("i18nurl: no locale patterns")
	ErrDuplicateLocale     = errors.New("i18nurl: duplicate locale")
	ErrInvalidLocale       = errors.New("i18nurl: invalid locale identifier")
	ErrMissingLocaleParam  = errors.New("i18nurl: missing locale parameter, no root locale configured")
	ErrLocaleParamRequired = errors.New("i18nurl: missing locale parameter; only root locale may omit it")
)

// ErrNoActiveLocale is returned by Concat when no matcher exists for the locale
// of the last Format call. It is a negative result, not a configuration error.
var ErrNoActiveLocale = errors.New("i18nurl: no matcher for the last formatted locale")

// Operations reported by ConfigurationError.
const (
	OpCompile  = "compile"
	OpRegister = "register"
	OpAttach   = "attach"
)

// ConfigurationError reports a matcher set, type registration or finalization
// that cannot be used. It is always fatal for the operation that returned it.
type ConfigurationError struct {
	// Err is the underlying cause.
	Err error

	// Op is the failed operation: OpCompile, OpRegister or OpAttach.
	Op string

	// Locale is the locale being compiled, if any.
	Locale string

	// Pattern is the pattern being compiled, if any.
	Pattern string

	// TypeName is the parameter type being registered, if any.
	TypeName string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("i18nurl: ")
	b.WriteString(e.Op)
	if e.Locale != "" {
		b.WriteString(" locale " + quote(e.Locale))
	}
	if e.Pattern != "" {
		b.WriteString(" pattern " + quote(e.Pattern))
	}
	if e.TypeName != "" {
		b.WriteString(" type " + quote(e.TypeName))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ConfigErrorOption configures a ConfigurationError.
type ConfigErrorOption func(*ConfigurationError)

// NewConfigurationError creates a ConfigurationError for op caused by err.
func NewConfigurationError(op string, err error, opts ...ConfigErrorOption) *ConfigurationError {
	e := &ConfigurationError{Op: op, Err: err}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithLocale records the locale whose pattern failed.
func WithLocale(locale string) ConfigErrorOption {
	return func(e *ConfigurationError) {
		e.Locale = locale
	}
}

// WithPattern records the offending pattern.
func WithPattern(pattern string) ConfigErrorOption {
	return func(e *ConfigurationError) {
		e.Pattern = pattern
	}
}

// WithTypeName records the parameter type name involved.
func WithTypeName(name string) ConfigErrorOption {
	return func(e *ConfigurationError) {
		e.TypeName = name
	}
}

// IsConfigurationError reports whether err is or wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

func quote(s string) string {
	return `"` + s + `"`
}
