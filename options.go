package i18nurl

import (
	"log/slog"

	"github.com/dmitrymomot/i18nurl/internal"
	"github.com/dmitrymomot/i18nurl/pkg/paramtype"
	"github.com/dmitrymomot/i18nurl/pkg/urlmatcher"
)

// Factory options

// WithLogger sets the factory logger. If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithCompiler replaces the single-pattern compiler.
func WithCompiler(c urlmatcher.Compiler) Option {
	return internal.WithCompiler(c)
}

// WithRegistry shares a parameter type registry between factories.
func WithRegistry(r *paramtype.Registry) Option {
	return internal.WithRegistry(r)
}

// WithRootLocale sets the default root locale.
func WithRootLocale(locale string) Option {
	return internal.WithRootLocale(locale)
}

// WithCaseInsensitive sets the default case sensitivity. Defaults to false.
func WithCaseInsensitive(enabled bool) Option {
	return internal.WithCaseInsensitive(enabled)
}

// WithStrictMode sets the default trailing slash handling. Defaults to true.
func WithStrictMode(enabled bool) Option {
	return internal.WithStrictMode(enabled)
}

// WithLocaleValidation enables BCP 47 validation of locale keys. Defaults to false:
// locale keys are opaque identifiers such as "default" or "en_GB".
func WithLocaleValidation(enabled bool) Option {
	return internal.WithLocaleValidation(enabled)
}

// Compile options

func CompileRootLocale(locale string) CompileOption {
	return internal.CompileRootLocale(locale)
}

func CompileStrict(enabled bool) CompileOption {
	return internal.CompileStrict(enabled)
}

func CompileCaseInsensitive(enabled bool) CompileOption {
	return internal.CompileCaseInsensitive(enabled)
}

// CompileParam declares settings for a parameter, such as a default value.
func CompileParam(name string, pc ParamConfig) CompileOption {
	return internal.CompileParam(name, pc)
}
