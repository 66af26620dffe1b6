package internal

import (
	"log/slog"

	"github.com/dmitrymomot/i18nurl/pkg/paramtype"
	"github.com/dmitrymomot/i18nurl/pkg/urlmatcher"
)

// Option configures the factory.
type Option func(*Factory)

// WithLogger sets the logger used for compile and registration events.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(f *Factory) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithCompiler replaces the single-pattern compiler.
//
// Example:
//
//	i18nurl.New(
//	    i18nurl.WithCompiler(urlmatcher.CompilerFunc(myCompile)),
//	)
func WithCompiler(c urlmatcher.Compiler) Option {
	return func(f *Factory) {
		f.compiler = c
	}
}

// WithRegistry shares a parameter type registry between factories.
func WithRegistry(r *paramtype.Registry) Option {
	return func(f *Factory) {
		f.registry = r
	}
}

// WithRootLocale sets the default root locale.
func WithRootLocale(locale string) Option {
	return func(f *Factory) {
		f.defaults.RootLocale = locale
	}
}

// WithCaseInsensitive sets the default case sensitivity.
func WithCaseInsensitive(enabled bool) Option {
	return func(f *Factory) {
		f.defaults.CaseInsensitive = enabled
	}
}

// WithStrictMode sets the default trailing slash handling.
func WithStrictMode(enabled bool) Option {
	return func(f *Factory) {
		f.defaults.Strict = enabled
	}
}

// WithLocaleValidation enables BCP 47 validation of locale keys. Off by default.
func WithLocaleValidation(enabled bool) Option {
	return func(f *Factory) {
		f.validateLocale = enabled
	}
}

// CompileOption overrides the factory defaults for a single Compile call.
type CompileOption func(*Config)

// CompileRootLocale overrides the root locale for one Compile call.
func CompileRootLocale(locale string) CompileOption {
	return func(c *Config) {
		c.RootLocale = locale
	}
}

// CompileStrict overrides strict mode for one Compile call.
func CompileStrict(enabled bool) CompileOption {
	return func(c *Config) {
		c.Strict = enabled
	}
}

// CompileCaseInsensitive overrides case sensitivity for one Compile call.
func CompileCaseInsensitive(enabled bool) CompileOption {
	return func(c *Config) {
		c.CaseInsensitive = enabled
	}
}

// CompileParam declares settings for a parameter, such as a default value.
func CompileParam(name string, pc urlmatcher.ParamConfig) CompileOption {
	return func(c *Config) {
		if c.Params == nil {
			c.Params = make(map[string]urlmatcher.ParamConfig)
		}
		c.Params[name] = pc
	}
}
