package internal

import (
	"errors"
	"log/slog"
	"reflect"
	"sync"

	"github.com/dmitrymomot/i18nurl/pkg/locale"
	"github.com/dmitrymomot/i18nurl/pkg/logger"
	"github.com/dmitrymomot/i18nurl/pkg/paramtype"
	"github.com/dmitrymomot/i18nurl/pkg/urlmatcher"
)

// Capabilities lists the operations a value must provide to be used as a matcher.
var Capabilities = []string{"Format", "Exec", "Validates", "Parameters", "Concat", "String"}

const patternCacheSize = 512

// Factory builds LocaleMatcherSets and owns the parameter type registry.
type Factory struct {
	logger         *slog.Logger
	registry       *paramtype.Registry
	compiler       urlmatcher.Compiler
	defaults       Config
	validateLocale bool
	mu             sync.RWMutex
}

// New creates a factory. Without options it compiles with the reference
// compiler, strict mode on and no root locale.
func New(opts ...Option) *Factory {
	f := &Factory{
		logger:   logger.NewNope(),
		defaults: Config{Strict: true},
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.registry == nil {
		f.registry = paramtype.NewRegistry()
	}
	if f.compiler == nil {
		f.compiler = urlmatcher.NewFactory(f.registry, urlmatcher.WithCache(patternCacheSize))
	}
	return f
}

// RootLocale returns the default root locale.
func (f *Factory) RootLocale() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.defaults.RootLocale
}

// SetRootLocale sets the default root locale for subsequent compiles.
func (f *Factory) SetRootLocale(locale string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.defaults.RootLocale = locale
}

// SetCaseInsensitive sets the default case sensitivity for subsequent compiles.
func (f *Factory) SetCaseInsensitive(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.defaults.CaseInsensitive = enabled
}

// SetStrictMode sets the default trailing slash handling for subsequent compiles.
func (f *Factory) SetStrictMode(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.defaults.Strict = enabled
}

// Defaults returns a copy of the default configuration.
func (f *Factory) Defaults() Config {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.defaults
}

// Compile builds a LocaleMatcherSet from patterns. Options override the defaults
// for this call only. Every failure is a *ConfigurationError.
func (f *Factory) Compile(patterns Patterns, opts ...CompileOption) (*LocaleMatcherSet, error) {
	cfg := f.Defaults()
	cfg.Params = nil
	for _, opt := range opts {
		opt(&cfg)
	}

	if f.validateLocale {
		for _, lp := range patterns {
			if err := locale.Validate(lp.Locale); err != nil {
				f.logger.Warn("invalid locale", "locale", lp.Locale, "error", err)
				return nil, NewConfigurationError(OpCompile, errors.Join(ErrInvalidLocale, err),
					WithLocale(lp.Locale), WithPattern(lp.Pattern))
			}
		}
	}

	set, err := newLocaleMatcherSet(patterns, cfg, f.compiler)
	if err != nil {
		f.logger.Warn("failed to compile locale patterns", "patterns", patterns.String(), "error", err)
		return nil, err
	}

	f.logger.Debug("compiled locale patterns",
		"patterns", set.String(),
		"root_locale", cfg.RootLocale,
		"strict", cfg.Strict,
		"case_insensitive", cfg.CaseInsensitive,
	)
	return set, nil
}

// MustCompile is like Compile but panics on error.
func (f *Factory) MustCompile(patterns Patterns, opts ...CompileOption) *LocaleMatcherSet {
	set, err := f.Compile(patterns, opts...)
	if err != nil {
		panic(err)
	}
	return set
}

// IsMatcher reports whether candidate provides every matcher capability.
func (f *Factory) IsMatcher(candidate any) bool {
	return IsMatcher(candidate)
}

// Type returns the resolved parameter type registered under name.
// Nothing is returned before Attach.
func (f *Factory) Type(name string) (*paramtype.Type, bool) {
	return f.registry.Lookup(name)
}

// RegisterType defines a parameter type. Before Attach the definition is queued.
func (f *Factory) RegisterType(name string, def paramtype.Type) error {
	return f.register(name, func() error { return f.registry.Register(name, def) })
}

// RegisterTypeFunc defines a parameter type produced by factory, a function
// whose arguments are supplied by the resolver passed to Attach.
func (f *Factory) RegisterTypeFunc(name string, factory any) error {
	return f.register(name, func() error { return f.registry.RegisterFunc(name, factory) })
}

func (f *Factory) register(name string, fn func() error) error {
	if err := fn(); err != nil {
		f.logger.Warn("failed to register parameter type", "type", name, "error", err)
		return NewConfigurationError(OpRegister, err, WithTypeName(name))
	}
	f.logger.Debug("registered parameter type", "type", name, "finalized", f.registry.Finalized())
	return nil
}

// Attach finalizes the registry with the resolver r and resolves queued
// definitions. Calling it again flushes anything registered since.
func (f *Factory) Attach(r paramtype.Resolver) error {
	if err := f.registry.Attach(r); err != nil {
		f.logger.Warn("failed to finalize parameter types", "error", err)
		return NewConfigurationError(OpAttach, err)
	}
	f.logger.Debug("finalized parameter types", "types", f.registry.Names())
	return nil
}

// Registry returns the parameter type registry.
func (f *Factory) Registry() *paramtype.Registry {
	return f.registry
}

// Compiler returns the single-pattern compiler.
func (f *Factory) Compiler() urlmatcher.Compiler {
	return f.compiler
}

// IsMatcher reports whether candidate provides every matcher capability.
// Nil and typed nil pointers are not matchers.
func IsMatcher(candidate any) bool {
	if candidate == nil {
		return false
	}
	if _, ok := candidate.(urlmatcher.Matcher); !ok {
		return false
	}
	v := reflect.ValueOf(candidate)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Slice, reflect.Chan:
		return !v.IsNil()
	}
	return true
}

// MissingCapabilities returns the capabilities candidate lacks, by method name.
func MissingCapabilities(candidate any) []string {
	if candidate == nil {
		return append([]string(nil), Capabilities...)
	}
	t := reflect.TypeOf(candidate)
	var missing []string
	for _, name := range Capabilities {
		if _, ok := t.MethodByName(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
