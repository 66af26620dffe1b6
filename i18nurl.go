package i18nurl

import (
	"sync/atomic"

	"github.com/dmitrymomot/i18nurl/internal"
	"github.com/dmitrymomot/i18nurl/pkg/paramtype"
	"github.com/dmitrymomot/i18nurl/pkg/urlmatcher"
)

// Type aliases - public API
type (
	// Factory compiles locale patterns and owns the parameter type registry.
	Factory = internal.Factory

	// LocaleMatcherSet holds one matcher per locale and behaves like a single matcher.
	LocaleMatcherSet = internal.LocaleMatcherSet

	// LocalePattern pairs a locale with its pattern.
	LocalePattern = internal.LocalePattern

	// Patterns is an ordered list of per-locale patterns.
	Patterns = internal.Patterns

	// Config is the per-compile configuration.
	Config = internal.Config

	// Option configures the factory.
	Option = internal.Option

	// CompileOption overrides the factory defaults for one Compile call.
	CompileOption = internal.CompileOption

	// ConfigurationError reports an unusable matcher set, type registration or finalization.
	ConfigurationError = internal.ConfigurationError

	// Matcher is the capability set shared by single patterns and locale sets.
	Matcher = urlmatcher.Matcher

	// Values maps parameter names to typed values.
	Values = urlmatcher.Values

	// ParamConfig configures a single parameter.
	ParamConfig = urlmatcher.ParamConfig

	// Type is a parameter type.
	Type = paramtype.Type

	// Resolver invokes deferred type and default value factories.
	Resolver = paramtype.Resolver
)

// Constants
const (
	LocaleParam      = internal.LocaleParam
	RootLocaleMarker = internal.RootLocaleMarker
)

// Errors
var (
	ErrNoPatterns          = internal.ErrNoPatterns
	ErrDuplicateLocale     = internal.ErrDuplicateLocale
	ErrInvalidLocale       = internal.ErrInvalidLocale
	ErrMissingLocaleParam  = internal.ErrMissingLocaleParam
	ErrLocaleParamRequired = internal.ErrLocaleParamRequired
	ErrNoActiveLocale      = internal.ErrNoActiveLocale
)

// Capabilities lists the methods a value must provide to be a Matcher.
var Capabilities = internal.Capabilities

// Constructors

// New creates a factory with the given options.
//
// Example:
//
//	f := i18nurl.New(i18nurl.WithRootLocale("en"), i18nurl.WithLogger(log))
//	if err := f.Attach(inject.New()); err != nil {
//	    return err
//	}
//
//	about, err := f.Compile(i18nurl.Patterns{
//	    {Locale: "en", Pattern: "/about?rootLocale"},
//	    {Locale: "fr", Pattern: "/:locale/a-propos"},
//	})
func New(opts ...Option) *Factory {
	return internal.New(opts...)
}

// PatternsFromMap converts a map into Patterns sorted by locale.
func PatternsFromMap(m map[string]string) Patterns {
	return internal.PatternsFromMap(m)
}

// IsMatcher reports whether candidate provides every Matcher capability.
func IsMatcher(candidate any) bool {
	return internal.IsMatcher(candidate)
}

// MissingCapabilities returns the Matcher methods candidate lacks.
func MissingCapabilities(candidate any) []string {
	return internal.MissingCapabilities(candidate)
}

// IsConfigurationError reports whether err is or wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	return internal.IsConfigurationError(err)
}

// Process-wide factory

var defaultFactory atomic.Pointer[Factory]

func init() {
	defaultFactory.Store(New())
}

// Default returns the process-wide factory used by the package-level functions.
func Default() *Factory {
	return defaultFactory.Load()
}

// SetDefault replaces the process-wide factory. A nil factory is ignored.
func SetDefault(f *Factory) {
	if f != nil {
		defaultFactory.Store(f)
	}
}

// RootLocale returns the process-wide default root locale.
func RootLocale() string {
	return Default().RootLocale()
}

// SetRootLocale sets the process-wide default root locale.
func SetRootLocale(locale string) {
	Default().SetRootLocale(locale)
}

// SetCaseInsensitive sets the process-wide default case sensitivity.
func SetCaseInsensitive(enabled bool) {
	Default().SetCaseInsensitive(enabled)
}

// SetStrictMode sets the process-wide default trailing slash handling.
func SetStrictMode(enabled bool) {
	Default().SetStrictMode(enabled)
}

// Compile builds a LocaleMatcherSet with the process-wide factory.
func Compile(patterns Patterns, opts ...CompileOption) (*LocaleMatcherSet, error) {
	return Default().Compile(patterns, opts...)
}

// RegisterType defines a parameter type on the process-wide factory.
func RegisterType(name string, def Type) error {
	return Default().RegisterType(name, def)
}

// RegisterTypeFunc defines a deferred parameter type on the process-wide factory.
func RegisterTypeFunc(name string, factory any) error {
	return Default().RegisterTypeFunc(name, factory)
}

// Attach finalizes the process-wide factory's type registry.
func Attach(r Resolver) error {
	return Default().Attach(r)
}
