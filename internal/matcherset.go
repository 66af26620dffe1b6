package internal

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"sync"

	"github.com/dmitrymomot/i18nurl/pkg/urlmatcher"
)

const (
	// LocaleParam is the parameter that carries the locale.
	LocaleParam = "locale"

	// RootLocaleMarker is the key a root-locale pattern exposes in Exec results
	// (for example with "/about?rootLocale") to have the root locale injected.
	RootLocaleMarker = "rootLocale"
)

// Config is the per-compile configuration.
type Config = urlmatcher.Config

// LocaleMatcherSet holds one compiled matcher per locale and behaves like a single matcher.
type LocaleMatcherSet struct {
	matchers   map[string]urlmatcher.Matcher
	params     urlmatcher.Params
	lastValues urlmatcher.Values
	config     Config
	source     string
	locales    []string
	mu         sync.Mutex
}

var _ urlmatcher.Matcher = (*LocaleMatcherSet)(nil)

// newLocaleMatcherSet compiles every pattern in order and checks that each locale
// declares the locale parameter, unless it is the root locale.
func newLocaleMatcherSet(patterns Patterns, cfg Config, compiler urlmatcher.Compiler) (*LocaleMatcherSet, error) {
	if len(patterns) == 0 {
		return nil, NewConfigurationError(OpCompile, ErrNoPatterns)
	}

	s := &LocaleMatcherSet{
		matchers: make(map[string]urlmatcher.Matcher, len(patterns)),
		params:   make(urlmatcher.Params),
		config:   cfg,
		source:   patterns.String(),
		locales:  make([]string, 0, len(patterns)),
	}

	for _, lp := range patterns {
		where := []ConfigErrorOption{WithLocale(lp.Locale), WithPattern(lp.Pattern)}

		if _, dup := s.matchers[lp.Locale]; dup {
			return nil, NewConfigurationError(OpCompile, ErrDuplicateLocale, where...)
		}

		m, err := compiler.Compile(lp.Pattern, cfg)
		if err != nil {
			return nil, NewConfigurationError(OpCompile, err, where...)
		}
		s.matchers[lp.Locale] = m
		s.locales = append(s.locales, lp.Locale)

		own := m.Parameters()
		maps.Copy(s.params, own)

		if own.Has(LocaleParam) {
			continue
		}
		switch {
		case cfg.RootLocale == "":
			return nil, NewConfigurationError(OpCompile,
				fmt.Errorf("%w: configure a root locale to let %q omit it", ErrMissingLocaleParam, lp.Locale), where...)
		case cfg.RootLocale != lp.Locale:
			return nil, NewConfigurationError(OpCompile,
				fmt.Errorf("%w (%q)", ErrLocaleParamRequired, cfg.RootLocale), where...)
		}
	}

	return s, nil
}

// Format builds a URL with the matcher of values["locale"]. The locale is not passed
// to the root locale's matcher. It reports false when no matcher exists for the locale
// or the values do not validate. values is never modified.
func (s *LocaleMatcherSet) Format(values urlmatcher.Values) (string, bool) {
	delegated := maps.Clone(values)
	if delegated == nil {
		delegated = urlmatcher.Values{}
	}
	locale := localeOf(delegated)

	s.mu.Lock()
	s.lastValues = maps.Clone(delegated)
	s.mu.Unlock()

	if s.config.RootLocale != "" && locale == s.config.RootLocale {
		delete(delegated, LocaleParam)
	}

	m, ok := s.matchers[locale]
	if !ok {
		return "", false
	}
	return m.Format(delegated)
}

// Concat extends the matcher of the last formatted locale with pattern.
// It returns ErrNoActiveLocale when there is no such matcher, e.g. before any Format call.
func (s *LocaleMatcherSet) Concat(pattern string) (urlmatcher.Matcher, error) {
	s.mu.Lock()
	locale := localeOf(s.lastValues)
	s.mu.Unlock()

	m, ok := s.matchers[locale]
	if !ok {
		return nil, ErrNoActiveLocale
	}
	return m.Concat(pattern)
}

// Validates reports whether params carry a known locale and validate against its matcher.
func (s *LocaleMatcherSet) Validates(params urlmatcher.Values) bool {
	locale := localeOf(params)
	if locale == "" {
		return false
	}
	m, ok := s.matchers[locale]
	if !ok {
		return false
	}
	return m.Validates(params)
}

// Exec tries each locale in declaration order and returns the first match whose
// locale value equals the locale being tried. A match by another locale's pattern
// with an inconsistent locale value is skipped.
func (s *LocaleMatcherSet) Exec(path string, search url.Values) (urlmatcher.Values, bool) {
	for _, locale := range s.locales {
		values, ok := s.matchers[locale].Exec(path, search)
		if !ok || values == nil {
			values = urlmatcher.Values{}
		}

		if s.config.RootLocale != "" {
			if _, marked := values[RootLocaleMarker]; marked {
				values = maps.Clone(values)
				values[LocaleParam] = s.config.RootLocale
			}
		}

		if localeOf(values) == locale {
			return values, true
		}
	}
	return nil, false
}

// Parameters returns the union of every locale's parameters. On name collisions
// the locale declared last wins.
func (s *LocaleMatcherSet) Parameters() urlmatcher.Params {
	return maps.Clone(s.params)
}

// String returns the per-locale patterns.
func (s *LocaleMatcherSet) String() string {
	return s.source
}

// Locales returns the locales in declaration order.
func (s *LocaleMatcherSet) Locales() []string {
	return slices.Clone(s.locales)
}

// Matcher returns the matcher compiled for locale.
func (s *LocaleMatcherSet) Matcher(locale string) (urlmatcher.Matcher, bool) {
	m, ok := s.matchers[locale]
	return m, ok
}

// RootLocale returns the root locale the set was compiled with.
func (s *LocaleMatcherSet) RootLocale() string {
	return s.config.RootLocale
}

// Config returns the configuration the set was compiled with.
func (s *LocaleMatcherSet) Config() Config {
	return s.config
}

func localeOf(values urlmatcher.Values) string {
	locale, _ := values[LocaleParam].(string)
	return locale
}
