package internal

import (
	"slices"
	"strings"
)

// LocalePattern pairs a locale with the pattern used for it.
type LocalePattern struct {
	Locale  string
	Pattern string
}

// Patterns is an ordered list of per-locale patterns. The order decides which
// locale Exec tries first.
type Patterns []LocalePattern

// PatternsFromMap converts a map into Patterns sorted by locale.
func PatternsFromMap(m map[string]string) Patterns {
	locales := make([]string, 0, len(m))
	for locale := range m {
		locales = append(locales, locale)
	}
	slices.Sort(locales)

	p := make(Patterns, 0, len(m))
	for _, locale := range locales {
		p = append(p, LocalePattern{Locale: locale, Pattern: m[locale]})
	}
	return p
}

// Locales returns the locales in declaration order.
func (p Patterns) Locales() []string {
	locales := make([]string, len(p))
	for i, lp := range p {
		locales[i] = lp.Locale
	}
	return locales
}

// String renders the patterns as "en: /about, fr: /:locale/a-propos".
func (p Patterns) String() string {
	parts := make([]string, len(p))
	for i, lp := range p {
		parts[i] = lp.Locale + ": " + lp.Pattern
	}
	return strings.Join(parts, ", ")
}
