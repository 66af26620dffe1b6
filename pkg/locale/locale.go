package locale

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength caps the header length parsed by Negotiate.
const maxAcceptLanguageLength = 4096

// Canonical returns the canonical BCP 47 form of tag.
func Canonical(tag string) (string, error) {
	t, err := parse(tag)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

// Validate reports whether tag is a well-formed BCP 47 tag.
func Validate(tag string) error {
	_, err := parse(tag)
	return err
}

// Base returns the primary language subtag of tag, e.g. "en" for "en-GB".
func Base(tag string) (string, error) {
	t, err := parse(tag)
	if err != nil {
		return "", err
	}
	b, _ := t.Base()
	return b.String(), nil
}

func parse(tag string) (language.Tag, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return language.Und, ErrEmptyLocale
	}
	t, err := language.Parse(tag)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, tag, err)
	}
	return t, nil
}

// Negotiate returns the entry of available that best serves the Accept-Language header.
// It returns the first available locale when the header is empty, malformed or
// matches nothing, and "" when available is empty. Entries are returned as given.
func Negotiate(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	requested, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(requested) == 0 {
		return available[0]
	}

	supported := make([]language.Tag, len(available))
	for i, a := range available {
		supported[i] = language.Make(a)
	}

	_, idx, conf := language.NewMatcher(supported).Match(requested...)
	if conf == language.No || idx < 0 || idx >= len(available) {
		return available[0]
	}
	return available[idx]
}

type contextKey struct{}

// WithContext returns a copy of ctx carrying locale.
func WithContext(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, contextKey{}, locale)
}

// FromContext returns the locale stored by WithContext.
func FromContext(ctx context.Context) (string, bool) {
	locale, ok := ctx.Value(contextKey{}).(string)
	return locale, ok && locale != ""
}
