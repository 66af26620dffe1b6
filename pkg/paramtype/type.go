package paramtype

import (
	"fmt"
	"reflect"
	"regexp"
)

// defaultPattern matches any raw value.
const defaultPattern = ".*"

// Type describes how a URL parameter is matched, decoded, encoded and validated.
type Type struct {
	// Pattern matches the raw textual value. It is embedded into path expressions,
	// so it must not contain anchors.
	Pattern *regexp.Regexp

	// Encode converts a typed value into its raw textual form.
	Encode func(v any) string

	// Decode converts a raw textual value into a typed value.
	Decode func(raw string) (any, error)

	// Is reports whether v is a valid value of this type.
	Is func(v any) bool

	// Equals reports whether two typed values are equal.
	Equals func(a, b any) bool

	// Name is the registry name. Set by New.
	Name string

	full *regexp.Regexp
}

// New returns a copy of def named name, with every omitted function defaulted.
func New(name string, def Type) *Type {
	t := def
	t.Name = name

	if t.Pattern == nil {
		t.Pattern = regexp.MustCompile(defaultPattern)
	}
	if t.Encode == nil {
		t.Encode = func(v any) string { return fmt.Sprint(v) }
	}
	if t.Decode == nil {
		t.Decode = func(raw string) (any, error) { return raw, nil }
	}
	if t.Is == nil {
		t.Is = func(v any) bool { return v != nil }
	}
	if t.Equals == nil {
		t.Equals = strictEqual
	}

	t.full = regexp.MustCompile(`^(?:` + t.Pattern.String() + `)$`)
	return &t
}

// Source returns the pattern source for embedding into a larger expression.
func (t *Type) Source() string {
	return t.Pattern.String()
}

// Match reports whether raw matches the type pattern in full.
func (t *Type) Match(raw string) bool {
	if t.full == nil {
		return regexp.MustCompile(`^(?:` + t.Pattern.String() + `)$`).MatchString(raw)
	}
	return t.full.MatchString(raw)
}

// Validates reports whether v is a valid value whose encoded form matches the pattern.
func (t *Type) Validates(v any) bool {
	return t.Is(v) && t.Match(t.Encode(v))
}

// strictEqual compares values of the same comparable dynamic type with ==.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
