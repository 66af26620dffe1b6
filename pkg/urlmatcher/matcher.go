package urlmatcher

import (
	"net/url"
	"slices"
)

// Values maps parameter names to typed values.
type Values map[string]any

// Matcher is a compiled URL pattern.
type Matcher interface {
	// Format builds a URL from values. It reports false when values do not validate.
	Format(values Values) (string, bool)

	// Exec matches path and the query parameters against the pattern.
	// It reports false when the path does not match.
	Exec(path string, search url.Values) (Values, bool)

	// Validates reports whether params hold valid values for every declared parameter.
	Validates(params Values) bool

	// Parameters returns the declared parameters.
	Parameters() Params

	// Concat returns a matcher for this pattern extended with pattern.
	Concat(pattern string) (Matcher, error)

	// String returns the source pattern.
	String() string
}

// Compiler turns a pattern into a Matcher.
type Compiler interface {
	Compile(pattern string, cfg Config) (Matcher, error)
}

// CompilerFunc adapts a function to the Compiler interface.
type CompilerFunc func(pattern string, cfg Config) (Matcher, error)

// Compile implements Compiler.
func (f CompilerFunc) Compile(pattern string, cfg Config) (Matcher, error) {
	return f(pattern, cfg)
}

// Config controls how a pattern is compiled.
type Config struct {
	// Params declares per-parameter settings, keyed by parameter name.
	Params map[string]ParamConfig

	// RootLocale is carried for compilers that need it. The reference compiler ignores it.
	RootLocale string

	// Strict disables the optional trailing slash.
	Strict bool

	// CaseInsensitive makes literal and parameter matching case-insensitive.
	CaseInsensitive bool
}

// Params maps parameter names to descriptors.
type Params map[string]*Param

// Has reports whether a parameter named name is declared.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Names returns the parameter names in sorted order.
func (p Params) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
