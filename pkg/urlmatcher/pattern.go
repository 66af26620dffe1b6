package urlmatcher

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// PatternMatcher is the compiled form of a single pattern.
type PatternMatcher struct {
	re           *regexp.Regexp
	factory      *Factory
	params       Params
	config       Config
	source       string
	sourcePath   string
	sourceSearch string
	segments     []string
	pathParams   []*Param
	searchParams []*Param
	groups       []int
}

var _ Matcher = (*PatternMatcher)(nil)

func (m *PatternMatcher) addParam(p *Param) error {
	if m.params.Has(p.Name) {
		return fmt.Errorf("%w: %q", ErrDuplicateParam, p.Name)
	}
	m.params[p.Name] = p
	if p.Location == LocationSearch {
		m.searchParams = append(m.searchParams, p)
	} else {
		m.pathParams = append(m.pathParams, p)
	}
	return nil
}

// Exec implements Matcher.
func (m *PatternMatcher) Exec(path string, search url.Values) (Values, bool) {
	loc := m.re.FindStringSubmatchIndex(path)
	if loc == nil {
		return nil, false
	}

	values := make(Values, len(m.params))
	for i, p := range m.pathParams {
		g := m.groups[i]
		raw := ""
		if loc[2*g] >= 0 {
			raw = path[loc[2*g]:loc[2*g+1]]
		}

		if raw == "" && p.Config.Value != nil {
			v, err := p.DefaultValue()
			if err != nil {
				return nil, false
			}
			values[p.Name] = v
			continue
		}

		v, ok := decodePath(p, raw)
		if !ok {
			return nil, false
		}
		values[p.Name] = v
	}

	for _, p := range m.searchParams {
		raws := search[p.Name]
		if len(raws) == 0 {
			v, err := p.DefaultValue()
			if err != nil {
				return nil, false
			}
			values[p.Name] = v
			continue
		}
		if !p.Type.Match(raws[0]) {
			return nil, false
		}
		v, err := p.Type.Decode(raws[0])
		if err != nil {
			return nil, false
		}
		values[p.Name] = v
	}

	return values, true
}

func decodePath(p *Param, raw string) (any, bool) {
	unescaped, err := url.PathUnescape(raw)
	if err != nil {
		return nil, false
	}
	v, err := p.Type.Decode(unescaped)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Format implements Matcher.
func (m *PatternMatcher) Format(values Values) (string, bool) {
	if !m.Validates(values) {
		return "", false
	}

	var b strings.Builder
	for i, seg := range m.segments {
		b.WriteString(seg)
		if i >= len(m.pathParams) {
			break
		}

		p := m.pathParams[i]
		v, ok := m.value(p, values)
		if !ok {
			return "", false
		}
		if v == nil {
			continue
		}
		b.WriteString(escapePath(p, p.Type.Encode(v)))
	}

	sep := "?"
	for _, p := range m.searchParams {
		v, ok := values[p.Name]
		if !ok || v == nil {
			continue
		}
		b.WriteString(sep)
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(p.Type.Encode(v)))
		sep = "&"
	}

	return b.String(), true
}

// value returns the provided value or the parameter default.
func (m *PatternMatcher) value(p *Param, values Values) (any, bool) {
	if v, ok := values[p.Name]; ok && v != nil {
		return v, true
	}
	v, err := p.DefaultValue()
	if err != nil {
		return nil, false
	}
	return v, true
}

func escapePath(p *Param, encoded string) string {
	if !p.catchAll {
		return url.PathEscape(encoded)
	}
	parts := strings.Split(encoded, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

// Validates implements Matcher.
func (m *PatternMatcher) Validates(params Values) bool {
	for _, p := range m.pathParams {
		if !p.Validates(params[p.Name]) {
			return false
		}
	}
	for _, p := range m.searchParams {
		if !p.Validates(params[p.Name]) {
			return false
		}
	}
	return true
}

// Parameters implements Matcher. The result is a copy; compiled matchers may be
// shared through the factory cache.
func (m *PatternMatcher) Parameters() Params {
	out := make(Params, len(m.params))
	for name, p := range m.params {
		cp := *p
		out[name] = &cp
	}
	return out
}

// Concat implements Matcher. The search parameters of both patterns are merged.
func (m *PatternMatcher) Concat(pattern string) (Matcher, error) {
	path, search := splitSearch(pattern)

	combined := m.sourcePath + path
	switch {
	case m.sourceSearch != "" && search != "":
		combined += "?" + m.sourceSearch + "&" + search
	case m.sourceSearch != "":
		combined += "?" + m.sourceSearch
	case search != "":
		combined += "?" + search
	}

	return m.factory.Compile(combined, m.config)
}

// String implements Matcher.
func (m *PatternMatcher) String() string {
	return m.source
}

// Regexp returns the compiled path expression.
func (m *PatternMatcher) Regexp() *regexp.Regexp {
	return m.re
}
