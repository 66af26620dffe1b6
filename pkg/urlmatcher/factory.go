package urlmatcher

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrymomot/i18nurl/pkg/cache"
	"github.com/dmitrymomot/i18nurl/pkg/paramtype"
)

var (
	// placeholderRe matches :name, *name, {name} and {name:type-or-regexp}.
	placeholderRe = regexp.MustCompile(`([:*])([A-Za-z_]\w*)|\{([A-Za-z_]\w*)(?::\s*((?:[^{}\\]+|\\.|\{(?:[^{}\\]+|\\.)*\})+))?\}`)
	identRe       = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

// Factory compiles patterns against a type registry.
type Factory struct {
	registry *paramtype.Registry
	anyType  *paramtype.Type
	allType  *paramtype.Type
	cache    *cache.LRU[*PatternMatcher]
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithCache memoizes up to size compiled patterns. Patterns compiled with
// per-parameter settings are never cached. A non-positive size disables caching.
func WithCache(size int) FactoryOption {
	return func(f *Factory) {
		c, err := cache.NewLRU[*PatternMatcher](size)
		if err != nil {
			return
		}
		f.cache = c
	}
}

// NewFactory creates a factory bound to reg. A nil registry gets a fresh open one.
func NewFactory(reg *paramtype.Registry, opts ...FactoryOption) *Factory {
	if reg == nil {
		reg = paramtype.NewRegistry()
	}
	f := &Factory{
		registry: reg,
		anyType:  paramtype.New("any", paramtype.Type{}),
		allType:  paramtype.New("path", paramtype.Type{Pattern: regexp.MustCompile(`.*`)}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Cached returns the number of memoized patterns.
func (f *Factory) Cached() int {
	if f.cache == nil {
		return 0
	}
	return f.cache.Len()
}

// Registry returns the type registry.
func (f *Factory) Registry() *paramtype.Registry {
	return f.registry
}

// Compile implements Compiler.
func (f *Factory) Compile(pattern string, cfg Config) (Matcher, error) {
	return f.cached(pattern, cfg)
}

// MustCompile is like Compile but panics on error.
func (f *Factory) MustCompile(pattern string, cfg Config) *PatternMatcher {
	m, err := f.cached(pattern, cfg)
	if err != nil {
		panic(err)
	}
	return m
}

func (f *Factory) cached(pattern string, cfg Config) (*PatternMatcher, error) {
	if f.cache == nil || len(cfg.Params) > 0 {
		return f.compile(pattern, cfg)
	}
	key := fmt.Sprintf("%d|%t|%t|%s|%s", f.registry.Generation(), cfg.Strict, cfg.CaseInsensitive, cfg.RootLocale, pattern)
	return f.cache.GetOrSet(key, func() (*PatternMatcher, error) {
		return f.compile(pattern, cfg)
	})
}

func (f *Factory) compile(pattern string, cfg Config) (*PatternMatcher, error) {
	path, search := splitSearch(pattern)

	m := &PatternMatcher{
		factory:      f,
		config:       cfg,
		source:       pattern,
		sourcePath:   path,
		sourceSearch: search,
		params:       make(Params),
	}

	var expr strings.Builder
	if cfg.CaseInsensitive {
		expr.WriteString("(?i)")
	}
	expr.WriteString("^")

	last := 0
	for _, loc := range placeholderRe.FindAllStringSubmatchIndex(path, -1) {
		literal := path[last:loc[0]]
		m.segments = append(m.segments, literal)
		expr.WriteString(regexp.QuoteMeta(literal))

		name, raw, catchAll := placeholderParts(path, loc)
		p, err := f.newParam(name, raw, catchAll, LocationPath, cfg)
		if err != nil {
			return nil, fmt.Errorf("compiling %q: %w", pattern, err)
		}
		if err := m.addParam(p); err != nil {
			return nil, fmt.Errorf("compiling %q: %w", pattern, err)
		}

		group := "p" + strconv.Itoa(len(m.pathParams)-1)
		expr.WriteString("(?P<" + group + ">(?:" + p.Type.Source() + "))")
		if p.Config.Value != nil {
			expr.WriteString("?")
		}
		last = loc[1]
	}

	tail := path[last:]
	m.segments = append(m.segments, tail)
	expr.WriteString(regexp.QuoteMeta(tail))
	if !cfg.Strict {
		expr.WriteString("/?")
	}
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %s", ErrInvalidPattern, pattern, err)
	}
	m.re = re
	for i := range m.pathParams {
		m.groups = append(m.groups, re.SubexpIndex("p"+strconv.Itoa(i)))
	}

	if search != "" {
		for item := range strings.SplitSeq(search, "&") {
			name, raw, err := parseSearchItem(item)
			if err != nil {
				return nil, fmt.Errorf("compiling %q: %w", pattern, err)
			}
			p, err := f.newParam(name, raw, false, LocationSearch, cfg)
			if err != nil {
				return nil, fmt.Errorf("compiling %q: %w", pattern, err)
			}
			if err := m.addParam(p); err != nil {
				return nil, fmt.Errorf("compiling %q: %w", pattern, err)
			}
		}
	}

	return m, nil
}

func (f *Factory) newParam(name, raw string, catchAll bool, loc Location, cfg Config) (*Param, error) {
	typ, err := f.paramType(raw, catchAll, loc)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", name, err)
	}
	return &Param{
		Name:     name,
		Type:     typ,
		Location: loc,
		Config:   cfg.Params[name],
		catchAll: catchAll,
		resolve:  f.registry.Resolve,
	}, nil
}

func (f *Factory) paramType(raw string, catchAll bool, loc Location) (*paramtype.Type, error) {
	switch {
	case catchAll:
		return f.allType, nil
	case raw == "" && loc == LocationSearch:
		return f.anyType, nil
	case raw == "":
		if t, ok := f.registry.Lookup("string"); ok {
			return t, nil
		}
		t, _ := paramtype.Builtin("string")
		return t, nil
	case identRe.MatchString(raw):
		if !f.registry.Finalized() {
			return nil, fmt.Errorf("%w: type %q", ErrRegistryOpen, raw)
		}
		if t, ok := f.registry.Lookup(raw); ok {
			return t, nil
		}
	}

	re, err := regexp.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPattern, err)
	}
	return paramtype.New("", paramtype.Type{Pattern: re}), nil
}

// placeholderParts extracts the name, type source and catch-all flag from a placeholder match.
func placeholderParts(s string, loc []int) (name, raw string, catchAll bool) {
	if loc[2] >= 0 {
		return s[loc[4]:loc[5]], "", s[loc[2]:loc[3]] == "*"
	}
	name = s[loc[6]:loc[7]]
	if loc[8] >= 0 {
		raw = strings.TrimSpace(s[loc[8]:loc[9]])
	}
	return name, raw, false
}

// parseSearchItem parses "name" or "{name:type}".
func parseSearchItem(item string) (name, raw string, err error) {
	item = strings.TrimSpace(item)
	if strings.HasPrefix(item, "{") && strings.HasSuffix(item, "}") {
		name, raw, _ = strings.Cut(item[1:len(item)-1], ":")
		name, raw = strings.TrimSpace(name), strings.TrimSpace(raw)
	} else {
		name = item
	}
	if !identRe.MatchString(name) {
		return "", "", fmt.Errorf("%w: search parameter %q", ErrInvalidPattern, item)
	}
	return name, raw, nil
}

// splitSearch splits pattern at the first '?' outside a placeholder.
func splitSearch(pattern string) (path, search string) {
	last := 0
	for _, loc := range placeholderRe.FindAllStringIndex(pattern, -1) {
		if i := strings.IndexByte(pattern[last:loc[0]], '?'); i >= 0 {
			return pattern[:last+i], pattern[last+i+1:]
		}
		last = loc[1]
	}
	if i := strings.IndexByte(pattern[last:], '?'); i >= 0 {
		return pattern[:last+i], pattern[last+i+1:]
	}
	return pattern, ""
}
