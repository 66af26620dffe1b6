package manifest

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/i18nurl"
)

// Route is a named set of locale patterns.
type Route struct {
	Name     string
	File     string
	Patterns i18nurl.Patterns
}

// Compiler builds a matcher set from patterns. *i18nurl.Factory implements it.
type Compiler interface {
	Compile(patterns i18nurl.Patterns, opts ...i18nurl.CompileOption) (*i18nurl.LocaleMatcherSet, error)
}

// Manifest is an ordered collection of routes.
type Manifest struct {
	routes []Route
	index  map[string]int
}

// Load reads every .yaml, .yml and .json file in fsys, in lexical path order.
// Route names must be unique across files.
func Load(fsys fs.FS) (*Manifest, error) {
	m := &Manifest{index: make(map[string]int)}

	err := fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		switch strings.ToLower(path.Ext(filePath)) {
		case ".yaml", ".yml", ".json":
		default:
			return nil
		}

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}

		routes, err := Parse(filePath, data)
		if err != nil {
			return err
		}
		return m.add(routes...)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFile reads a single manifest file from fsys.
func LoadFile(fsys fs.FS, name string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", name, err)
	}
	routes, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	return New(routes...)
}

// New creates a manifest from routes.
func New(routes ...Route) (*Manifest, error) {
	m := &Manifest{index: make(map[string]int, len(routes))}
	if err := m.add(routes...); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manifest) add(routes ...Route) error {
	for _, r := range routes {
		if len(r.Patterns) == 0 {
			return fmt.Errorf("%w: %q", ErrEmptyRoute, r.Name)
		}
		if i, exists := m.index[r.Name]; exists {
			return fmt.Errorf("%w: %q in %q, first declared in %q", ErrDuplicateRoute, r.Name, r.File, m.routes[i].File)
		}
		m.index[r.Name] = len(m.routes)
		m.routes = append(m.routes, r)
	}
	return nil
}

// Parse decodes one manifest file. JSON is parsed as YAML, which keeps key order.
func Parse(file string, data []byte) ([]Route, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, file, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %q: expected a mapping of route names at line %d", ErrInvalidFile, file, root.Line)
	}

	routes := make([]Route, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, fmt.Errorf("%w: %q: invalid route name at line %d", ErrInvalidFile, file, key.Line)
		}

		patterns, err := parsePatterns(file, key.Value, value)
		if err != nil {
			return nil, err
		}
		routes = append(routes, Route{Name: key.Value, File: file, Patterns: patterns})
	}
	return routes, nil
}

func parsePatterns(file, route string, node *yaml.Node) (i18nurl.Patterns, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, fmt.Errorf("%w: %q in %q", ErrEmptyRoute, route, file)
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %q: route %q must map locales to patterns (line %d)", ErrInvalidFile, file, route, node.Line)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("%w: %q in %q", ErrEmptyRoute, route, file)
	}

	patterns := make(i18nurl.Patterns, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: %q: route %q: locale patterns must be strings (line %d)", ErrInvalidFile, file, route, key.Line)
		}
		patterns = append(patterns, i18nurl.LocalePattern{Locale: key.Value, Pattern: value.Value})
	}
	return patterns, nil
}

// Routes returns the routes in load order.
func (m *Manifest) Routes() []Route {
	return append([]Route(nil), m.routes...)
}

// Route returns the route named name.
func (m *Manifest) Route(name string) (Route, bool) {
	i, ok := m.index[name]
	if !ok {
		return Route{}, false
	}
	return m.routes[i], true
}

// Names returns the route names in load order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.routes))
	for i, r := range m.routes {
		names[i] = r.Name
	}
	return names
}

// Len returns the number of routes.
func (m *Manifest) Len() int {
	return len(m.routes)
}

// Compile builds the matcher set for one route.
func (m *Manifest) Compile(c Compiler, name string, opts ...i18nurl.CompileOption) (*i18nurl.LocaleMatcherSet, error) {
	r, ok := m.Route(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}
	set, err := c.Compile(r.Patterns, opts...)
	if err != nil {
		return nil, fmt.Errorf("route %q: %w", r.Name, err)
	}
	return set, nil
}

// CompileAll builds a matcher set for every route. It stops at the first failure.
func (m *Manifest) CompileAll(c Compiler, opts ...i18nurl.CompileOption) (map[string]*i18nurl.LocaleMatcherSet, error) {
	sets := make(map[string]*i18nurl.LocaleMatcherSet, len(m.routes))
	for _, r := range m.routes {
		set, err := c.Compile(r.Patterns, opts...)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", r.Name, err)
		}
		sets[r.Name] = set
	}
	return sets, nil
}
