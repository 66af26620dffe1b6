package manifest_test

import (
	"embed"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/i18nurl"
	"github.com/dmitrymomot/i18nurl/pkg/inject"
	"github.com/dmitrymomot/i18nurl/pkg/manifest"
)

//go:embed testdata
var testdataFS embed.FS

func routesFS(t *testing.T, dir string) fs.FS {
	t.Helper()

	sub, err := fs.Sub(testdataFS, "testdata/"+dir)
	require.NoError(t, err)
	return sub
}

func newFactory(t *testing.T) *i18nurl.Factory {
	t.Helper()

	f := i18nurl.New(i18nurl.WithRootLocale("en"))
	require.NoError(t, f.Attach(inject.New()))
	return f
}

func TestLoad(t *testing.T) {
	t.Parallel()

	m, err := manifest.Load(routesFS(t, "routes"))
	require.NoError(t, err)

	require.Equal(t, 3, m.Len())
	require.Equal(t, []string{"about", "contact", "product"}, m.Names())

	about, ok := m.Route("about")
	require.True(t, ok)
	require.Equal(t, "pages.yaml", about.File)
	require.Equal(t, []string{"en", "fr", "de"}, about.Patterns.Locales())

	product, ok := m.Route("product")
	require.True(t, ok)
	require.Equal(t, []string{"fr", "en"}, product.Patterns.Locales(), "JSON key order is kept")

	_, ok = m.Route("missing")
	require.False(t, ok)
}

func TestLoadEmptyRoute(t *testing.T) {
	t.Parallel()

	_, err := manifest.Load(routesFS(t, "broken"))
	require.ErrorIs(t, err, manifest.ErrEmptyRoute)
}

func TestLoadDuplicateRoute(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("home:\n  fr: /:locale\n")},
		"b.yml":  {Data: []byte("home:\n  de: /:locale\n")},
	}

	_, err := manifest.Load(fsys)
	require.ErrorIs(t, err, manifest.ErrDuplicateRoute)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		err  error
	}{
		{name: "not a mapping", data: "- about\n- contact\n", err: manifest.ErrInvalidFile},
		{name: "malformed", data: "about: [\n", err: manifest.ErrInvalidFile},
		{name: "route is a list", data: "about:\n  - /about\n", err: manifest.ErrInvalidFile},
		{name: "nested pattern", data: "about:\n  en:\n    path: /about\n", err: manifest.ErrInvalidFile},
		{name: "empty mapping", data: "about: {}\n", err: manifest.ErrEmptyRoute},
		{name: "null route", data: "about: ~\n", err: manifest.ErrEmptyRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := manifest.Parse("routes.yaml", []byte(tt.data))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseEmptyFile(t *testing.T) {
	t.Parallel()

	routes, err := manifest.Parse("empty.yaml", nil)
	require.NoError(t, err)
	require.Empty(t, routes)
}

func TestNew(t *testing.T) {
	t.Parallel()

	m, err := manifest.New(manifest.Route{
		Name:     "home",
		Patterns: i18nurl.Patterns{{Locale: "fr", Pattern: "/:locale"}},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"home"}, m.Names())

	_, err = manifest.New(manifest.Route{Name: "home"})
	require.ErrorIs(t, err, manifest.ErrEmptyRoute)
}

func TestCompileAll(t *testing.T) {
	t.Parallel()

	m, err := manifest.Load(routesFS(t, "routes"))
	require.NoError(t, err)

	sets, err := m.CompileAll(newFactory(t))
	require.NoError(t, err)
	require.Len(t, sets, 3)

	got, ok := sets["about"].Format(i18nurl.Values{"locale": "de"})
	require.True(t, ok)
	require.Equal(t, "/de/uber-uns", got)

	values, ok := sets["product"].Exec("/products/12", nil)
	require.True(t, ok)
	require.Equal(t, "en", values["locale"])
	require.Equal(t, 12, values["id"])

	require.Equal(t, m.Routes()[0].Name, "about")
}

func TestCompileAllFailure(t *testing.T) {
	t.Parallel()

	m, err := manifest.New(manifest.Route{
		Name:     "broken",
		Patterns: i18nurl.Patterns{{Locale: "fr", Pattern: "/a-propos"}},
	})
	require.NoError(t, err)

	_, err = m.CompileAll(newFactory(t))
	require.ErrorIs(t, err, i18nurl.ErrLocaleParamRequired)
	require.True(t, i18nurl.IsConfigurationError(err))
}

func TestCompile(t *testing.T) {
	t.Parallel()

	m, err := manifest.Load(routesFS(t, "routes"))
	require.NoError(t, err)

	set, err := m.Compile(newFactory(t), "contact", i18nurl.CompileStrict(false))
	require.NoError(t, err)

	values, ok := set.Exec("/fr/contact/", nil)
	require.True(t, ok)
	require.Equal(t, "fr", values["locale"])

	_, err = m.Compile(newFactory(t), "nope")
	require.ErrorIs(t, err, manifest.ErrUnknownRoute)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	m, err := manifest.LoadFile(routesFS(t, "routes"), "shop.json")
	require.NoError(t, err)
	require.Equal(t, []string{"product"}, m.Names())

	_, err = manifest.LoadFile(routesFS(t, "routes"), "missing.yaml")
	require.Error(t, err)
}
