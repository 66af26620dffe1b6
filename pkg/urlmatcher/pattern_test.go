package urlmatcher_test

import (
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/i18nurl/pkg/inject"
	"github.com/dmitrymomot/i18nurl/pkg/paramtype"
	"github.com/dmitrymomot/i18nurl/pkg/urlmatcher"
)

func newFactory(t *testing.T) *urlmatcher.Factory {
	t.Helper()
	reg := paramtype.NewRegistry()
	require.NoError(t, reg.Attach(inject.New()))
	return urlmatcher.NewFactory(reg)
}

var strict = urlmatcher.Config{Strict: true}

func TestCompile_Placeholders(t *testing.T) {
	t.Parallel()
	f := newFactory(t)

	tests := []struct {
		name    string
		pattern string
		path    string
		want    urlmatcher.Values
	}{
		{"colon placeholder", "/users/:id", "/users/abc", urlmatcher.Values{"id": "abc"}},
		{"brace placeholder", "/users/{id}", "/users/abc", urlmatcher.Values{"id": "abc"}},
		{"typed placeholder", "/users/{id:int}", "/users/42", urlmatcher.Values{"id": 42}},
		{"inline regexp", "/files/{name:[a-z]+\\.txt}", "/files/notes.txt", urlmatcher.Values{"name": "notes.txt"}},
		{"catch-all", "/static/*path", "/static/css/app.css", urlmatcher.Values{"path": "css/app.css"}},
		{"escaped value", "/tags/:tag", "/tags/caf%C3%A9", urlmatcher.Values{"tag": "café"}},
		{"several params", "/:locale/blog/{year:int}/:slug", "/fr/blog/2024/bonjour", urlmatcher.Values{"locale": "fr", "year": 2024, "slug": "bonjour"}},
		{"regexp with braces", "/codes/{code:[A-Z]{3}}", "/codes/ABC", urlmatcher.Values{"code": "ABC"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := f.Compile(tt.pattern, strict)
			require.NoError(t, err)

			got, ok := m.Exec(tt.path, nil)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExec_NoMatch(t *testing.T) {
	t.Parallel()
	f := newFactory(t)

	tests := []struct {
		name    string
		pattern string
		path    string
	}{
		{"different literal", "/about", "/contact"},
		{"type pattern mismatch", "/users/{id:int}", "/users/abc"},
		{"extra segment", "/users/:id", "/users/1/edit"},
		{"trailing slash in strict mode", "/about", "/about/"},
		{"case differs", "/About", "/about"},
		{"invalid date", "/archive/{day:date}", "/archive/2023-02-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := f.Compile(tt.pattern, strict)
			require.NoError(t, err)

			got, ok := m.Exec(tt.path, nil)
			require.False(t, ok)
			require.Nil(t, got)
		})
	}
}

func TestExec_ConfigFlags(t *testing.T) {
	t.Parallel()
	f := newFactory(t)

	t.Run("non-strict accepts a trailing slash", func(t *testing.T) {
		t.Parallel()
		m, err := f.Compile("/about", urlmatcher.Config{})
		require.NoError(t, err)

		_, ok := m.Exec("/about/", nil)
		require.True(t, ok)
		_, ok = m.Exec("/about", nil)
		require.True(t, ok)
	})

	t.Run("case-insensitive", func(t *testing.T) {
		t.Parallel()
		m, err := f.Compile("/About/:name", urlmatcher.Config{Strict: true, CaseInsensitive: true})
		require.NoError(t, err)

		got, ok := m.Exec("/ABOUT/Bob", nil)
		require.True(t, ok)
		require.Equal(t, urlmatcher.Values{"name": "Bob"}, got)
	})
}

func TestExec_SearchParams(t *testing.T) {
	t.Parallel()
	f := newFactory(t)

	m, err := f.Compile("/search?q&{page:int}", strict)
	require.NoError(t, err)

	t.Run("present values are decoded", func(t *testing.T) {
		t.Parallel()
		got, ok := m.Exec("/search", url.Values{"q": {"go"}, "page": {"3"}})
		require.True(t, ok)
		require.Equal(t, urlmatcher.Values{"q": "go", "page": 3}, got)
	})

	t.Run("absent values are present as nil", func(t *testing.T) {
		t.Parallel()
		got, ok := m.Exec("/search", nil)
		require.True(t, ok)
		require.Contains(t, got, "q")
		require.Contains(t, got, "page")
		require.Nil(t, got["q"])
		require.Nil(t, got["page"])
	})

	t.Run("invalid typed value does not match", func(t *testing.T) {
		t.Parallel()
		_, ok := m.Exec("/search", url.Values{"page": {"two"}})
		require.False(t, ok)
	})
}

func TestFormat(t *testing.T) {
	t.Parallel()
	f := newFactory(t)

	tests := []struct {
		name    string
		pattern string
		values  urlmatcher.Values
		want    string
	}{
		{"static", "/about", urlmatcher.Values{}, "/about"},
		{"string param", "/:locale/a-propos", urlmatcher.Values{"locale": "fr"}, "/fr/a-propos"},
		{"typed param", "/users/{id:int}", urlmatcher.Values{"id": 7}, "/users/7"},
		{"escapes path values", "/tags/:tag", urlmatcher.Values{"tag": "a b"}, "/tags/a%20b"},
		{"catch-all keeps slashes", "/static/*path", urlmatcher.Values{"path": "css/app file.css"}, "/static/css/app%20file.css"},
		{"search in declaration order", "/search?q&{page:int}", urlmatcher.Values{"page": 2, "q": "go lang"}, "/search?q=go+lang&page=2"},
		{"skips absent search values", "/search?q&page", urlmatcher.Values{"page": "2"}, "/search?page=2"},
		{"ignores unknown keys", "/about", urlmatcher.Values{"locale": "en"}, "/about"},
		{"bool encoding", "/flags/{on:bool}", urlmatcher.Values{"on": true}, "/flags/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := f.Compile(tt.pattern, strict)
			require.NoError(t, err)

			got, ok := m.Format(tt.values)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_Invalid(t *testing.T) {
	t.Parallel()
	f := newFactory(t)

	m, err := f.Compile("/users/{id:int}", strict)
	require.NoError(t, err)

	_, ok := m.Format(urlmatcher.Values{})
	require.False(t, ok, "missing required parameter")

	_, ok = m.Format(urlmatcher.Values{"id": "seven"})
	require.False(t, ok, "wrong type")

	s, err := f.Compile("/:slug", strict)
	require.NoError(t, err)
	_, ok = s.Format(urlmatcher.Values{"slug": "a/b"})
	require.False(t, ok, "string values cannot span segments")
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	f := newFactory(t)

	m, err := f.Compile("/:locale/events/{day:date}/{id:int}?{full:bool}", strict)
	require.NoError(t, err)

	day := time.Date(2024, 3, 7, 0, 0, 0, 0, time.Local)
	in := urlmatcher.Values{"locale": "en", "day": day, "id": 12, "full": true}

	href, ok := m.Format(in)
	require.True(t, ok)
	require.Equal(t, "/en/events/2024-03-07/12?full=1", href)

	u, err := url.Parse(href)
	require.NoError(t, err)

	out, ok := m.Exec(u.Path, u.Query())
	require.True(t, ok)
	require.Equal(t, "en", out["locale"])
	require.Equal(t, 12, out["id"])
	require.Equal(t, true, out["full"])

	dayType := m.Parameters()["day"].Type
	require.True(t, dayType.Equals(day, out["day"]))
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	t.Run("plain default fills an empty capture", func(t *testing.T) {
		t.Parallel()
		f := newFactory(t)
		m, err := f.Compile("/list/{page:int}", urlmatcher.Config{
			Strict: true,
			Params: map[string]urlmatcher.ParamConfig{"page": {Value: 1}},
		})
		require.NoError(t, err)

		got, ok := m.Exec("/list/", nil)
		require.True(t, ok)
		require.Equal(t, urlmatcher.Values{"page": 1}, got)

		href, ok := m.Format(urlmatcher.Values{})
		require.True(t, ok)
		require.Equal(t, "/list/1", href)
	})

	t.Run("deferred default is resolved through the registry", func(t *testing.T) {
		t.Parallel()
		c := inject.New()
		c.Provide("de")
		reg := paramtype.NewRegistry()
		f := urlmatcher.NewFactory(reg)

		m, err := f.Compile("/news?lang", urlmatcher.Config{
			Strict: true,
			Params: map[string]urlmatcher.ParamConfig{
				"lang": {Value: func(def string) string { return def }},
			},
		})
		require.NoError(t, err)

		_, ok := m.Exec("/news", nil)
		require.False(t, ok, "deferred defaults cannot be resolved before attach")

		p := m.Parameters()["lang"]
		_, err = p.DefaultValue()
		require.ErrorIs(t, err, paramtype.ErrResolverRequired)

		require.NoError(t, reg.Attach(c))
		got, ok := m.Exec("/news", nil)
		require.True(t, ok)
		require.Equal(t, urlmatcher.Values{"lang": "de"}, got)
	})
}

func TestValidates(t *testing.T) {
	t.Parallel()
	f := newFactory(t)

	m, err := f.Compile("/:locale/users/{id:int}?tab", strict)
	require.NoError(t, err)

	require.True(t, m.Validates(urlmatcher.Values{"locale": "en", "id": 1}))
	require.True(t, m.Validates(urlmatcher.Values{"locale": "en", "id": 1, "tab": "x", "extra": true}))
	require.False(t, m.Validates(urlmatcher.Values{"locale": "en"}))
	require.False(t, m.Validates(urlmatcher.Values{"locale": "en", "id": "1"}))
	require.False(t, m.Validates(urlmatcher.Values{}))
}

func TestConcat(t *testing.T) {
	t.Parallel()
	f := newFactory(t)

	m, err := f.Compile("/:locale?ref", strict)
	require.NoError(t, err)

	child, err := m.Concat("/users/{id:int}?tab")
	require.NoError(t, err)
	require.Equal(t, "/:locale/users/{id:int}?ref&tab", child.String())
	require.Equal(t, []string{"id", "locale", "ref", "tab"}, child.Parameters().Names())

	got, ok := child.Exec("/fr/users/9", url.Values{"tab": {"posts"}})
	require.True(t, ok)
	require.Equal(t, urlmatcher.Values{"locale": "fr", "id": 9, "ref": nil, "tab": "posts"}, got)

	_, err = m.Concat("/{id:[}")
	require.ErrorIs(t, err, urlmatcher.ErrInvalidPattern)
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()
	f := newFactory(t)

	_, err := f.Compile("/:id/:id", strict)
	require.ErrorIs(t, err, urlmatcher.ErrDuplicateParam)

	_, err = f.Compile("/:id?id", strict)
	require.ErrorIs(t, err, urlmatcher.ErrDuplicateParam)

	_, err = f.Compile("/files/{name:[a-z}", strict)
	require.ErrorIs(t, err, urlmatcher.ErrInvalidPattern)

	_, err = f.Compile("/search?bad-name", strict)
	require.ErrorIs(t, err, urlmatcher.ErrInvalidPattern)

	require.Panics(t, func() { f.MustCompile("/:id/:id", strict) })
}

func TestCompile_RegistryState(t *testing.T) {
	t.Parallel()

	t.Run("named types need a finalized registry", func(t *testing.T) {
		t.Parallel()
		f := urlmatcher.NewFactory(nil)
		_, err := f.Compile("/users/{id:int}", strict)
		require.ErrorIs(t, err, urlmatcher.ErrRegistryOpen)

		m, err := f.Compile("/users/:id/{slug:[a-z-]+}", strict)
		require.NoError(t, err, "untyped and inline parameters compile before attach")
		_, ok := m.Exec("/users/1/hello-world", nil)
		require.True(t, ok)
	})

	t.Run("custom registered types", func(t *testing.T) {
		t.Parallel()
		reg := paramtype.NewRegistry()
		require.NoError(t, reg.Register("hex", paramtype.Type{Pattern: regexp.MustCompile(`[0-9a-f]+`)}))
		require.NoError(t, reg.Attach(nil))
		f := urlmatcher.NewFactory(reg)

		m, err := f.Compile("/colors/{c:hex}", strict)
		require.NoError(t, err)
		_, ok := m.Exec("/colors/ff00aa", nil)
		require.True(t, ok)
		_, ok = m.Exec("/colors/zz", nil)
		require.False(t, ok)
	})

	t.Run("unregistered identifiers are inline expressions", func(t *testing.T) {
		t.Parallel()
		f := newFactory(t)
		m, err := f.Compile("/{kind:news}", strict)
		require.NoError(t, err)
		_, ok := m.Exec("/news", nil)
		require.True(t, ok)
		_, ok = m.Exec("/blog", nil)
		require.False(t, ok)
	})
}

func TestParams(t *testing.T) {
	t.Parallel()
	f := newFactory(t)

	m, err := f.Compile("/:locale/{id:int}?q", strict)
	require.NoError(t, err)

	params := m.Parameters()
	require.True(t, params.Has("locale"))
	require.False(t, params.Has("missing"))
	require.Equal(t, urlmatcher.LocationPath, params["id"].Location)
	require.Equal(t, urlmatcher.LocationSearch, params["q"].Location)
	require.Equal(t, "search", params["q"].Location.String())
	require.Equal(t, "int", params["id"].Type.Name)
	require.False(t, params["id"].Optional())
	require.True(t, params["q"].Optional())
	require.Equal(t, "/:locale/{id:int}?q", m.String())
}

func TestCompilerFunc(t *testing.T) {
	t.Parallel()
	f := newFactory(t)

	var calls int
	var c urlmatcher.Compiler = urlmatcher.CompilerFunc(func(pattern string, cfg urlmatcher.Config) (urlmatcher.Matcher, error) {
		calls++
		return f.Compile(pattern, cfg)
	})

	m, err := c.Compile("/x", strict)
	require.NoError(t, err)
	require.Equal(t, "/x", m.String())
	require.Equal(t, 1, calls)
}

func TestWithCache(t *testing.T) {
	t.Parallel()

	reg := paramtype.NewRegistry()
	require.NoError(t, reg.Attach(inject.New()))
	f := urlmatcher.NewFactory(reg, urlmatcher.WithCache(8))

	first := f.MustCompile("/users/{id:int}", strict)
	second := f.MustCompile("/users/{id:int}", strict)
	require.Same(t, first, second)
	require.Equal(t, 1, f.Cached())

	lenient := f.MustCompile("/users/{id:int}", urlmatcher.Config{})
	require.NotSame(t, first, lenient)
	require.Equal(t, 2, f.Cached())

	t.Run("param settings bypass the cache", func(t *testing.T) {
		cfg := urlmatcher.Config{Strict: true, Params: map[string]urlmatcher.ParamConfig{"id": {Value: 1}}}
		a := f.MustCompile("/pages/{id:int}", cfg)
		b := f.MustCompile("/pages/{id:int}", cfg)
		require.NotSame(t, a, b)
	})

	t.Run("registering a type invalidates cached patterns", func(t *testing.T) {
		before := f.MustCompile("/posts/{s:slug}", strict)
		_, ok := before.Exec("/posts/hello-world", nil)
		require.False(t, ok, "unknown identifier is an inline expression")

		require.NoError(t, reg.Register("slug", paramtype.Type{Pattern: regexp.MustCompile(`[a-z0-9-]+`)}))

		after := f.MustCompile("/posts/{s:slug}", strict)
		require.NotSame(t, before, after)
		values, ok := after.Exec("/posts/hello-world", nil)
		require.True(t, ok)
		require.Equal(t, "hello-world", values["s"])
	})

	uncached := urlmatcher.NewFactory(reg, urlmatcher.WithCache(0))
	require.NotSame(t, uncached.MustCompile("/a", strict), uncached.MustCompile("/a", strict))
	require.Zero(t, uncached.Cached())
}
