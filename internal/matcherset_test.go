package internal_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/i18nurl/internal"
	"github.com/dmitrymomot/i18nurl/pkg/inject"
	"github.com/dmitrymomot/i18nurl/pkg/urlmatcher"
)

func newFactory(t *testing.T, opts ...internal.Option) *internal.Factory {
	t.Helper()

	f := internal.New(opts...)
	require.NoError(t, f.Attach(inject.New()))
	return f
}

func aboutSet(t *testing.T) *internal.LocaleMatcherSet {
	t.Helper()

	set, err := newFactory(t, internal.WithRootLocale("en")).Compile(internal.Patterns{
		{Locale: "en", Pattern: "/about?rootLocale"},
		{Locale: "fr", Pattern: "/:locale/a-propos"},
	})
	require.NoError(t, err)
	return set
}

func TestLocaleMatcherSetFormat(t *testing.T) {
	t.Parallel()

	set := aboutSet(t)

	tests := []struct {
		name     string
		values   urlmatcher.Values
		expected string
		ok       bool
	}{
		{name: "root locale drops locale", values: urlmatcher.Values{"locale": "en"}, expected: "/about", ok: true},
		{name: "other locale", values: urlmatcher.Values{"locale": "fr"}, expected: "/fr/a-propos", ok: true},
		{name: "unknown locale", values: urlmatcher.Values{"locale": "de"}},
		{name: "missing locale", values: urlmatcher.Values{}},
		{name: "nil values", values: nil},
		{name: "non-string locale", values: urlmatcher.Values{"locale": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := set.Format(tt.values)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestLocaleMatcherSetFormatKeepsCallerValues(t *testing.T) {
	t.Parallel()

	set := aboutSet(t)
	values := urlmatcher.Values{"locale": "en"}

	got, ok := set.Format(values)
	require.True(t, ok)
	require.Equal(t, "/about", got)
	require.Equal(t, urlmatcher.Values{"locale": "en"}, values)
}

func TestLocaleMatcherSetExec(t *testing.T) {
	t.Parallel()

	set := aboutSet(t)

	t.Run("root locale marker", func(t *testing.T) {
		t.Parallel()

		got, ok := set.Exec("/about", nil)
		require.True(t, ok)
		require.Equal(t, "en", got["locale"])
		require.Contains(t, got, "rootLocale")
	})

	t.Run("locale from path", func(t *testing.T) {
		t.Parallel()

		got, ok := set.Exec("/fr/a-propos", url.Values{})
		require.True(t, ok)
		require.Equal(t, urlmatcher.Values{"locale": "fr"}, got)
	})

	t.Run("locale value must match the pattern's locale", func(t *testing.T) {
		t.Parallel()

		got, ok := set.Exec("/de/a-propos", nil)
		require.False(t, ok)
		require.Nil(t, got)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		_, ok := set.Exec("/contact", nil)
		require.False(t, ok)
	})
}

func TestLocaleMatcherSetUnmarkedRoot(t *testing.T) {
	t.Parallel()

	set, err := newFactory(t, internal.WithRootLocale("en")).Compile(internal.Patterns{
		{Locale: "en", Pattern: "/about"},
		{Locale: "fr", Pattern: "/:locale/a-propos"},
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		expected urlmatcher.Values
		ok       bool
	}{
		{name: "root path carries no locale", path: "/about"},
		{name: "locale from path", path: "/fr/a-propos", expected: urlmatcher.Values{"locale": "fr"}, ok: true},
		{name: "other locale value", path: "/en/a-propos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := set.Exec(tt.path, nil)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expected, got)
		})
	}

	got, ok := set.Format(urlmatcher.Values{"locale": "en"})
	require.True(t, ok)
	require.Equal(t, "/about", got)

	got, ok = set.Format(urlmatcher.Values{"locale": "fr"})
	require.True(t, ok)
	require.Equal(t, "/fr/a-propos", got)
}

func TestLocaleMatcherSetExecOrder(t *testing.T) {
	t.Parallel()

	set, err := newFactory(t).Compile(internal.Patterns{
		{Locale: "fr", Pattern: "/:locale/page"},
		{Locale: "de", Pattern: "/:locale/page"},
	})
	require.NoError(t, err)

	got, ok := set.Exec("/de/page", nil)
	require.True(t, ok)
	require.Equal(t, "de", got["locale"])

	got, ok = set.Exec("/fr/page", nil)
	require.True(t, ok)
	require.Equal(t, "fr", got["locale"])
}

func TestLocaleMatcherSetRoundTrip(t *testing.T) {
	t.Parallel()

	set, err := newFactory(t, internal.WithRootLocale("en")).Compile(internal.Patterns{
		{Locale: "en", Pattern: "/posts/{id:int}?rootLocale"},
		{Locale: "fr", Pattern: "/:locale/articles/{id:int}"},
	})
	require.NoError(t, err)

	for _, locale := range []string{"en", "fr"} {
		values := urlmatcher.Values{"locale": locale, "id": 7}

		path, ok := set.Format(values)
		require.True(t, ok, locale)

		got, ok := set.Exec(path, nil)
		require.True(t, ok, path)
		require.Equal(t, locale, got["locale"])
		require.Equal(t, 7, got["id"])
	}
}

func TestLocaleMatcherSetValidates(t *testing.T) {
	t.Parallel()

	set, err := newFactory(t).Compile(internal.Patterns{
		{Locale: "en", Pattern: "/:locale/posts/{id:int}"},
		{Locale: "fr", Pattern: "/:locale/articles/{id:int}"},
	})
	require.NoError(t, err)

	require.False(t, set.Validates(urlmatcher.Values{}))
	require.False(t, set.Validates(nil))
	require.False(t, set.Validates(urlmatcher.Values{"locale": "de", "id": 1}))
	require.False(t, set.Validates(urlmatcher.Values{"locale": "en", "id": "one"}))
	require.True(t, set.Validates(urlmatcher.Values{"locale": "en", "id": 1}))
	require.True(t, set.Validates(urlmatcher.Values{"locale": "fr", "id": 1}))
}

func TestLocaleMatcherSetConcat(t *testing.T) {
	t.Parallel()

	set := aboutSet(t)

	_, err := set.Concat("/team")
	require.ErrorIs(t, err, internal.ErrNoActiveLocale)

	_, ok := set.Format(urlmatcher.Values{"locale": "fr"})
	require.True(t, ok)

	m, err := set.Concat("/equipe")
	require.NoError(t, err)
	require.Equal(t, "/:locale/a-propos/equipe", m.String())

	got, ok := m.Format(urlmatcher.Values{"locale": "fr"})
	require.True(t, ok)
	require.Equal(t, "/fr/a-propos/equipe", got)

	_, ok = set.Format(urlmatcher.Values{"locale": "de"})
	require.False(t, ok)

	_, err = set.Concat("/team")
	require.ErrorIs(t, err, internal.ErrNoActiveLocale)
}

func TestLocaleMatcherSetParameters(t *testing.T) {
	t.Parallel()

	set, err := newFactory(t, internal.WithRootLocale("en")).Compile(internal.Patterns{
		{Locale: "en", Pattern: "/search?rootLocale&q"},
		{Locale: "fr", Pattern: "/:locale/recherche/{page:int}"},
	})
	require.NoError(t, err)

	params := set.Parameters()
	require.Equal(t, []string{"locale", "page", "q", "rootLocale"}, params.Names())

	delete(params, "q")
	require.True(t, set.Parameters().Has("q"))
}

func TestLocaleMatcherSetParametersAreCopies(t *testing.T) {
	t.Parallel()

	f := newFactory(t, internal.WithRootLocale("en"))
	patterns := internal.Patterns{
		{Locale: "en", Pattern: "/about"},
		{Locale: "fr", Pattern: "/:locale/a-propos"},
	}
	set, err := f.Compile(patterns)
	require.NoError(t, err)

	m, ok := set.Matcher("fr")
	require.True(t, ok)
	params := m.Parameters()
	delete(params, "locale")
	require.True(t, m.Parameters().Has("locale"))

	merged := set.Parameters()
	delete(merged, "locale")
	require.True(t, set.Parameters().Has("locale"))

	_, err = f.Compile(patterns)
	require.NoError(t, err, "recompiling is unaffected by caller mutations")
}

func TestLocaleMatcherSetParametersLastWins(t *testing.T) {
	t.Parallel()

	set, err := newFactory(t).Compile(internal.Patterns{
		{Locale: "en", Pattern: "/:locale/{id:int}"},
		{Locale: "fr", Pattern: "/:locale/{id:bool}"},
	})
	require.NoError(t, err)

	require.Equal(t, "bool", set.Parameters()["id"].Type.Name)
}

func TestLocaleMatcherSetAccessors(t *testing.T) {
	t.Parallel()

	set := aboutSet(t)

	require.Equal(t, "en: /about?rootLocale, fr: /:locale/a-propos", set.String())
	require.Equal(t, []string{"en", "fr"}, set.Locales())
	require.Equal(t, "en", set.RootLocale())
	require.True(t, set.Config().Strict)

	m, ok := set.Matcher("fr")
	require.True(t, ok)
	require.Equal(t, "/:locale/a-propos", m.String())

	_, ok = set.Matcher("de")
	require.False(t, ok)
}

func TestLocaleMatcherSetIsMatcher(t *testing.T) {
	t.Parallel()

	require.True(t, internal.IsMatcher(aboutSet(t)))
}
