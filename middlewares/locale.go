package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/dmitrymomot/i18nurl"
	"github.com/dmitrymomot/i18nurl/pkg/locale"
	"github.com/dmitrymomot/i18nurl/pkg/logger"
)

// Locale sources reported by Match.Source.
const (
	LocaleFromPath           = "path"
	LocaleFromAcceptLanguage = "accept-language"
	LocaleFromDefault        = "default"
)

type matchKey struct{}

// Match is the outcome of locale resolution for a request.
type Match struct {
	// Set is the matcher set whose pattern matched the path, or nil.
	Set *i18nurl.LocaleMatcherSet
	// Values are the parameters extracted from the path, or nil.
	Values i18nurl.Values
	Locale string
	Source string
}

// LocaleConfig configures the locale middleware.
type LocaleConfig struct {
	Logger        *slog.Logger
	DefaultLocale string
	Available     []string
	Header        string // Response header carrying the locale (default: Content-Language)
	Negotiate     bool   // Fall back to Accept-Language negotiation (default: true)
}

// LocaleOption configures LocaleConfig.
type LocaleOption func(*LocaleConfig)

// WithDefaultLocale sets the locale used when nothing else resolves one.
// Defaults to the root locale of the first set, then the first available locale.
func WithDefaultLocale(l string) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.DefaultLocale = l
	}
}

// WithAvailableLocales sets the locales offered to Accept-Language negotiation.
// Defaults to every locale of every set, in declaration order.
func WithAvailableLocales(locales ...string) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Available = locales
	}
}

// WithLocaleHeader sets the response header carrying the locale.
// An empty name disables the header.
func WithLocaleHeader(name string) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Header = name
	}
}

// WithoutNegotiation disables the Accept-Language fallback.
func WithoutNegotiation() LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Negotiate = false
	}
}

// WithLocaleLogger sets the logger for resolution events.
func WithLocaleLogger(l *slog.Logger) LocaleOption {
	return func(cfg *LocaleConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// Locale returns middleware that resolves the request locale. The first set
// whose Exec matches the path decides the locale. Otherwise the Accept-Language
// header is negotiated against the available locales, and finally the default
// locale is used. The result is stored in the request context.
func Locale(sets []*i18nurl.LocaleMatcherSet, opts ...LocaleOption) func(http.Handler) http.Handler {
	cfg := &LocaleConfig{
		Logger:    logger.NewNope(),
		Header:    "Content-Language",
		Negotiate: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	sets = slices.DeleteFunc(slices.Clone(sets), func(s *i18nurl.LocaleMatcherSet) bool { return s == nil })

	if cfg.Available == nil {
		for _, s := range sets {
			for _, l := range s.Locales() {
				if !slices.Contains(cfg.Available, l) {
					cfg.Available = append(cfg.Available, l)
				}
			}
		}
	}
	if cfg.DefaultLocale == "" {
		for _, s := range sets {
			if s.RootLocale() != "" {
				cfg.DefaultLocale = s.RootLocale()
				break
			}
		}
	}
	if cfg.DefaultLocale == "" && len(cfg.Available) > 0 {
		cfg.DefaultLocale = cfg.Available[0]
	}
	// Negotiate falls back to the first available locale.
	if i := slices.Index(cfg.Available, cfg.DefaultLocale); i > 0 {
		cfg.Available = append([]string{cfg.DefaultLocale}, slices.Delete(slices.Clone(cfg.Available), i, i+1)...)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := resolveLocale(r, sets, cfg)

			if cfg.Header != "" && m.Locale != "" {
				w.Header().Set(cfg.Header, m.Locale)
			}

			ctx := context.WithValue(r.Context(), matchKey{}, m)
			ctx = locale.WithContext(ctx, m.Locale)
			cfg.Logger.DebugContext(ctx, "resolved request locale", "path", r.URL.Path, "source", m.Source)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLocale(r *http.Request, sets []*i18nurl.LocaleMatcherSet, cfg *LocaleConfig) Match {
	query := r.URL.Query()
	for _, s := range sets {
		if values, ok := s.Exec(r.URL.Path, query); ok {
			l, _ := values[i18nurl.LocaleParam].(string)
			return Match{Set: s, Values: values, Locale: l, Source: LocaleFromPath}
		}
	}

	if cfg.Negotiate {
		if header := r.Header.Get("Accept-Language"); header != "" && len(cfg.Available) > 0 {
			return Match{Locale: locale.Negotiate(header, cfg.Available), Source: LocaleFromAcceptLanguage}
		}
	}

	return Match{Locale: cfg.DefaultLocale, Source: LocaleFromDefault}
}

// LocaleFromContext returns the locale resolved by the Locale middleware.
// Returns an empty string if the middleware is not used.
func LocaleFromContext(ctx context.Context) string {
	l, _ := locale.FromContext(ctx)
	return l
}

// MatchFromContext returns the full resolution result.
func MatchFromContext(ctx context.Context) (Match, bool) {
	m, ok := ctx.Value(matchKey{}).(Match)
	return m, ok
}
