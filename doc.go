// Package i18nurl matches and builds localized URLs.
//
// A route is declared once per locale. The resulting [LocaleMatcherSet] picks
// the right pattern from the "locale" value when formatting, and finds the
// locale whose pattern matches when parsing a path.
//
// # Quick Start
//
//	f := i18nurl.New(i18nurl.WithRootLocale("en"))
//	if err := f.Attach(inject.New()); err != nil {
//	    log.Fatal(err)
//	}
//
//	about, err := f.Compile(i18nurl.Patterns{
//	    {Locale: "en", Pattern: "/about?rootLocale"},
//	    {Locale: "fr", Pattern: "/:locale/a-propos"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	about.Format(i18nurl.Values{"locale": "fr"}) // "/fr/a-propos", true
//	about.Format(i18nurl.Values{"locale": "en"}) // "/about", true
//	about.Exec("/about", nil)                    // {"locale": "en", "rootLocale": nil}, true
//
// # Patterns
//
// Path placeholders are written as :name, *name (catch-all), {name} or
// {name:type}, where type is a registered type name or a regular expression.
// Search parameters follow '?' and are separated by '&': "?q&{page:int}".
// Search parameters are always optional.
//
// # Root Locale
//
// Every locale must declare the "locale" parameter except the root locale,
// whose URLs carry no locale prefix. Declaring the "rootLocale" search parameter
// on the root pattern makes Exec report the root locale for its matches.
//
// # Parameter Types
//
// The builtin types are int, bool, string and date. Custom types are
// registered with [Factory.RegisterType] or [Factory.RegisterTypeFunc]:
//
//	f.RegisterType("slug", i18nurl.Type{Pattern: regexp.MustCompile(`[a-z0-9-]+`)})
//	f.RegisterTypeFunc("code", func(cfg *Config) i18nurl.Type {
//	    return i18nurl.Type{Pattern: regexp.MustCompile(cfg.CodePrefix + `-\d+`)}
//	})
//
// Definitions registered before [Factory.Attach] are queued. Attach supplies the
// [Resolver] that provides factory arguments, resolves the queue in registration
// order and then installs the builtin types under names still free. A type
// registered under a builtin name before Attach replaces the builtin.
//
// # Errors
//
// Construction, registration and finalization failures are returned as
// *[ConfigurationError]; use errors.Is with the sentinel errors for the cause.
// Format, Exec and Validates report failure with a boolean.
//
// # Subpackages
//
//   - pkg/paramtype: parameter types and the deferred type registry
//   - pkg/urlmatcher: the single-pattern compiler
//   - pkg/inject: a reflection based Resolver
//   - pkg/locale: BCP 47 validation and Accept-Language negotiation
//   - pkg/manifest: YAML and JSON route manifests
//   - pkg/logger: slog setup with context extractors and Sentry
//   - middlewares: HTTP middleware resolving the request locale
package i18nurl
