// Package internal provides the core types and implementation for i18nurl.
//
// This package is internal and should not be used directly. Import "github.com/dmitrymomot/i18nurl"
// instead, which re-exports the public API.
//
// # Core Types
//
//   - Factory: Compiles locale patterns and owns the parameter type registry
//   - LocaleMatcherSet: One compiled matcher per locale, used as a single matcher
//   - Patterns: Ordered locale to pattern pairs; order decides Exec priority
//   - ConfigurationError: Reports an unusable matcher set, type registration or finalization
//
// # Root Locale
//
// Every locale pattern must declare the "locale" parameter, except the pattern of
// the root locale. Formatting for the root locale drops "locale" before the value
// reaches the root pattern. A root pattern that declares the "rootLocale" search
// parameter gets "locale" set to the root locale in Exec results:
//
//	f := internal.New(internal.WithRootLocale("en"))
//	set, err := f.Compile(internal.Patterns{
//	    {Locale: "en", Pattern: "/about?rootLocale"},
//	    {Locale: "fr", Pattern: "/:locale/a-propos"},
//	})
//
//	set.Format(urlmatcher.Values{"locale": "fr"}) // "/fr/a-propos", true
//	set.Exec("/about", nil)                      // {"locale": "en", "rootLocale": nil}, true
//
// # Parameter Types
//
// Types registered before Attach are queued. Attach supplies the resolver used by
// function definitions, resolves the queue in order and installs the builtin
// int, bool, string and date types under any name not taken.
package internal
