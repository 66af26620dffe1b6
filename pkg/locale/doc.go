// Package locale validates locale identifiers and negotiates a locale from an
// Accept-Language header. Both are thin layers over golang.org/x/text/language.
//
//	tag, err := locale.Canonical("en-us") // "en-US"
//	best := locale.Negotiate("fr-CA,fr;q=0.9,en;q=0.5", []string{"en", "fr"}) // "fr"
package locale
