// Package middlewares provides net/http middleware for services routing
// localized URLs. Every middleware has the func(http.Handler) http.Handler
// shape and plugs into chi or any other router.
//
// # Locale
//
// Locale resolves the request locale from the compiled matcher sets, then from
// the Accept-Language header, then from a default:
//
//	r := chi.NewRouter()
//	r.Use(middlewares.Locale([]*i18nurl.LocaleMatcherSet{about, product}))
//
//	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
//	    lang := middlewares.LocaleFromContext(r.Context())
//	    m, _ := middlewares.MatchFromContext(r.Context()) // matched set and values
//	})
//
// The resolved locale is sent back in the Content-Language header. Use
// logger.LocaleExtractor to add it to every log entry.
//
// # Request ID
//
// RequestID keeps an incoming X-Request-ID or X-Correlation-ID, or generates a
// UUID, and echoes it in the response. RequestIDExtractor adds it to logs.
//
// # Recover
//
// Recover catches panics, logs them with the stack trace and answers 500.
// WithRecoverHandler replaces the response; the handler receives a *PanicError.
package middlewares
