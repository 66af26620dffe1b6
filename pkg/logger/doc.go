// Package logger builds log/slog loggers with context extraction and optional
// Sentry forwarding.
//
// A ContextExtractor pulls one attribute out of the context on every log call.
// LocaleExtractor adds the locale resolved for the current request:
//
//	log := logger.New(slog.LevelInfo, logger.LocaleExtractor())
//	log.InfoContext(r.Context(), "page served")
//	// {"level":"INFO","msg":"page served","locale":"fr"}
//
// NewWithSentry also forwards warnings and errors to Sentry. Without a DSN it
// falls back to local output, so the same setup works in development:
//
//	log, flush := logger.NewWithSentry(logger.SentryConfig{DSN: os.Getenv("SENTRY_DSN")})
//	defer flush()
//
// Libraries default to NewNope, which discards everything.
package logger
