package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// Level is the minimum level written locally.
	Level slog.Level
	// MinLevel is the minimum level forwarded to Sentry. Errors always create issues.
	MinLevel slog.Level
	// Output defaults to stderr.
	Output io.Writer
}

// NewWithSentry creates a logger that writes JSON locally and forwards records to Sentry.
// Without a DSN, or when Sentry fails to initialize, only the local output is used.
// The returned flush function waits for buffered Sentry events; call it before exit.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) (*slog.Logger, func()) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	local := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: cfg.Level})
	noop := func() {}

	if cfg.DSN == "" {
		return slog.New(NewLogHandlerDecorator(local, extractors...)), noop
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(local, extractors...)), noop
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	flush := func() { sentry.Flush(2 * time.Second) }
	return slog.New(NewLogHandlerDecorator(multiHandler{local, remote}, extractors...)), flush
}
