package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/i18nurl/pkg/logger"
)

// Config is read from the environment and overridden by flags.
type Config struct {
	Manifest        string `env:"I18NURL_MANIFEST" envDefault:"routes.yaml"`
	RootLocale      string `env:"I18NURL_ROOT_LOCALE"`
	LogLevel        string `env:"I18NURL_LOG_LEVEL" envDefault:"info"`
	Sentry          logger.SentryConfig
	CaseInsensitive bool `env:"I18NURL_CASE_INSENSITIVE"`
	Strict          bool `env:"I18NURL_STRICT" envDefault:"true"`
}

func loadConfig(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}
