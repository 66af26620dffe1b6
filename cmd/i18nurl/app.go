package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/i18nurl"
	"github.com/dmitrymomot/i18nurl/middlewares"
	"github.com/dmitrymomot/i18nurl/pkg/inject"
	"github.com/dmitrymomot/i18nurl/pkg/logger"
	"github.com/dmitrymomot/i18nurl/pkg/manifest"
)

// app holds everything a command needs after startup.
type app struct {
	logger   *slog.Logger
	factory  *i18nurl.Factory
	manifest *manifest.Manifest
	sets     map[string]*i18nurl.LocaleMatcherSet
	flush    func()
}

func newApp(cfg Config) (*app, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	sentryCfg := cfg.Sentry
	sentryCfg.Level = level
	sentryCfg.MinLevel = slog.LevelWarn
	log, flush := logger.NewWithSentry(sentryCfg, logger.LocaleExtractor(), middlewares.RequestIDExtractor())

	f := i18nurl.New(
		i18nurl.WithLogger(log),
		i18nurl.WithRootLocale(cfg.RootLocale),
		i18nurl.WithStrictMode(cfg.Strict),
		i18nurl.WithCaseInsensitive(cfg.CaseInsensitive),
	)

	c := inject.New()
	c.Provide(log, &cfg)
	if err := f.Attach(c); err != nil {
		flush()
		return nil, err
	}

	m, err := loadManifest(cfg.Manifest)
	if err != nil {
		flush()
		return nil, err
	}

	sets, err := m.CompileAll(f)
	if err != nil {
		flush()
		return nil, err
	}
	log.Debug("manifest loaded", "file", cfg.Manifest, "routes", m.Len())

	return &app{logger: log, factory: f, manifest: m, sets: sets, flush: flush}, nil
}

func (a *app) route(name string) (*i18nurl.LocaleMatcherSet, error) {
	set, ok := a.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", manifest.ErrUnknownRoute, name)
	}
	return set, nil
}

func (a *app) close() {
	a.flush()
}

// loadManifest reads a single file, or every manifest file under a directory.
func loadManifest(path string) (*manifest.Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return manifest.Load(os.DirFS(path))
	}
	return manifest.LoadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}
