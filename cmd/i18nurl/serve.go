package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/i18nurl"
	"github.com/dmitrymomot/i18nurl/middlewares"
	"github.com/dmitrymomot/i18nurl/pkg/health"
	"github.com/dmitrymomot/i18nurl/pkg/manifest"
	"github.com/dmitrymomot/i18nurl/pkg/paramtype"
)

const (
	defaultShutdownTimeout   = 10 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
)

func serveCmd(cfg *Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the routes with the locale middleware and debugging endpoints",
		Long: `Serve resolves the locale of every request and answers with what it found.

  GET /_match?path=/fr/a-propos   route, locale and values matching a path
  GET /_format/{route}?locale=fr  URL of a route for the query values
  GET /health/live                liveness probe
  GET /health/ready               readiness probe (routes compiled, types resolved)
  GET /*                          locale resolution for the request itself`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(*cfg)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return runServer(ctx, addr, newRouter(a), a.logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func newRouter(a *app) http.Handler {
	sets := make([]*i18nurl.LocaleMatcherSet, 0, a.manifest.Len())
	for _, name := range a.manifest.Names() {
		sets = append(sets, a.sets[name])
	}

	r := chi.NewRouter()
	r.Use(
		middlewares.RequestID(),
		middlewares.Recover(middlewares.WithRecoverLogger(a.logger)),
		middlewares.Locale(sets, middlewares.WithLocaleLogger(a.logger)),
	)

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(a.checks(), health.WithLogger(a.logger)))

	r.Get("/_match", func(w http.ResponseWriter, r *http.Request) {
		target, err := url.Parse(r.URL.Query().Get("path"))
		if err != nil || target.Path == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing or invalid path"})
			return
		}
		for _, name := range a.manifest.Names() {
			if values, ok := a.sets[name].Exec(target.Path, target.Query()); ok {
				writeJSON(w, http.StatusOK, matchResponse{Route: name, Locale: localeOf(values), Values: values})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": errNoMatch.Error()})
	})

	r.Get("/_format/{route}", func(w http.ResponseWriter, r *http.Request) {
		set, err := a.route(chi.URLParam(r, "route"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}

		var pairs []string
		for key, vals := range r.URL.Query() {
			if len(vals) > 0 {
				pairs = append(pairs, key+"="+vals[0])
			}
		}
		values, err := parseValues(set, pairs)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		formatted, ok := set.Format(values)
		if !ok {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": errNoURL.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": formatted})
	})

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		m, _ := middlewares.MatchFromContext(r.Context())
		resp := matchResponse{Locale: m.Locale, Source: m.Source, Values: m.Values}
		if m.Set != nil {
			resp.Route = a.routeName(m.Set)
		}
		a.logger.InfoContext(r.Context(), "request resolved", "path", r.URL.Path, "route", resp.Route)
		writeJSON(w, http.StatusOK, resp)
	})

	return r
}

func (a *app) checks() health.Checks {
	return health.Checks{
		"routes": func(context.Context) error {
			for _, name := range a.manifest.Names() {
				if a.sets[name] == nil {
					return fmt.Errorf("%w: %q is not compiled", manifest.ErrUnknownRoute, name)
				}
			}
			return nil
		},
		"types": func(context.Context) error {
			reg := a.factory.Registry()
			if !reg.Finalized() {
				return paramtype.ErrResolverRequired
			}
			if n := reg.Pending(); n > 0 {
				return fmt.Errorf("%d parameter types pending", n)
			}
			return nil
		},
	}
}

type matchResponse struct {
	Values i18nurl.Values `json:"values,omitempty"`
	Route  string         `json:"route,omitempty"`
	Locale string         `json:"locale"`
	Source string         `json:"source,omitempty"`
}

func (a *app) routeName(set *i18nurl.LocaleMatcherSet) string {
	for name, s := range a.sets {
		if s == set {
			return name
		}
	}
	return ""
}

func localeOf(values i18nurl.Values) string {
	l, _ := values[i18nurl.LocaleParam].(string)
	return l
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// runServer serves handler on addr until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("shutdown completed")
	return nil
}
