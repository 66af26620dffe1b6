package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var version = "dev"

func main() {
	cfg, err := loadConfig(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "i18nurl",
		Short: "Format and match localized URLs",
		Long: `i18nurl compiles the localized routes of a manifest file and lets you
format URLs, match paths and serve a locale-aware debugging endpoint.

Flags override the I18NURL_* environment variables.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfg.Manifest, "manifest", "m", cfg.Manifest, "manifest file or directory")
	flags.StringVar(&cfg.RootLocale, "root-locale", cfg.RootLocale, "locale whose URLs carry no locale parameter")
	flags.BoolVar(&cfg.Strict, "strict", cfg.Strict, "disallow an optional trailing slash")
	flags.BoolVar(&cfg.CaseInsensitive, "case-insensitive", cfg.CaseInsensitive, "match paths case-insensitively")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	// Commands read cfg after flags are parsed.
	root.AddCommand(
		routesCmd(&cfg),
		formatCmd(&cfg),
		execCmd(&cfg),
		serveCmd(&cfg),
	)

	return root
}
