package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

var errNoMatch = errors.New("path does not match")

func execCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <route> <path>",
		Short: "Match a path against a route and print the values as JSON",
		Example: `  i18nurl exec about /fr/a-propos
  i18nurl exec search '/search?q=go&page=2'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*cfg)
			if err != nil {
				return err
			}
			defer a.close()

			set, err := a.route(args[0])
			if err != nil {
				return err
			}

			u, err := url.Parse(args[1])
			if err != nil {
				return fmt.Errorf("parsing path: %w", err)
			}

			values, ok := set.Exec(u.Path, u.Query())
			if !ok {
				return fmt.Errorf("%w: %s", errNoMatch, args[1])
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(values)
		},
	}
}
