package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/i18nurl"
)

var errNoURL = errors.New("values do not produce a URL for this route")

func formatCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "format <route> [key=value...]",
		Short: "Print the URL of a route for the given values",
		Example: `  i18nurl format about locale=fr
  i18nurl format product locale=en id=42`,
		Args: cobra.MinimumNArgs(1),
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

			values, err := parseValues(set, args[1:])
			if err != nil {
				return err
			}

			url, ok := set.Format(values)
			if !ok {
				return fmt.Errorf("%w: %s", errNoURL, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}

// parseValues decodes key=value pairs with the declared parameter types.
// Undeclared keys are kept as strings.
func parseValues(set *i18nurl.LocaleMatcherSet, pairs []string) (i18nurl.Values, error) {
	params := set.Parameters()
	values := make(i18nurl.Values, len(pairs))

	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid value %q, expected key=value", pair)
		}

		p, declared := params[key]
		if !declared || key == i18nurl.LocaleParam {
			values[key] = raw
			continue
		}

		v, err := p.Type.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", key, err)
		}
		values[key] = v
	}
	return values, nil
}
