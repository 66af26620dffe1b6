package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func routesCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List routes, their locale patterns and parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(*cfg)
			if err != nil {
				return err
			}
			defer a.close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ROUTE\tLOCALE\tPATTERN\tPARAMETERS")
			for _, r := range a.manifest.Routes() {
				params := strings.Join(a.sets[r.Name].Parameters().Names(), ",")
				for i, lp := range r.Patterns {
					name := r.Name
					if i > 0 {
						name, params = "", ""
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, lp.Locale, lp.Pattern, params)
				}
			}
			return w.Flush()
		},
	}
}
