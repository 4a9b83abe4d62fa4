package main

import (
	"fmt"
	"text/tabwriter"

	"kaizoarch/pkg/catalog"

	"github.com/spf13/cobra"
)

// newSectionsCmd creates the "kaizoarch sections" subcommand.
func newSectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List known catalog sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SECTION\tCATALOG QUERY")
			for _, s := range catalog.Tiers() {
				fmt.Fprintf(w, "%s\t%s\n", s, s.DifficultyCode())
			}
			fmt.Fprintf(w, "%s\tmoderation queue\n", catalog.SectionAwaiting)
			return w.Flush()
		},
	}
}
