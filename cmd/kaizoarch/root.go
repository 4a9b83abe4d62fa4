package main

import (
	"fmt"

	"kaizoarch/internal/appversion"

	"github.com/spf13/cobra"
)

// newRootCmd creates the root kaizoarch command with all subcommands attached.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kaizoarch",
		Short:         "Kaizo hack archiver",
		Long:          "kaizoarch archives Kaizo hacks from the catalog by difficulty tier.\nIt downloads distribution zips, extracts their patches, and applies them\nagainst a clean base ROM.",
		Version:       fmt.Sprintf("kaizoarch %s", appversion.String()),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(
		newRunCmd(),
		newStatusCmd(),
		newSectionsCmd(),
	)

	return cmd
}
