package main

import (
	"fmt"
	"text/tabwriter"

	"kaizoarch/pkg/runlog"

	"github.com/spf13/cobra"
)

// newStatusCmd creates the "kaizoarch status" subcommand.
func newStatusCmd() *cobra.Command {
	var baseDir string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show archive state per section",
		Long:  "Displays the last run and aggregated per-section outcome counts\nfrom the run log.",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := ResolvePaths(baseDir)
			if err != nil {
				return fmt.Errorf("resolve paths: %w", err)
			}

			reader, err := runlog.NewReader(paths.DBPath)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded yet")
				return nil
			}
			defer reader.Close()

			ctx := cmd.Context()
			last, err := reader.LastRun(ctx)
			if err != nil {
				return err
			}
			if last == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded yet")
				return nil
			}

			out := cmd.OutOrStdout()
			state := "in progress"
			if last.FinishedAt != nil {
				state = "finished " + last.FinishedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(out, "last run %s (%s): %s\n\n", last.ID, last.Sections, state)

			summaries, err := reader.SectionSummaries(ctx)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(out, "no outcomes recorded yet")
				return nil
			}

			w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SECTION\tOK\tSKIP\tLOGIN\tDL-FAIL\tEXTRACT-FAIL\tPATCH-FAIL\tSECTION-FAIL")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
					s.Section, s.Succeeded, s.Skipped, s.LoginRequired,
					s.DownloadFailed, s.ExtractFailed, s.PatchFailed, s.SectionFailed)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&baseDir, "base-dir", "", "archive base directory (default: current dir or KAIZOARCH_HOME)")
	return cmd
}
