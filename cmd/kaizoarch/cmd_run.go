package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"kaizoarch/pkg/archive"
	"kaizoarch/pkg/catalog"
	"kaizoarch/pkg/pipeline"
	"kaizoarch/pkg/runlog"

	"github.com/spf13/cobra"
)

// runFlags holds the flag state for the run command.
type runFlags struct {
	tiers    map[catalog.Section]*bool
	awaiting bool
	all      bool
	baseDir  string
	baseROM  string
	flips    string
}

// newRunCmd creates the "kaizoarch run" subcommand.
func newRunCmd() *cobra.Command {
	flags := &runFlags{tiers: map[catalog.Section]*bool{}}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Archive hacks for the selected sections",
		Long: `Archive hacks for the selected difficulty sections.

For every hack the catalog lists, run downloads its distribution zip,
extracts the patch, and applies it against the clean base ROM. Work already
on disk is skipped, so re-running a section only fetches what is new.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sections := flags.selectedSections()
			if len(sections) == 0 {
				return fmt.Errorf("no sections selected: use --newcomer, --casual, ..., --all, or --awaiting")
			}
			return executeRun(cmd, flags, sections)
		},
	}

	for _, tier := range catalog.Tiers() {
		v := new(bool)
		flags.tiers[tier] = v
		cmd.Flags().BoolVar(v, tier.String(),
			false, fmt.Sprintf("archive %s (%s) hacks", tier, tier.DifficultyCode()))
	}
	cmd.Flags().BoolVar(&flags.awaiting, "awaiting", false, "archive hacks awaiting moderation")
	cmd.Flags().BoolVar(&flags.all, "all", false, "archive every difficulty tier")
	cmd.Flags().StringVar(&flags.baseDir, "base-dir", "", "archive base directory (default: current dir or KAIZOARCH_HOME)")
	cmd.Flags().StringVar(&flags.baseROM, "base-rom", "", "path to the clean base ROM (default: clean.smc in the base dir)")
	cmd.Flags().StringVar(&flags.flips, "flips", "", "path to the flips executable (default: flips in PATH)")

	return cmd
}

// selectedSections resolves the section flags: --all selects every tier,
// --awaiting appends the moderation queue either way.
func (f *runFlags) selectedSections() []catalog.Section {
	var sections []catalog.Section
	for _, tier := range catalog.Tiers() {
		if f.all || *f.tiers[tier] {
			sections = append(sections, tier)
		}
	}
	if f.awaiting {
		sections = append(sections, catalog.SectionAwaiting)
	}
	return sections
}

// executeRun wires the pipeline together and drives it for sections.
func executeRun(cmd *cobra.Command, flags *runFlags, sections []catalog.Section) error {
	paths, err := ResolvePaths(flags.baseDir)
	if err != nil {
		return fmt.Errorf("resolve paths: %w", err)
	}
	cfg, err := loadConfig(paths.ConfigPath)
	if err != nil {
		return err
	}

	baseROM := firstNonEmpty(flags.baseROM, cfg.BaseROM, filepath.Join(paths.BaseDir, defaultBaseROM))
	flips := firstNonEmpty(flags.flips, cfg.Flips, defaultFlipsName)

	// Config errors are the only fatal class; everything past this point
	// is recovered per hack or per section.
	if err := runPreflightChecks(baseROM, flips); err != nil {
		return err
	}

	if err := os.MkdirAll(paths.BaseDir, 0o750); err != nil {
		return fmt.Errorf("create base dir: %w", err)
	}
	db, err := openDB(paths.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := runlog.ApplySchema(db); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := newProgressLog(cmd.OutOrStdout())
	defer progress.Done()

	log := runlog.NewLog(db)
	if _, err := log.BeginRun(ctx, sections); err != nil {
		return err
	}

	var clientOpts []catalog.Option
	if cfg.CatalogURL != "" {
		clientOpts = append(clientOpts, catalog.WithBaseURL(cfg.CatalogURL))
	}

	orch := &pipeline.Orchestrator{
		Catalog:    catalog.NewClient(clientOpts...),
		Store:      archive.NewStore(paths.BaseDir),
		Downloader: pipeline.NewDownloader(nil),
		Patcher:    pipeline.NewPatcher(pipeline.ExecCommandRunner{}, flips, baseROM),
		Events:     pipeline.MultiSink{log, &progressSink{p: progress}},
		Logf:       progress.Logf,
	}

	progress.Step(fmt.Sprintf("archiving %d section(s) into %s", len(sections), paths.BaseDir))
	result, runErr := orch.Run(ctx, sections)

	if err := log.FinishRun(context.Background()); err != nil {
		progress.Logf("warning: %v", err)
	}
	progress.Done()
	fmt.Fprint(cmd.OutOrStdout(), "\n"+result.Summary())

	if runErr != nil {
		return fmt.Errorf("run interrupted: %w", runErr)
	}
	return nil
}

// progressSink prints per-hack outcomes as they are decided. Skips are the
// overwhelming majority on re-runs, so they render as transient lines on a
// TTY instead of flooding the scrollback.
type progressSink struct {
	p *progressLog
}

func (s *progressSink) HackOutcome(section catalog.Section, hackID int64, hackName string, outcome pipeline.Outcome, detail string) {
	switch outcome {
	case pipeline.OutcomeSkipped:
		s.p.Transientf("  %s (id %d): already archived", hackName, hackID)
	case pipeline.OutcomeSucceeded:
		s.p.Logf("  %s (id %d): archived", hackName, hackID)
	default:
		s.p.Logf("  %s (id %d): %s: %s", hackName, hackID, outcome, detail)
	}
}

func (s *progressSink) SectionError(section catalog.Section, err error) {
	// The orchestrator already logs section failures through Logf.
}
