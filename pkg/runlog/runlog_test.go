package runlog_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"kaizoarch/pkg/catalog"
	"kaizoarch/pkg/pipeline"
	"kaizoarch/pkg/runlog"

	_ "modernc.org/sqlite"
)

// openTestLog creates a run log database in a temp dir and returns the writer
// plus the database path for readers.
func openTestLog(t *testing.T) (*runlog.Log, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "kaizoarch.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := runlog.ApplySchema(db); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return runlog.NewLog(db), dbPath
}

func TestRunLifecycle(t *testing.T) {
	log, dbPath := openTestLog(t)
	ctx := context.Background()

	runID, err := log.BeginRun(ctx, []catalog.Section{catalog.SectionAdvanced, catalog.SectionAwaiting})
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if runID == "" {
		t.Fatal("BeginRun returned an empty run ID")
	}

	reader, err := runlog.NewReader(dbPath)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer reader.Close()

	run, err := reader.LastRun(ctx)
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if run == nil || run.ID != runID {
		t.Fatalf("LastRun = %+v, want run %s", run, runID)
	}
	if run.FinishedAt != nil {
		t.Error("run should not be finished yet")
	}
	if run.Sections != "advanced,awaiting" {
		t.Errorf("sections = %q", run.Sections)
	}

	if err := log.FinishRun(ctx); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}
	run, err = reader.LastRun(ctx)
	if err != nil {
		t.Fatalf("LastRun after finish: %v", err)
	}
	if run.FinishedAt == nil {
		t.Error("run should be marked finished")
	}
}

func TestOutcomeRecordingAndSummaries(t *testing.T) {
	log, dbPath := openTestLog(t)
	ctx := context.Background()

	if _, err := log.BeginRun(ctx, []catalog.Section{catalog.SectionExpert}); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	log.HackOutcome(catalog.SectionExpert, 1, "Won", pipeline.OutcomeSucceeded, "")
	log.HackOutcome(catalog.SectionExpert, 2, "Seen", pipeline.OutcomeSkipped, "")
	log.HackOutcome(catalog.SectionExpert, 3, "Gated", pipeline.OutcomeLoginRequired, "requires login")
	log.HackOutcome(catalog.SectionExpert, 4, "Bad Zip", pipeline.OutcomeExtractFailed, "no patch file in archive")
	log.SectionError(catalog.SectionMaster, errors.New("catalog unavailable"))

	reader, err := runlog.NewReader(dbPath)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer reader.Close()

	summaries, err := reader.SectionSummaries(ctx)
	if err != nil {
		t.Fatalf("SectionSummaries: %v", err)
	}
	bySection := map[string]runlog.SectionSummary{}
	for _, s := range summaries {
		bySection[s.Section] = s
	}

	expert := bySection["expert"]
	if expert.Succeeded != 1 || expert.Skipped != 1 || expert.LoginRequired != 1 || expert.ExtractFailed != 1 {
		t.Errorf("expert summary = %+v", expert)
	}
	if bySection["master"].SectionFailed != 1 {
		t.Errorf("master summary = %+v", bySection["master"])
	}

	events, err := reader.RecentEvents(ctx, 3)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	// Newest first: the section failure was recorded last.
	if events[0].Outcome != runlog.OutcomeSectionFailed || events[0].HackName != "" {
		t.Errorf("newest event = %+v", events[0])
	}
}

func TestNewReaderMissingDatabase(t *testing.T) {
	t.Parallel()

	if _, err := runlog.NewReader(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Fatal("expected error for a missing database")
	}
}

func TestLastRunEmptyLog(t *testing.T) {
	_, dbPath := openTestLog(t)

	reader, err := runlog.NewReader(dbPath)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer reader.Close()

	run, err := reader.LastRun(context.Background())
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if run != nil {
		t.Fatalf("empty log should yield nil run, got %+v", run)
	}
}
