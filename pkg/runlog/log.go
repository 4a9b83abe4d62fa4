package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"kaizoarch/pkg/catalog"
	"kaizoarch/pkg/pipeline"
)

// Log writes run history. It implements pipeline.EventSink so the
// orchestrator can record outcomes without importing this package.
type Log struct {
	db    *sql.DB
	runID string
}

// NewLog wraps an open database whose schema has been applied.
func NewLog(db *sql.DB) *Log {
	return &Log{db: db}
}

// ApplySchema creates the run log tables if they do not exist.
func ApplySchema(db *sql.DB) error {
	if _, err := db.ExecContext(context.Background(), SchemaDDL); err != nil {
		return fmt.Errorf("apply run log schema: %w", err)
	}
	return nil
}

// BeginRun opens a new run covering sections and returns its ID.
func (l *Log) BeginRun(ctx context.Context, sections []catalog.Section) (string, error) {
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.String()
	}
	id := uuid.NewString()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (id, sections) VALUES (?, ?)`,
		id, strings.Join(names, ","),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	l.runID = id
	return id, nil
}

// FinishRun stamps the current run as complete.
func (l *Log) FinishRun(ctx context.Context) error {
	if l.runID == "" {
		return nil
	}
	_, err := l.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = datetime('now') WHERE id = ?`, l.runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// HackOutcome records one hack's terminal outcome. Best-effort: the archive
// on disk is the source of truth, so a failed insert never disturbs the run.
func (l *Log) HackOutcome(section catalog.Section, hackID int64, hackName string, outcome pipeline.Outcome, detail string) {
	_, _ = l.db.ExecContext(context.Background(),
		`INSERT INTO events (run_id, section, hack_id, hack_name, outcome, detail) VALUES (?, ?, ?, ?, ?, ?)`,
		l.runID, section.String(), hackID, hackName, string(outcome), detail,
	)
}

// SectionError records a section-level failure.
func (l *Log) SectionError(section catalog.Section, err error) {
	_, _ = l.db.ExecContext(context.Background(),
		`INSERT INTO events (run_id, section, outcome, detail) VALUES (?, ?, ?, ?)`,
		l.runID, section.String(), OutcomeSectionFailed, err.Error(),
	)
}

var _ pipeline.EventSink = (*Log)(nil)
