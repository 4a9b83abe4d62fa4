package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SectionSummary aggregates outcome counts for one section across the whole
// run log.
type SectionSummary struct {
	Section        string
	Succeeded      int
	Skipped        int
	LoginRequired  int
	DownloadFailed int
	ExtractFailed  int
	PatchFailed    int
	SectionFailed  int
}

// Event is one recorded outcome row.
type Event struct {
	RunID     string
	Section   string
	HackID    int64
	HackName  string
	Outcome   string
	Detail    string
	CreatedAt time.Time
}

// Run is one recorded invocation.
type Run struct {
	ID         string
	Sections   string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Reader provides read-only access to the run log database.
type Reader struct {
	db *sql.DB
}

// NewReader opens the run log in read-only mode so status queries and the
// dashboard never block a running archiver.
func NewReader(dbPath string) (*Reader, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("run log not found: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?mode=ro&_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping run log: %w", err)
	}
	return &Reader{db: db}, nil
}

// Close releases the database connection. Safe to call multiple times.
func (r *Reader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SectionSummaries aggregates outcome counts per section across all recorded
// runs, ordered by section name.
func (r *Reader) SectionSummaries(ctx context.Context) ([]SectionSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT section,
		       SUM(outcome = 'succeeded'),
		       SUM(outcome = 'skipped'),
		       SUM(outcome = 'login-required'),
		       SUM(outcome = 'download-failed'),
		       SUM(outcome = 'extract-failed'),
		       SUM(outcome = 'patch-failed'),
		       SUM(outcome = 'section-failed')
		FROM events
		GROUP BY section
		ORDER BY section`)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var out []SectionSummary
	for rows.Next() {
		var s SectionSummary
		if err := rows.Scan(&s.Section, &s.Succeeded, &s.Skipped, &s.LoginRequired,
			&s.DownloadFailed, &s.ExtractFailed, &s.PatchFailed, &s.SectionFailed); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LastRun returns the most recently started run, or nil when the log is
// empty.
func (r *Reader) LastRun(ctx context.Context) (*Run, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, sections, started_at, finished_at
		FROM runs ORDER BY started_at DESC, id DESC LIMIT 1`)

	var run Run
	var started string
	var finished sql.NullString
	if err := row.Scan(&run.ID, &run.Sections, &started, &finished); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query last run: %w", err)
	}
	run.StartedAt = parseSQLiteTime(started)
	if finished.Valid {
		t := parseSQLiteTime(finished.String)
		run.FinishedAt = &t
	}
	return &run, nil
}

// RecentEvents returns the newest events, newest first.
func (r *Reader) RecentEvents(ctx context.Context, limit int) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT run_id, section, COALESCE(hack_id, 0), COALESCE(hack_name, ''),
		       outcome, COALESCE(detail, ''), created_at
		FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var created string
		if err := rows.Scan(&e.RunID, &e.Section, &e.HackID, &e.HackName,
			&e.Outcome, &e.Detail, &created); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.CreatedAt = parseSQLiteTime(created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// parseSQLiteTime parses datetime('now') output; a zero time signals an
// unparseable stamp rather than an error.
func parseSQLiteTime(s string) time.Time {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
