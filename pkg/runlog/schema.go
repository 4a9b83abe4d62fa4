// Package runlog persists archive-run history to SQLite: one row per run and
// one event row per hack outcome or section failure. The status command and
// the dashboard read it; the orchestrator writes it through the pipeline's
// event sink.
package runlog

// SchemaDDL defines the SQLite schema for the run log database.
// Execute against an open database with: db.Exec(SchemaDDL)
const SchemaDDL = `
-- One row per archiver invocation
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    sections TEXT NOT NULL,
    started_at TEXT NOT NULL DEFAULT (datetime('now')),
    finished_at TEXT
);

-- Per-hack outcomes and section-level failures within a run
CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY,
    run_id TEXT NOT NULL,
    section TEXT NOT NULL,
    hack_id INTEGER,
    hack_name TEXT,
    outcome TEXT NOT NULL,
    detail TEXT,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id);
CREATE INDEX IF NOT EXISTS idx_events_section ON events(section);
`

// sqliteTimeLayout is the format datetime('now') produces.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// OutcomeSectionFailed marks a section-level failure event; hack_id is NULL
// for these rows.
const OutcomeSectionFailed = "section-failed"
