package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"kaizoarch/pkg/runlog"
)

// recentEventCount bounds the events pane.
const recentEventCount = 15

// tickMsg is sent on every tick interval to trigger a periodic refresh,
// covering the case where fsnotify is unavailable.
type tickMsg time.Time

// dataMsg carries a snapshot read from the run log database.
type dataMsg struct {
	lastRun   *runlog.Run
	summaries []runlog.SectionSummary
	events    []runlog.Event
	err       error
}

// tickCmd returns a command that sends a tickMsg after 2 seconds.
func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchCmd reads a fresh snapshot from the run log. The reader is read-only,
// so a running archiver is never blocked.
func fetchCmd(dbPath string) tea.Cmd {
	return func() tea.Msg {
		reader, err := runlog.NewReader(dbPath)
		if err != nil {
			return dataMsg{err: err}
		}
		defer reader.Close()

		ctx := context.Background()
		var msg dataMsg
		msg.lastRun, msg.err = reader.LastRun(ctx)
		if msg.err != nil {
			return msg
		}
		msg.summaries, msg.err = reader.SectionSummaries(ctx)
		if msg.err != nil {
			return msg
		}
		msg.events, msg.err = reader.RecentEvents(ctx, recentEventCount)
		return msg
	}
}

// runLogPath returns the run log database path from env or defaults,
// mirroring the CLI's path resolution.
func runLogPath() string {
	if v := os.Getenv("KAIZOARCH_DB_PATH"); v != "" {
		return v
	}
	base := os.Getenv("KAIZOARCH_HOME")
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "kaizoarch.db"
		}
		base = cwd
	}
	return filepath.Join(base, "kaizoarch.db")
}

// Model is the Bubble Tea model for the kaizoarch dashboard.
type Model struct {
	dbPath string

	lastRun   *runlog.Run
	summaries []runlog.SectionSummary
	events    []runlog.Event
	err       error

	spin   spinner.Model
	width  int
	height int
}

// newModel creates a Model wired to the default run log path.
func newModel() Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		dbPath: runLogPath(),
		spin:   sp,
	}
}

// runActive reports whether the most recent run has not finished yet.
func (m Model) runActive() bool {
	return m.lastRun != nil && m.lastRun.FinishedAt == nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchCmd(m.dbPath), tickCmd(), watchRunLog(m.dbPath), m.spin.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(fetchCmd(m.dbPath), tickCmd())

	case fsChangeMsg:
		// Re-arm the watcher: each watch command returns after one change.
		return m, tea.Batch(fetchCmd(m.dbPath), watchRunLog(m.dbPath))

	case dataMsg:
		m.lastRun = msg.lastRun
		m.summaries = msg.summaries
		m.events = msg.events
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}
