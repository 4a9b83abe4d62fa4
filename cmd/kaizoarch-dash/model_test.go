package main

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kaizoarch/pkg/runlog"
)

func TestRunLogPathEnvOverrides(t *testing.T) {
	t.Setenv("KAIZOARCH_DB_PATH", "/data/runs.db")
	t.Setenv("KAIZOARCH_HOME", "/home/archive")
	if got := runLogPath(); got != "/data/runs.db" {
		t.Errorf("runLogPath() = %q, want DB env override", got)
	}

	t.Setenv("KAIZOARCH_DB_PATH", "")
	if got := runLogPath(); got != filepath.Join("/home/archive", "kaizoarch.db") {
		t.Errorf("runLogPath() = %q, want home-relative default", got)
	}
}

func TestUpdateQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c", "esc"} {
		m := newModel()
		var msg tea.KeyMsg
		switch key {
		case "q":
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("key %s should produce a quit command", key)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %s produced %T, want tea.QuitMsg", key, cmd())
		}
	}
}

func TestUpdateDataMsg(t *testing.T) {
	finished := time.Now()
	m := newModel()
	next, _ := m.Update(dataMsg{
		lastRun:   &runlog.Run{ID: "run-1", Sections: "expert", FinishedAt: &finished},
		summaries: []runlog.SectionSummary{{Section: "expert", Succeeded: 3}},
		events:    []runlog.Event{{Section: "expert", HackID: 7, HackName: "Tricky", Outcome: "succeeded"}},
	})

	got := next.(Model)
	if got.lastRun == nil || got.lastRun.ID != "run-1" {
		t.Fatalf("lastRun not applied: %+v", got.lastRun)
	}
	if len(got.summaries) != 1 || got.summaries[0].Succeeded != 3 {
		t.Errorf("summaries not applied: %+v", got.summaries)
	}
	if len(got.events) != 1 {
		t.Errorf("events not applied: %+v", got.events)
	}
	if got.runActive() {
		t.Error("finished run should not be active")
	}
}

func TestRunActive(t *testing.T) {
	m := newModel()
	if m.runActive() {
		t.Error("empty model should not be active")
	}

	m.lastRun = &runlog.Run{ID: "run-2", Sections: "master"}
	if !m.runActive() {
		t.Error("run without finished_at should be active")
	}
}

func TestUpdateTickRefetches(t *testing.T) {
	m := newModel()
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick should schedule a refetch")
	}
}

func TestUpdateWindowSize(t *testing.T) {
	m := newModel()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	got := next.(Model)
	if got.width != 100 || got.height != 40 {
		t.Errorf("size = %dx%d, want 100x40", got.width, got.height)
	}
}
