package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"kaizoarch/pkg/runlog"
)

var errFake = errors.New("database locked")

func TestPad(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"expert", 10, "expert    "},
		{"grandmaster", 8, "grandma "},
		{"", 4, "    "},
	}
	for _, tt := range tests {
		if got := pad(tt.in, tt.width); got != tt.want {
			t.Errorf("pad(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	m := newModel()
	out := m.View()
	if !strings.Contains(out, "no runs recorded yet") {
		t.Errorf("empty view should show no-runs notice:\n%s", out)
	}
	if !strings.Contains(out, "q to quit") {
		t.Errorf("view missing quit hint:\n%s", out)
	}
}

func TestViewRendersSnapshot(t *testing.T) {
	finished := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	m := newModel()
	m.lastRun = &runlog.Run{ID: "run-9", Sections: "expert,master", FinishedAt: &finished}
	m.summaries = []runlog.SectionSummary{
		{Section: "expert", Succeeded: 4, Skipped: 10, DownloadFailed: 1},
	}
	m.events = []runlog.Event{
		{Section: "expert", HackID: 55, HackName: "Spiky", Outcome: "succeeded", CreatedAt: finished},
		{Section: "expert", Outcome: "section-failed", Detail: "catalog unavailable", CreatedAt: finished},
	}

	out := m.View()
	for _, want := range []string{"run-9", "finished", "expert", "Spiky", "Recent events", "catalog unavailable"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestViewError(t *testing.T) {
	m := newModel()
	m.err = errFake
	out := m.View()
	if !strings.Contains(out, "waiting for run log") {
		t.Errorf("error view should show waiting notice:\n%s", out)
	}
}
