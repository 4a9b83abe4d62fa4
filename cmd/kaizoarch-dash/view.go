package main

import (
	"fmt"
	"strings"

	"kaizoarch/pkg/runlog"
)

// View implements tea.Model.
func (m Model) View() string {
	theme := DefaultTheme()
	styles := NewStyles(theme)

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("kaizoarch: archive run log"))
	sb.WriteString("\n\n")

	if m.err != nil {
		sb.WriteString(styles.Muted.Render(fmt.Sprintf("waiting for run log: %v", m.err)))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(m.renderRunLine(styles))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderSectionsTable(styles))
	sb.WriteString("\n")
	sb.WriteString(m.renderEvents(styles))
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render("q to quit"))
	sb.WriteString("\n")
	return sb.String()
}

// renderRunLine shows the most recent run and whether it is still going.
func (m Model) renderRunLine(styles Styles) string {
	if m.lastRun == nil {
		return styles.Muted.Render("no runs recorded yet")
	}
	if m.runActive() {
		return fmt.Sprintf("%s run %s (%s) in progress", m.spin.View(), m.lastRun.ID, m.lastRun.Sections)
	}
	return fmt.Sprintf("run %s (%s) finished %s",
		m.lastRun.ID, m.lastRun.Sections, m.lastRun.FinishedAt.Format("15:04:05"))
}

// renderSectionsTable renders per-section outcome counts.
func (m Model) renderSectionsTable(styles Styles) string {
	if len(m.summaries) == 0 {
		return styles.Muted.Render("no outcomes recorded yet")
	}

	headers := []string{"Section", "OK", "Skip", "Login", "Failed"}
	widths := []int{14, 6, 6, 6, 8}

	var sb strings.Builder
	for i, h := range headers {
		sb.WriteString(styles.Header.Render(pad(h, widths[i])))
	}
	sb.WriteString("\n")

	for _, s := range m.summaries {
		failed := s.DownloadFailed + s.ExtractFailed + s.PatchFailed + s.SectionFailed
		sb.WriteString(styles.Section.Render(pad(s.Section, widths[0])))
		sb.WriteString(styles.Good.Render(pad(fmt.Sprint(s.Succeeded), widths[1])))
		sb.WriteString(styles.Cell.Render(pad(fmt.Sprint(s.Skipped), widths[2])))
		sb.WriteString(styles.Warn.Render(pad(fmt.Sprint(s.LoginRequired), widths[3])))
		if failed > 0 {
			sb.WriteString(styles.Bad.Render(pad(fmt.Sprint(failed), widths[4])))
		} else {
			sb.WriteString(styles.Cell.Render(pad("0", widths[4])))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderEvents renders the recent-events pane, newest first.
func (m Model) renderEvents(styles Styles) string {
	if len(m.events) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(styles.Header.Render("Recent events"))
	sb.WriteString("\n")
	for _, e := range m.events {
		line := fmt.Sprintf("%s  %-12s %s", e.CreatedAt.Format("15:04:05"), e.Section, eventText(e))
		switch e.Outcome {
		case "succeeded":
			sb.WriteString(styles.Good.Render(line))
		case "skipped":
			sb.WriteString(styles.Muted.Render(line))
		case "login-required":
			sb.WriteString(styles.Warn.Render(line))
		default:
			sb.WriteString(styles.Bad.Render(line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// eventText summarizes one event row for the events pane.
func eventText(e runlog.Event) string {
	if e.HackName == "" {
		return fmt.Sprintf("%s: %s", e.Outcome, e.Detail)
	}
	return fmt.Sprintf("%s (id %d): %s", e.HackName, e.HackID, e.Outcome)
}

// pad right-pads s to width, truncating when it overflows.
func pad(s string, width int) string {
	if len(s) > width-1 {
		s = s[:width-1]
	}
	return s + strings.Repeat(" ", width-len(s))
}
