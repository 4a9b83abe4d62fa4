package pipeline

import (
	"fmt"
	"strings"

	"kaizoarch/pkg/catalog"
)

// Outcome is the terminal state of one hack within a run.
type Outcome string

// Per-hack outcomes. Skipped means the entry was fully archived before this
// run started; Succeeded means this run produced its patched ROM.
const (
	OutcomeSucceeded      Outcome = "succeeded"
	OutcomeSkipped        Outcome = "skipped"
	OutcomeLoginRequired  Outcome = "login-required"
	OutcomeDownloadFailed Outcome = "download-failed"
	OutcomeExtractFailed  Outcome = "extract-failed"
	OutcomePatchFailed    Outcome = "patch-failed"
)

// SectionResult accumulates per-hack outcomes for one section.
type SectionResult struct {
	Section catalog.Section

	Total          int // records seen from the catalog
	Downloaded     int // zips newly fetched this run
	Skipped        int
	Succeeded      int
	LoginRequired  int
	DownloadFailed int
	ExtractFailed  int
	PatchFailed    int
	Dropped        int // catalog entries without a download URL

	// SectionErr is set when the section failed as a whole: its catalog
	// query could not be completed or its directories could not be
	// created. Recorded distinctly from per-hack failures.
	SectionErr error
}

// record tallies one hack's outcome.
func (r *SectionResult) record(o Outcome) {
	r.Total++
	switch o {
	case OutcomeSucceeded:
		r.Succeeded++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeLoginRequired:
		r.LoginRequired++
	case OutcomeDownloadFailed:
		r.DownloadFailed++
	case OutcomeExtractFailed:
		r.ExtractFailed++
	case OutcomePatchFailed:
		r.PatchFailed++
	}
}

// Failed returns how many hacks ended in a failure outcome.
func (r *SectionResult) Failed() int {
	return r.DownloadFailed + r.ExtractFailed + r.PatchFailed
}

// RunResult aggregates section results for one invocation. It is an explicit
// accumulator threaded through the run and returned at the end; nothing in
// the pipeline holds run state globally.
type RunResult struct {
	Sections []SectionResult
}

// Totals sums every section's counters into a single SectionResult whose
// Section field is empty.
func (r *RunResult) Totals() SectionResult {
	var t SectionResult
	for _, s := range r.Sections {
		t.Total += s.Total
		t.Downloaded += s.Downloaded
		t.Skipped += s.Skipped
		t.Succeeded += s.Succeeded
		t.LoginRequired += s.LoginRequired
		t.DownloadFailed += s.DownloadFailed
		t.ExtractFailed += s.ExtractFailed
		t.PatchFailed += s.PatchFailed
		t.Dropped += s.Dropped
	}
	return t
}

// Summary renders the human-readable end-of-run report.
func (r *RunResult) Summary() string {
	var sb strings.Builder
	for _, s := range r.Sections {
		fmt.Fprintf(&sb, "%s:\n", s.Section)
		if s.SectionErr != nil {
			fmt.Fprintf(&sb, "  section failed: %v\n", s.SectionErr)
		}
		fmt.Fprintf(&sb, "  hacks seen:      %d\n", s.Total)
		fmt.Fprintf(&sb, "  succeeded:       %d\n", s.Succeeded)
		fmt.Fprintf(&sb, "  already archived: %d\n", s.Skipped)
		fmt.Fprintf(&sb, "  downloaded:      %d\n", s.Downloaded)
		if s.LoginRequired > 0 {
			fmt.Fprintf(&sb, "  requires login:  %d\n", s.LoginRequired)
		}
		if s.Failed() > 0 {
			fmt.Fprintf(&sb, "  failed:          %d (download %d, extract %d, patch %d)\n",
				s.Failed(), s.DownloadFailed, s.ExtractFailed, s.PatchFailed)
		}
		if s.Dropped > 0 {
			fmt.Fprintf(&sb, "  no download URL: %d\n", s.Dropped)
		}
	}
	t := r.Totals()
	fmt.Fprintf(&sb, "total: %d seen, %d succeeded, %d already archived, %d failed\n",
		t.Total, t.Succeeded, t.Skipped, t.Failed())
	return sb.String()
}
