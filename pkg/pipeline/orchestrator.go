package pipeline

import (
	"context"
	"errors"
	"time"

	"kaizoarch/pkg/archive"
	"kaizoarch/pkg/catalog"
)

// defaultHackDelay paces per-hack downloads so the catalog's file host is not
// hammered.
const defaultHackDelay = 500 * time.Millisecond

// EventSink receives per-hack and per-section outcomes as they happen.
// Implemented by the run log; a nil sink disables recording.
type EventSink interface {
	HackOutcome(section catalog.Section, hackID int64, hackName string, outcome Outcome, detail string)
	SectionError(section catalog.Section, err error)
}

// MultiSink fans events out to several sinks in order.
type MultiSink []EventSink

// HackOutcome implements EventSink.
func (m MultiSink) HackOutcome(section catalog.Section, hackID int64, hackName string, outcome Outcome, detail string) {
	for _, s := range m {
		s.HackOutcome(section, hackID, hackName, outcome, detail)
	}
}

// SectionError implements EventSink.
func (m MultiSink) SectionError(section catalog.Section, err error) {
	for _, s := range m {
		s.SectionError(section, err)
	}
}

// Orchestrator drives the archive pipeline: for each requested section,
// stream catalog records and walk each one through download → extract →
// patch, stopping at the first failed stage for that record. Strictly
// sequential: one hack completes or fails before the next begins.
type Orchestrator struct {
	Catalog    *catalog.Client
	Store      *archive.Store
	Downloader *Downloader
	Extractor  Extractor
	Patcher    *Patcher

	// HackDelay is the pause between hacks. Negative disables it;
	// zero means the default.
	HackDelay time.Duration

	// Events receives per-hack outcomes as they are decided; the CLI
	// chains the run log and its progress printer here. May be nil.
	Events EventSink

	// Logf emits section-level progress lines and warnings. May be nil.
	Logf func(format string, args ...any)
}

// Run processes the requested sections in order and returns the aggregated
// result. Per-hack and per-section failures are recorded in the result, not
// returned; the only returned error is context cancellation.
func (o *Orchestrator) Run(ctx context.Context, sections []catalog.Section) (*RunResult, error) {
	result := &RunResult{}
	for _, section := range sections {
		sr := o.runSection(ctx, section)
		result.Sections = append(result.Sections, sr)
		if err := ctx.Err(); err != nil {
			return result, err
		}
	}
	return result, nil
}

// runSection processes one section to completion. A catalog failure ends the
// section early and is recorded on the result; hacks already processed keep
// their outcomes.
func (o *Orchestrator) runSection(ctx context.Context, section catalog.Section) SectionResult {
	sr := SectionResult{Section: section}
	o.logf("section %s: querying catalog", section)

	if err := o.Store.EnsureDirs(section); err != nil {
		sr.SectionErr = err
		o.sectionError(section, err)
		return sr
	}

	var manifest archive.Manifest
	manifest.Section = section.String()

	stream := o.Catalog.Fetch(ctx, section)
	for stream.Next() {
		rec := stream.Record()
		entry := o.Store.LayoutFor(section, rec)
		outcome, downloaded, detail := o.processHack(ctx, entry, rec)

		sr.record(outcome)
		if downloaded {
			sr.Downloaded++
		}
		if o.Events != nil {
			o.Events.HackOutcome(section, rec.ID, rec.Name, outcome, detail)
		}
		manifest.Hacks = append(manifest.Hacks, manifestEntry(entry, rec, outcome))

		if err := o.pause(ctx); err != nil {
			break
		}
	}
	sr.Dropped = stream.Dropped()

	if err := stream.Err(); err != nil {
		sr.SectionErr = err
		o.sectionError(section, err)
	}

	o.writeManifest(section, manifest)
	return sr
}

// processHack walks one record through the stage state machine:
// discovered → zip-present → patch-present → rom-present, with a terminal
// failure exit at the first stage that cannot complete. Each stage guards
// itself with its idempotency check, so an interrupted run resumes exactly
// where it left off.
func (o *Orchestrator) processHack(ctx context.Context, entry archive.Entry, rec catalog.HackRecord) (outcome Outcome, downloaded bool, detail string) {
	status := entry.Status()
	if status.Rom {
		return OutcomeSkipped, false, ""
	}

	if err := o.Downloader.EnsureDownloaded(ctx, entry, rec); err != nil {
		var dlErr *DownloadError
		if errors.As(err, &dlErr) && dlErr.LoginRequired {
			return OutcomeLoginRequired, false, err.Error()
		}
		return OutcomeDownloadFailed, false, err.Error()
	}
	downloaded = !status.Zip

	if err := o.Extractor.EnsureExtracted(entry); err != nil {
		return OutcomeExtractFailed, downloaded, err.Error()
	}

	if err := o.Patcher.EnsurePatched(ctx, entry); err != nil {
		return OutcomePatchFailed, downloaded, err.Error()
	}

	return OutcomeSucceeded, downloaded, ""
}

// manifestEntry projects a processed hack into its manifest record. Slot
// paths are only recorded for stages that actually completed.
func manifestEntry(entry archive.Entry, rec catalog.HackRecord, outcome Outcome) archive.ManifestEntry {
	me := archive.ManifestEntry{
		ID:      rec.ID,
		Name:    rec.Name,
		Authors: rec.Authors,
		Outcome: string(outcome),
	}
	status := entry.Status()
	if status.Zip {
		me.Zip = entry.ZipPath
	}
	if status.Patch {
		me.Patch = entry.PatchPath
	}
	if status.Rom {
		me.Rom = entry.RomPath
	}
	return me
}

// writeManifest persists the section manifest; failures are warned about but
// never fail the section (the manifest is derived state).
func (o *Orchestrator) writeManifest(section catalog.Section, m archive.Manifest) {
	m.UpdatedAt = time.Now().UTC()
	path := o.Store.SectionManifestPath(section)
	if err := archive.EnsureManifestDir(path); err != nil {
		o.logf("warning: %v", err)
		return
	}
	if err := archive.WriteManifest(path, m); err != nil {
		o.logf("warning: %v", err)
	}
}

// pause sleeps the inter-hack politeness delay, honoring cancellation.
func (o *Orchestrator) pause(ctx context.Context) error {
	delay := o.HackDelay
	if delay == 0 {
		delay = defaultHackDelay
	}
	if delay < 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Orchestrator) sectionError(section catalog.Section, err error) {
	o.logf("section %s: %v", section, err)
	if o.Events != nil {
		o.Events.SectionError(section, err)
	}
}

func (o *Orchestrator) logf(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}
