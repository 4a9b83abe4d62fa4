// Package pipeline drives the archive pipeline: download a hack's
// distribution zip, extract its patch, and apply it against the base ROM.
// Each stage is idempotent (work already on disk is never redone) and each
// hack's failure is isolated so one bad entry cannot abort a run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"kaizoarch/pkg/archive"
	"kaizoarch/pkg/catalog"
)

// Downloader fetches distribution zips into the archive store.
type Downloader struct {
	HTTP *http.Client
}

// NewDownloader creates a downloader using client, or http.DefaultClient if
// nil.
func NewDownloader(client *http.Client) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{HTTP: client}
}

// EnsureDownloaded fetches the record's zip into entry.ZipPath. A no-op when
// the zip is already present (the primary cost-avoidance path: sections are
// re-queried every run, but zips rarely change). On failure no partial file
// is left behind: the body streams to a temp path that is renamed into place
// only on full success.
func (d *Downloader) EnsureDownloaded(ctx context.Context, entry archive.Entry, rec catalog.HackRecord) error {
	if entry.Status().Zip {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rec.DownloadURL, nil)
	if err != nil {
		return &DownloadError{HackID: rec.ID, HackName: rec.Name, URL: rec.DownloadURL, Err: err}
	}
	resp, err := d.HTTP.Do(req)
	if err != nil {
		return &DownloadError{HackID: rec.ID, HackName: rec.Name, URL: rec.DownloadURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return &DownloadError{
			HackID:        rec.ID,
			HackName:      rec.Name,
			URL:           rec.DownloadURL,
			LoginRequired: true,
			Err:           fmt.Errorf("status %s", resp.Status),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return &DownloadError{
			HackID:   rec.ID,
			HackName: rec.Name,
			URL:      rec.DownloadURL,
			Err:      fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if err := writeAtomic(entry.ZipPath, resp.Body); err != nil {
		return &DownloadError{HackID: rec.ID, HackName: rec.Name, URL: rec.DownloadURL, Err: err}
	}
	return nil
}

// writeAtomic streams r to path via a temp file renamed into place on
// success. An empty body is rejected; the temp file is removed on any error.
func writeAtomic(path string, r io.Reader) error {
	tmp := path + ".partial"
	f, err := os.Create(tmp) //nolint:gosec // path derived from the store layout
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n == 0 {
		err = fmt.Errorf("empty response body")
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
