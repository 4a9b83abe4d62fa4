package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HackRecord is one catalog entry for a section: the transient input to the
// archive pipeline for a single run. Records are never persisted directly;
// the archive store derives stable on-disk paths from them instead.
type HackRecord struct {
	ID          int64
	Name        string
	Authors     string // display string, multiple authors joined with " & "
	DownloadURL string
	Section     Section
}

// wireItem is the loosely-typed shape the catalog returns per entry. Decoding
// into HackRecord happens at this boundary so nothing untyped travels inward.
type wireItem struct {
	ID          json.Number `json:"id"`
	Name        string      `json:"name"`
	DownloadURL string      `json:"download_url"`
	Authors     []struct {
		Name string `json:"name"`
	} `json:"authors"`
}

// wirePage is one page of the paginated section-list response.
type wirePage struct {
	Data        []wireItem `json:"data"`
	NextPageURL string     `json:"next_page_url"`
}

// toRecord converts a wire item into a HackRecord, rejecting entries the
// pipeline cannot act on.
func (w wireItem) toRecord(section Section) (HackRecord, error) {
	id, err := w.ID.Int64()
	if err != nil {
		return HackRecord{}, fmt.Errorf("entry %q: non-numeric id %q", w.Name, w.ID.String())
	}
	if w.Name == "" {
		return HackRecord{}, fmt.Errorf("entry %d: missing name", id)
	}
	names := make([]string, 0, len(w.Authors))
	for _, a := range w.Authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return HackRecord{
		ID:          id,
		Name:        w.Name,
		Authors:     strings.Join(names, " & "),
		DownloadURL: w.DownloadURL,
		Section:     section,
	}, nil
}
