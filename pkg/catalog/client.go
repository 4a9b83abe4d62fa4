package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the catalog's section-list endpoint.
const DefaultBaseURL = "https://www.smwcentral.net/ajax.php"

// defaultPageDelay paces paginated requests so the catalog is not hammered.
const defaultPageDelay = time.Second

// UnavailableError reports that a section's catalog query could not be
// completed: transport failure, non-success status, or an unparseable
// response body. It aborts only that section's processing.
type UnavailableError struct {
	Section Section
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("catalog unavailable for section %s: %v", e.Section, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Client queries the catalog's public section-list API.
// The zero value is not usable; use NewClient.
type Client struct {
	baseURL   string
	http      *http.Client
	pageDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the catalog endpoint (used by tests and mirrors).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithPageDelay overrides the pause between paginated requests.
// Zero disables pacing.
func WithPageDelay(d time.Duration) Option {
	return func(c *Client) { c.pageDelay = d }
}

// NewClient creates a catalog client with production defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		http:      http.DefaultClient,
		pageDelay: defaultPageDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch starts a lazy query for section. No request is issued until the first
// call to Stream.Next; pagination is followed as the stream is consumed, so
// processing can begin before the full result set is retrieved. The stream is
// finite and non-restartable.
func (c *Client) Fetch(ctx context.Context, section Section) *Stream {
	return &Stream{
		client:  c,
		ctx:     ctx,
		section: section,
		nextURL: c.baseURL + "?" + section.QueryValues().Encode(),
	}
}

// Stream yields HackRecords one at a time, in catalog order.
// Usage follows the bufio.Scanner convention: call Next until it returns
// false, then check Err.
type Stream struct {
	client  *Client
	ctx     context.Context
	section Section

	nextURL string // empty once the last page has been fetched
	page    []HackRecord
	cur     HackRecord
	fetched bool // at least one page requested, pace subsequent ones
	dropped int
	err     error
}

// Next advances to the next record, fetching further pages as needed.
// It returns false when the stream is exhausted or a catalog error occurred.
func (s *Stream) Next() bool {
	if s.err != nil {
		return false
	}
	for len(s.page) == 0 {
		if s.nextURL == "" {
			return false
		}
		if err := s.fetchPage(); err != nil {
			s.err = &UnavailableError{Section: s.section, Err: err}
			return false
		}
	}
	s.cur = s.page[0]
	s.page = s.page[1:]
	return true
}

// Record returns the record produced by the last successful Next.
func (s *Stream) Record() HackRecord { return s.cur }

// Err returns the catalog error that terminated the stream, if any.
func (s *Stream) Err() error { return s.err }

// Dropped reports how many catalog entries were skipped because they carried
// no download URL. Such entries cannot be archived and are not failures.
func (s *Stream) Dropped() int { return s.dropped }

// fetchPage retrieves the page at nextURL and queues its records.
func (s *Stream) fetchPage() error {
	if s.fetched && s.client.pageDelay > 0 {
		select {
		case <-time.After(s.client.pageDelay):
		case <-s.ctx.Done():
			return s.ctx.Err()
		}
	}
	s.fetched = true

	req, err := http.NewRequestWithContext(s.ctx, http.MethodGet, s.nextURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", s.nextURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: unexpected status %s", s.nextURL, resp.Status)
	}

	var page wirePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return fmt.Errorf("decode %s: %w", s.nextURL, err)
	}

	for _, item := range page.Data {
		rec, err := item.toRecord(s.section)
		if err != nil {
			return fmt.Errorf("parse %s: %w", s.nextURL, err)
		}
		if rec.DownloadURL == "" {
			s.dropped++
			continue
		}
		s.page = append(s.page, rec)
	}
	s.nextURL = page.NextPageURL
	return nil
}
