package pipeline

import "fmt"

// DownloadError reports a failed distribution-zip download for one hack.
// LoginRequired marks catalog entries behind an age-verification wall
// (HTTP 403); those need a manual download rather than a retry.
type DownloadError struct {
	HackID        int64
	HackName      string
	URL           string
	LoginRequired bool
	Err           error
}

func (e *DownloadError) Error() string {
	if e.LoginRequired {
		return fmt.Sprintf("download %q (id %d): requires login: %s", e.HackName, e.HackID, e.URL)
	}
	return fmt.Sprintf("download %q (id %d): %v", e.HackName, e.HackID, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ExtractError reports that a downloaded zip yielded no usable patch file:
// the archive was unreadable, contained no patch, or contained more than one
// (ambiguous; the pipeline does not guess).
type ExtractError struct {
	HackID   int64
	HackName string
	ZipPath  string
	Err      error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract %q (id %d) from %s: %v", e.HackName, e.HackID, e.ZipPath, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// PatchError reports a failed patcher invocation for one hack.
type PatchError struct {
	HackID   int64
	HackName string
	Err      error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("patch %q (id %d): %v", e.HackName, e.HackID, e.Err)
}

func (e *PatchError) Unwrap() error { return e.Err }
