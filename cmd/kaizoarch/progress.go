package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// progressLog provides step-by-step run progress output. In TTY mode
// transient per-hack lines overwrite each other; in non-TTY mode (logs,
// pipes) every line is emitted on its own row.
type progressLog struct {
	w             io.Writer
	isTTY         bool
	lastTransient bool
}

// newProgressLog creates a progress logger that writes to w.
func newProgressLog(w io.Writer) *progressLog {
	isTTY := false
	if f, ok := w.(*os.File); ok {
		isTTY = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &progressLog{w: w, isTTY: isTTY}
}

// Step prints a completed step with a checkmark.
func (p *progressLog) Step(msg string) {
	p.clearTransient()
	fmt.Fprintf(p.w, "✓ %s\n", msg)
}

// Logf prints a persistent progress line.
func (p *progressLog) Logf(format string, args ...any) {
	p.clearTransient()
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Transientf prints a line that the next output may overwrite (TTY only).
// Used for per-hack "processing" chatter that would flood a scrollback.
func (p *progressLog) Transientf(format string, args ...any) {
	if !p.isTTY {
		fmt.Fprintf(p.w, format+"\n", args...)
		return
	}
	fmt.Fprintf(p.w, "\r\033[K"+format, args...)
	p.lastTransient = true
}

// clearTransient terminates a pending transient line before persistent
// output.
func (p *progressLog) clearTransient() {
	if p.lastTransient {
		fmt.Fprint(p.w, "\r\033[K")
		p.lastTransient = false
	}
}

// Done flushes any pending transient line.
func (p *progressLog) Done() {
	p.clearTransient()
}
