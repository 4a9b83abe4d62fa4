package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressLogNonTTY(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressLog(&buf)

	if p.isTTY {
		t.Fatal("bytes.Buffer should not be detected as a TTY")
	}

	p.Step("preflight ok")
	p.Transientf("skipping %d", 42)
	p.Logf("section %s done", "expert")
	p.Done()

	got := buf.String()
	want := "✓ preflight ok\nskipping 42\nsection expert done\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestProgressLogTransientOverwritesOnTTY(t *testing.T) {
	var buf bytes.Buffer
	p := &progressLog{w: &buf, isTTY: true}

	p.Transientf("hack 1")
	p.Transientf("hack 2")
	p.Logf("done")

	got := buf.String()
	if !strings.Contains(got, "\r\033[K") {
		t.Errorf("TTY transient output should carriage-return, got %q", got)
	}
	if !strings.HasSuffix(got, "done\n") {
		t.Errorf("persistent line should end output, got %q", got)
	}
	if p.lastTransient {
		t.Error("Logf should clear the pending transient flag")
	}
}
