package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"kaizoarch/pkg/archive"
	"kaizoarch/pkg/catalog"
)

// testEntry lays out an entry in a fresh temp archive.
func testEntry(t *testing.T, section catalog.Section, rec catalog.HackRecord) archive.Entry {
	t.Helper()
	store := archive.NewStore(t.TempDir())
	if err := store.EnsureDirs(section); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	return store.LayoutFor(section, rec)
}

func TestEnsureDownloaded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "PK\x03\x04 zip bytes")
	}))
	defer srv.Close()

	rec := catalog.HackRecord{ID: 1, Name: "One", DownloadURL: srv.URL + "/1.zip"}
	entry := testEntry(t, catalog.SectionCasual, rec)

	d := NewDownloader(srv.Client())
	if err := d.EnsureDownloaded(context.Background(), entry, rec); err != nil {
		t.Fatalf("EnsureDownloaded: %v", err)
	}
	if !entry.Status().Zip {
		t.Fatal("zip not present after download")
	}
	data, err := os.ReadFile(entry.ZipPath)
	if err != nil || len(data) == 0 {
		t.Fatalf("zip unreadable: %v", err)
	}
}

func TestEnsureDownloadedSkipsExistingZip(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, "fresh bytes")
	}))
	defer srv.Close()

	rec := catalog.HackRecord{ID: 2, Name: "Two", DownloadURL: srv.URL + "/2.zip"}
	entry := testEntry(t, catalog.SectionCasual, rec)
	if err := os.WriteFile(entry.ZipPath, []byte("already here"), 0o640); err != nil {
		t.Fatal(err)
	}

	d := NewDownloader(srv.Client())
	if err := d.EnsureDownloaded(context.Background(), entry, rec); err != nil {
		t.Fatalf("EnsureDownloaded: %v", err)
	}
	if requests != 0 {
		t.Fatalf("expected no request for existing zip, got %d", requests)
	}
	data, _ := os.ReadFile(entry.ZipPath)
	if string(data) != "already here" {
		t.Fatal("existing zip was overwritten")
	}
}

func TestEnsureDownloadedForbiddenIsLoginRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "age gate", http.StatusForbidden)
	}))
	defer srv.Close()

	rec := catalog.HackRecord{ID: 3, Name: "Gated", DownloadURL: srv.URL + "/3.zip"}
	entry := testEntry(t, catalog.SectionExpert, rec)

	err := NewDownloader(srv.Client()).EnsureDownloaded(context.Background(), entry, rec)
	var dlErr *DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("expected DownloadError, got %v", err)
	}
	if !dlErr.LoginRequired {
		t.Error("403 must be flagged LoginRequired")
	}
	if entry.Status().Zip {
		t.Error("no zip should exist after a 403")
	}
}

func TestEnsureDownloadedServerErrorLeavesNoPartialFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	rec := catalog.HackRecord{ID: 4, Name: "Flaky", DownloadURL: srv.URL + "/4.zip"}
	entry := testEntry(t, catalog.SectionMaster, rec)

	err := NewDownloader(srv.Client()).EnsureDownloaded(context.Background(), entry, rec)
	var dlErr *DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("expected DownloadError, got %v", err)
	}
	if dlErr.LoginRequired {
		t.Error("500 must not be flagged LoginRequired")
	}
	if entry.Status().Zip {
		t.Error("zip slot must stay empty after a failed download")
	}
	if _, statErr := os.Stat(entry.ZipPath + ".partial"); !os.IsNotExist(statErr) {
		t.Error("partial file left behind")
	}
}

func TestEnsureDownloadedRejectsEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rec := catalog.HackRecord{ID: 5, Name: "Empty", DownloadURL: srv.URL + "/5.zip"}
	entry := testEntry(t, catalog.SectionNewcomer, rec)

	err := NewDownloader(srv.Client()).EnsureDownloaded(context.Background(), entry, rec)
	var dlErr *DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("expected DownloadError for empty body, got %v", err)
	}
	if entry.Status().Zip {
		t.Error("zero-byte body must not produce a zip")
	}
}
