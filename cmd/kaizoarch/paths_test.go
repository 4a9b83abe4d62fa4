package main

import (
	"path/filepath"
	"testing"
)

func TestResolvePathsDefaults(t *testing.T) {
	t.Setenv("KAIZOARCH_HOME", "")
	t.Setenv("KAIZOARCH_DB_PATH", "")

	base := t.TempDir()
	paths, err := ResolvePaths(base)
	if err != nil {
		t.Fatalf("ResolvePaths: %v", err)
	}
	if paths.BaseDir != base {
		t.Errorf("BaseDir = %q, want %q", paths.BaseDir, base)
	}
	if paths.DBPath != filepath.Join(base, "kaizoarch.db") {
		t.Errorf("DBPath = %q", paths.DBPath)
	}
	if paths.ConfigPath != filepath.Join(base, "kaizoarch.yaml") {
		t.Errorf("ConfigPath = %q", paths.ConfigPath)
	}
}

func TestResolvePathsHomeEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("KAIZOARCH_HOME", home)
	t.Setenv("KAIZOARCH_DB_PATH", "")

	paths, err := ResolvePaths("")
	if err != nil {
		t.Fatalf("ResolvePaths: %v", err)
	}
	if paths.BaseDir != home {
		t.Errorf("BaseDir = %q, want env home %q", paths.BaseDir, home)
	}
}

func TestResolvePathsFlagBeatsEnv(t *testing.T) {
	t.Setenv("KAIZOARCH_HOME", t.TempDir())
	flagDir := t.TempDir()

	paths, err := ResolvePaths(flagDir)
	if err != nil {
		t.Fatalf("ResolvePaths: %v", err)
	}
	if paths.BaseDir != flagDir {
		t.Errorf("BaseDir = %q, want flag dir %q", paths.BaseDir, flagDir)
	}
}

func TestResolvePathsDBOverride(t *testing.T) {
	t.Setenv("KAIZOARCH_DB_PATH", "/elsewhere/runs.db")

	paths, err := ResolvePaths(t.TempDir())
	if err != nil {
		t.Fatalf("ResolvePaths: %v", err)
	}
	if paths.DBPath != "/elsewhere/runs.db" {
		t.Errorf("DBPath = %q, want env override", paths.DBPath)
	}
}
