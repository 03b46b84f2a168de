package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestTimestampLayoutPreservesOrder(t *testing.T) {
	// created_at columns are compared as strings, so the layout must
	// be fixed width: later times always sort later lexically.
	earlier := time.Date(2026, 8, 26, 10, 0, 0, 5, time.UTC).Format(TimestampLayout)
	later := time.Date(2026, 8, 26, 10, 0, 0, 120, time.UTC).Format(TimestampLayout)
	if len(earlier) != len(later) {
		t.Fatalf("layout is not fixed width: %q vs %q", earlier, later)
	}
	if !(earlier < later) {
		t.Fatalf("expected %q < %q", earlier, later)
	}
}

func TestEnvOverridesPaths(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "custom.sqlite")
	t.Setenv("DEVLOG_DB_PATH", dbFile)

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	got, err := DBPath()
	if err != nil {
		t.Fatalf("DBPath failed: %v", err)
	}
	if got != dbFile {
		t.Fatalf("expected DEVLOG_DB_PATH to win, got %q", got)
	}
}

func TestDataDirOverride(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("DEVLOG_DATA_DIR", dataDir)

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	root, err := DataRoot()
	if err != nil {
		t.Fatalf("DataRoot failed: %v", err)
	}
	if root != dataDir {
		t.Fatalf("expected DEVLOG_DATA_DIR to win, got %q", root)
	}

	legacy, err := LegacyPath()
	if err != nil {
		t.Fatalf("LegacyPath failed: %v", err)
	}
	if legacy != filepath.Join(dataDir, LegacyFileName) {
		t.Fatalf("unexpected legacy path %q", legacy)
	}

	reports, err := ReportsDir()
	if err != nil {
		t.Fatalf("ReportsDir failed: %v", err)
	}
	if reports != filepath.Join(dataDir, ReportsDirName) {
		t.Fatalf("unexpected reports dir %q", reports)
	}
}
