package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	if err := SaveFile(path, []byte("enabled: true\n")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if err := SaveFile(path, []byte("enabled: false\n")); err != nil {
		t.Fatalf("SaveFile() overwrite error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "enabled: false\n" {
		t.Errorf("content = %q", data)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}

	stats, err := GetFileStats(path)
	if err != nil {
		t.Fatal(err)
	}
	if stats.SizeBytes != int64(len("enabled: false\n")) {
		t.Errorf("SizeBytes = %d", stats.SizeBytes)
	}
}

func TestGetFileStats_Missing(t *testing.T) {
	if _, err := GetFileStats(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing file")
	}
}
