package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPluralize(t *testing.T) {
	if got := Pluralize(1, "file"); got != "file" {
		t.Errorf("Pluralize(1) = %q", got)
	}
	if got := Pluralize(0, "file"); got != "files" {
		t.Errorf("Pluralize(0) = %q", got)
	}
	if got := Pluralize(3, "file"); got != "files" {
		t.Errorf("Pluralize(3) = %q", got)
	}
}

func TestFormatPaths(t *testing.T) {
	out := FormatPaths([]string{"index.html", "app.js"})
	if !strings.Contains(out, "index.html") || !strings.Contains(out, "app.js") {
		t.Errorf("FormatPaths output missing paths: %q", out)
	}
	if strings.Count(out, "    - ") != 2 {
		t.Errorf("Expected two list items, got %q", out)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "index.html")

	if err := WriteFileAtomic(path, []byte("<html></html>"), 0644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("Unexpected content %q", data)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the output file, found %d entries", len(entries))
	}
}

func TestWriteFileAtomicOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	if err := WriteFileAtomic(path, []byte("new"), 0644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("Expected overwritten content, got %q", data)
	}
}

func TestGetUsername(t *testing.T) {
	username, err := GetUsername()
	if err != nil {
		t.Skipf("GetUsername unavailable: %v", err)
	}
	if username == "" {
		t.Error("GetUsername returned empty string")
	}
}

func TestGetHostname(t *testing.T) {
	hostname, err := GetHostname()
	if err != nil {
		t.Skipf("GetHostname unavailable: %v", err)
	}
	if hostname == "" {
		t.Error("GetHostname returned empty string")
	}
}
