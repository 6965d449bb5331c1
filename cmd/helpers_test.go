package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/sitelock/internal/envelope"
)

// setupSiteProject creates a temp project with a built site in dist/,
// changes into it and returns its path.
func setupSiteProject(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	setupTestEnvironment(t, tempDir)
	SetCipher(&envelope.Cipher{Iterations: 1000})

	files := map[string][]byte{
		"dist/index.html": []byte(`<html><head><script src="./app.js"></script></head><body><img src="/logo.png"></body></html>`),
		"dist/app.js":     []byte("console.log('hi')"),
		"dist/logo.png":   {0x89, 'P', 'N', 'G', 0, 1, 2},
		"dist/app.js.map": []byte("{}"),
	}
	for name, data := range files {
		writeTestFile(t, filepath.Join(tempDir, name), data)
	}

	return tempDir
}

func writeTestFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
