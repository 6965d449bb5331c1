package workflows

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/sitelock/internal/envelope"
)

const testPasswordEnv = "SITELOCK_TEST_PASSWORD"

func testCipher() *envelope.Cipher {
	return &envelope.Cipher{Iterations: 1000}
}

// writeSite creates a small built site and returns its directory.
func writeSite(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "dist")
	files := map[string][]byte{
		"index.html":       []byte(`<html><head><script src="./app.js"></script></head><body><img src="/img/logo.png"></body></html>`),
		"app.js":           []byte("console.log('hi')"),
		"img/logo.png":     {0x89, 'P', 'N', 'G', 0, 1, 2, 3},
		"app.js.map":       []byte("{}"),
		"fonts/body.woff2": {0, 1, 2},
	}

	for name, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	return dir
}

// buildArtifact encrypts a fresh site with password and returns the artifact path.
func buildArtifact(t *testing.T, password string) string {
	t.Helper()
	t.Setenv(testPasswordEnv, password)

	output := filepath.Join(t.TempDir(), "encrypted", "index.html")
	_, err := Encrypt(context.Background(), EncryptOptions{
		Input:       writeSite(t),
		Output:      output,
		PasswordEnv: testPasswordEnv,
		Cipher:      testCipher(),
	})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	return output
}
