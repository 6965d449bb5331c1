package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/sitelock/internal/errors"
	"github.com/PolarWolf314/sitelock/internal/utils"
)

func encryptProject(t *testing.T, password string) string {
	t.Helper()
	tempDir := setupSiteProject(t)
	t.Setenv("SITE_PASSWORD", password)

	if _, stderr, err := runCLI(t, false, false, "encrypt"); err != nil {
		t.Fatalf("encrypt failed: %v\nstderr: %s", err, stderr)
	}
	return tempDir
}

// TestDecryptCommand contains integration tests for the `sitelock decrypt` command.
func TestDecryptCommand(t *testing.T) {
	t.Run("ListsFiles", testDecryptListsFiles)
	t.Run("Extract", testDecryptExtract)
	t.Run("RehydratedOutput", testDecryptOutput)
	t.Run("BakedIterations", testDecryptBakedIterations)
	t.Run("WrongPassword", testDecryptWrongPassword)
	t.Run("NoPasswordNonInteractive", testDecryptNoPassword)
}

func testDecryptListsFiles(t *testing.T) {
	encryptProject(t, "secret")

	stdout, stderr, err := runCLI(t, false, false, "decrypt")
	if err != nil {
		t.Fatalf("Command failed: %v\nstderr: %s", err, stderr)
	}
	for _, name := range []string{"Unlocked", "index.html", "app.js", "logo.png"} {
		if !strings.Contains(stdout, name) {
			t.Errorf("Expected %q in output, got: %s", name, stdout)
		}
	}
}

func testDecryptExtract(t *testing.T) {
	tempDir := encryptProject(t, "secret")

	_, stderr, err := runCLI(t, false, false, "decrypt", "encrypted/index.html", "--extract", "restored")
	if err != nil {
		t.Fatalf("Command failed: %v\nstderr: %s", err, stderr)
	}

	for _, name := range []string{"index.html", "app.js", "logo.png", "app.js.map"} {
		want, _ := os.ReadFile(filepath.Join(tempDir, "dist", name))
		got, err := os.ReadFile(filepath.Join(tempDir, "restored", name))
		if err != nil {
			t.Errorf("%s not extracted: %v", name, err)
			continue
		}
		if !bytes.Equal(got, want) {
			t.Errorf("%s differs after round trip", name)
		}
	}
}

func testDecryptOutput(t *testing.T) {
	tempDir := encryptProject(t, "secret")

	_, stderr, err := runCLI(t, false, false, "decrypt", "--output", "unlocked.html")
	if err != nil {
		t.Fatalf("Command failed: %v\nstderr: %s", err, stderr)
	}

	html, err := os.ReadFile(filepath.Join(tempDir, "unlocked.html"))
	if err != nil {
		t.Fatalf("Output not written: %v", err)
	}
	if !strings.Contains(string(html), "data:image/png;base64,") {
		t.Errorf("Expected inlined logo, got: %s", html)
	}
}

func testDecryptBakedIterations(t *testing.T) {
	encryptProject(t, "secret")
	SetCipher(nil)

	stdout, stderr, err := runCLI(t, false, false, "decrypt")
	if err != nil {
		t.Fatalf("Artifact should open with its own constants: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(stdout, "Unlocked") {
		t.Errorf("Expected unlock summary, got: %s", stdout)
	}
}

func testDecryptWrongPassword(t *testing.T) {
	tempDir := encryptProject(t, "secret")
	t.Setenv("SITE_PASSWORD", "wrong")

	stdout, stderr, err := runCLI(t, false, false, "decrypt", "--extract", "restored")
	if !errors.Is(err, kerrors.ErrAuthentication) {
		t.Fatalf("Expected ErrAuthentication, got %v", err)
	}
	if !strings.Contains(stderr, "Incorrect password") {
		t.Errorf("Expected generic failure message, got: %s", stderr)
	}
	if strings.Contains(stdout, "index.html") {
		t.Errorf("No contents should be listed on failure, got: %s", stdout)
	}
	if fileExists(filepath.Join(tempDir, "restored")) {
		t.Error("Nothing should be extracted on failure")
	}
}

func testDecryptNoPassword(t *testing.T) {
	if utils.IsTerminal() {
		t.Skip("stdin is a terminal, decrypt would prompt")
	}
	encryptProject(t, "secret")
	t.Setenv("SITE_PASSWORD", "")

	_, _, err := runCLI(t, false, false, "decrypt")
	if !errors.Is(err, kerrors.ErrPasswordMissing) {
		t.Errorf("Expected ErrPasswordMissing when stdin is not a terminal, got %v", err)
	}
}
