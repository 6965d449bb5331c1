package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestPreconditionErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("encrypt: %w", &PreconditionError{Name: "SITE_PASSWORD", Err: ErrPasswordMissing})

	if !errors.Is(err, ErrPasswordMissing) {
		t.Errorf("expected errors.Is(err, ErrPasswordMissing) to be true")
	}

	var pre *PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("expected errors.As to find PreconditionError")
	}
	if pre.Name != "SITE_PASSWORD" {
		t.Errorf("Name = %q, want %q", pre.Name, "SITE_PASSWORD")
	}
}

func TestPreconditionErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *PreconditionError
		want string
	}{
		{"without hint", &PreconditionError{Name: "dist", Err: ErrInputDirMissing}, "input directory not found: dist"},
		{"with hint", &PreconditionError{Name: "dist", Hint: "build the site first", Err: ErrInputDirMissing}, "input directory not found: dist (build the site first)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnreadableFileError(t *testing.T) {
	err := &UnreadableFileError{Path: "assets/app.js", Err: fs.ErrPermission}

	if !errors.Is(err, ErrUnreadableFile) {
		t.Errorf("expected errors.Is(err, ErrUnreadableFile) to be true")
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("expected underlying error to be reachable")
	}
	if !strings.Contains(err.Error(), "assets/app.js") {
		t.Errorf("message should name the file, got %q", err.Error())
	}
}
