package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteTree writes every record of files under dir, creating
// subdirectories as needed. Paths that would land outside dir are refused.
func WriteTree(dir string, files FileMap) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}

	for _, p := range files.Paths() {
		target := filepath.Join(root, filepath.FromSlash(p))
		if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
			return fmt.Errorf("refusing to write %q outside %s", p, dir)
		}

		data, err := files[p].Bytes()
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", p, err)
		}
		// #nosec G306 -- extracted site files are meant to be served
		if err := os.WriteFile(target, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", p, err)
		}
	}

	return nil
}
