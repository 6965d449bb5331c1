package site

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/sitelock/internal/errors"
	logger "github.com/PolarWolf314/sitelock/internal/logging"
	"github.com/bmatcuk/doublestar/v4"
)

// CollectOptions configures Collect.
type CollectOptions struct {
	// Exclude holds doublestar patterns matched against the slash path
	// relative to the root, e.g. "**/*.map".
	Exclude []string

	// Log receives debug notes about skipped entries.
	Log logger.Logger
}

// Collect walks root and returns one record per regular file. Links to
// regular files are followed and stored under the link's path. Links to
// directories are not followed.
//
// Files whose extension is in TextExtensions are read as text, all others
// as base64 binary. Any read error aborts collection with an
// *errors.UnreadableFileError.
func Collect(root string, opts CollectOptions) (FileMap, error) {
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	files := make(FileMap)

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return &kerrors.UnreadableFileError{Path: path, Err: err}
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if d.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				return &kerrors.UnreadableFileError{Path: rel, Err: err}
			}
			if !info.Mode().IsRegular() {
				opts.Log.Debugf("Skipping link %s: target is not a regular file", rel)
				return nil
			}
		} else if !d.Type().IsRegular() {
			opts.Log.Debugf("Skipping %s: not a regular file", rel)
			return nil
		}

		if excluded(rel, opts.Exclude) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return &kerrors.UnreadableFileError{Path: rel, Err: err}
		}

		if IsText(rel) {
			files.Add(TextRecord(rel, string(data)))
		} else {
			files.Add(BinaryRecord(rel, data))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
