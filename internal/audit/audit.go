package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/sitelock/internal/utils"
	"github.com/google/uuid"
)

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	BuildID   string `json:"build_id"`
	User      string `json:"user"`
	Operation string `json:"op"`

	// Optional fields depending on operation.
	Input      string `json:"input,omitempty"`       // For encrypt.
	Output     string `json:"output,omitempty"`      // For encrypt/publish.
	FilesCount int    `json:"files_count,omitempty"` // For encrypt.
	Bytes      int64  `json:"bytes,omitempty"`       // Artifact size.
	Target     string `json:"target,omitempty"`      // For publish, e.g. s3://bucket/key.
}

// NewEntry returns an entry for op with the timestamp, a fresh build ID and
// the current user filled in.
func NewEntry(op string) Entry {
	entry := Entry{
		Timestamp: time.Now().UTC().Format(timestampLayout),
		BuildID:   uuid.NewString(),
		Operation: op,
	}

	if username, err := utils.GetUsername(); err == nil {
		entry.User = username
	}

	return entry
}

// Log appends an entry to the audit log at path. An empty path disables
// logging. Callers treat the returned error as a warning: a build never
// fails because its audit record could not be written.
func Log(path string, entry Entry) error {
	if path == "" {
		return nil
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(timestampLayout)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	// #nosec G306 -- the log holds no secrets.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	_, err = f.Write(append(data, '\n'))
	return err
}

// ReadEntries reads all entries from the audit log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
