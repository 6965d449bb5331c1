package site

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
)

// IndexPath is the entry document of every site.
const IndexPath = "index.html"

// Kind tells how a record's content is encoded.
type Kind string

const (
	KindText   Kind = "text"
	KindBinary Kind = "binary"
)

// Record is one file of the site.
type Record struct {
	Path    string `json:"-"`
	Kind    Kind   `json:"type"`
	Content string `json:"content"`
}

// TextRecord builds a text record.
func TextRecord(path, content string) Record {
	return Record{Path: path, Kind: KindText, Content: content}
}

// BinaryRecord builds a binary record, base64-encoding data.
func BinaryRecord(path string, data []byte) Record {
	return Record{Path: path, Kind: KindBinary, Content: base64.StdEncoding.EncodeToString(data)}
}

// Bytes returns the raw file content.
func (r Record) Bytes() ([]byte, error) {
	switch r.Kind {
	case KindText:
		return []byte(r.Content), nil
	case KindBinary:
		data, err := base64.StdEncoding.DecodeString(r.Content)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", r.Path, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown record type %q for %s", r.Kind, r.Path)
	}
}

// FileMap maps a relative path to its record.
type FileMap map[string]Record

// Add inserts r keyed by its path.
func (m FileMap) Add(r Record) {
	m[r.Path] = r
}

// Paths returns the keys in sorted order.
func (m FileMap) Paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Index returns the index.html record if present and textual.
func (m FileMap) Index() (Record, bool) {
	r, ok := m[IndexPath]
	if !ok || r.Kind != KindText {
		return Record{}, false
	}
	return r, true
}

// Marshal serializes the map into the payload format.
func (m FileMap) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// ParsePayload is the inverse of Marshal. Records get their Path filled in
// from the map key. Unknown kinds and binary content that is not valid
// base64 are rejected, so a parsed map can always be rehydrated.
func ParsePayload(data []byte) (FileMap, error) {
	var m FileMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("parsing payload: not an object")
	}
	for path, r := range m {
		if r.Kind != KindText && r.Kind != KindBinary {
			return nil, fmt.Errorf("parsing payload: unknown record type %q for %s", r.Kind, path)
		}
		r.Path = path
		if r.Kind == KindBinary {
			if _, err := r.Bytes(); err != nil {
				return nil, fmt.Errorf("parsing payload: %w", err)
			}
		}
		m[path] = r
	}
	return m, nil
}
