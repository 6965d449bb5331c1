package unlock

import (
	"encoding/base64"
	"fmt"
	"sync"
)

// Document is the page whose content gets replaced on success.
type Document interface {
	Replace(html string)
}

// ObjectStore mints references that a document can load like URLs.
type ObjectStore interface {
	CreateObjectURL(data []byte, mimeType string) (string, error)
}

// Session is storage scoped to the browsing session.
type Session interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Form is the password form.
type Form interface {
	SetBusy(busy bool)
	ShowError(visible bool)
}

// Page bundles what the unlock logic needs from its host. Session and Form
// may be nil.
type Page struct {
	Document Document
	Objects  ObjectStore
	Session  Session
	Form     Form
}

// Capture is a Document that keeps the replacement HTML.
type Capture struct {
	mu       sync.Mutex
	html     string
	replaced bool
}

func (c *Capture) Replace(html string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.html = html
	c.replaced = true
}

// HTML returns the last replacement and whether one happened.
func (c *Capture) HTML() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.html, c.replaced
}

// MemoryObjects hands out blob-style references and keeps the bytes.
type MemoryObjects struct {
	mu      sync.Mutex
	objects map[string]Object
}

// Object is a stored asset.
type Object struct {
	Data     []byte
	MIMEType string
}

func (m *MemoryObjects) CreateObjectURL(data []byte, mimeType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects = make(map[string]Object)
	}
	url := fmt.Sprintf("blob:sitelock/%d", len(m.objects)+1)
	m.objects[url] = Object{Data: data, MIMEType: mimeType}
	return url, nil
}

// Resolve returns the object behind url.
func (m *MemoryObjects) Resolve(url string) (Object, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[url]
	return obj, ok
}

// Len returns the number of references minted so far.
func (m *MemoryObjects) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// DataURLs produces self-contained data: references, so a rehydrated
// document can be saved as one file.
type DataURLs struct{}

func (DataURLs) CreateObjectURL(data []byte, mimeType string) (string, error) {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// MemorySession is a Session backed by a map.
type MemorySession struct {
	mu     sync.Mutex
	values map[string]string
}

func (s *MemorySession) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemorySession) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
}

// FormState is a Form that records its current visual state.
type FormState struct {
	mu           sync.Mutex
	busy         bool
	errorVisible bool
}

func (f *FormState) SetBusy(busy bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = busy
}

func (f *FormState) ShowError(visible bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errorVisible = visible
}

// Busy reports whether the submit control is disabled.
func (f *FormState) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// ErrorVisible reports whether the error banner is shown.
func (f *FormState) ErrorVisible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errorVisible
}
