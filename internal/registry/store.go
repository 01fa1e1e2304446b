package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Store handles durable load/save of the registry document. The backing
// file is shared with other local processes in other languages, so it is
// always read and written whole.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the registry document. If the file does not exist yet it is
// created with an empty document and persisted immediately. A malformed
// file is an error; no auto-repair is attempted.
func (s *Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		doc := NewDocument()
		if err := s.Save(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse registry file %s: %w", s.path, err)
	}
	if doc.RegisteredPorts == nil {
		doc.RegisteredPorts = make(map[int]PortRegistration)
	}

	return &doc, nil
}

// Save serializes the full document and replaces the backing file. The
// write goes to a temp file in the same directory followed by a rename, so
// a crash mid-write leaves the previous contents intact.
func (s *Store) Save(doc *Document) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize registry: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".port-registry-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write registry file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace registry file: %w", err)
	}

	return nil
}

// WithLock runs fn while holding an advisory lock on the registry. The lock
// covers the whole load-mutate-save cycle so two participating processes
// cannot interleave their writes. Processes that touch the file without
// going through this package are still unprotected.
func (s *Store) WithLock(fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock registry: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	return fn()
}
