package kv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
)

// File is a Store persisted as a single JSON object on disk.
//
// The whole file is loaded once on open and rewritten on every change through a
// temporary file renamed over the original, so a crash never leaves a truncated file.
type File struct {
	mu   sync.Mutex
	path string
	m    map[string]string
}

// OpenFile opens the store at path. A missing file is an empty store; it is created
// on the first write.
func OpenFile(path string) (*File, error) {
	s := &File{path: path, m: make(map[string]string)}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store %q: %w", path, err)
	}
	if len(b) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(b, &s.m); err != nil {
		return nil, fmt.Errorf("decoding store %q: %w", path, err)
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *File) Path() string { return s.path }

func (s *File) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		return "", false, ErrClosed
	}
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *File) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		return ErrClosed
	}
	old, existed := s.m[key]
	s.m[key] = value
	if err := s.flush(); err != nil {
		// keep memory and disk in agreement
		if existed {
			s.m[key] = old
		} else {
			delete(s.m, key)
		}
		return err
	}
	return nil
}

func (s *File) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		return ErrClosed
	}
	old, existed := s.m[key]
	if !existed {
		return nil
	}
	delete(s.m, key)
	if err := s.flush(); err != nil {
		s.m[key] = old
		return err
	}
	return nil
}

// Close releases the store. Further calls fail with ErrClosed.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = nil
	return nil
}

// flush must be called with mu held.
func (s *File) flush() error {
	b, err := json.MarshalIndent(s.m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary store file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing store %q: %w", s.path, err)
	}
	return nil
}
