// Package kv provides the key-value collaborator the ledger and the knowledge base
// persist through. Values are opaque strings, in practice JSON documents, mirroring
// the browser local storage the application state historically lived in.
package kv

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// Store is a synchronous string key-value store.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("kv: store is closed")

// GetJSON decodes the JSON value stored under key into v.
// It returns false, with v untouched, when the key is absent.
func GetJSON(s Store, key string, v any) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("decoding %q: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v as JSON and stores it under key.
func SetJSON(s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	return s.Set(key, string(b))
}
