// Package save is the persistence collaborator boundary: a key/value store
// of JSON documents inside a single save slot. Feature modules persist and
// restore their own state under their own key without knowing about each
// other. Absent keys yield the registered default and are never an error.
package save

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Store is the narrow contract the engine consumes.
type Store interface {
	// Initialize registers a default value for a key. The default is
	// returned by Get until Set overwrites it.
	Initialize(key string, defaultValue interface{}) error

	// Get unmarshals the value for key into out. Returns (false, nil) when
	// neither a value nor a default exists - a fresh start, not an error.
	Get(key string, out interface{}) (bool, error)

	// Set stores the value for key.
	Set(key string, value interface{}) error
}

// MemoryStore is an in-memory Store. It backs tests and serves as the base
// layer of the file store.
type MemoryStore struct {
	mu       sync.RWMutex
	values   map[string]json.RawMessage
	defaults map[string]json.RawMessage
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:   make(map[string]json.RawMessage),
		defaults: make(map[string]json.RawMessage),
	}
}

// Initialize registers a default for key.
func (s *MemoryStore) Initialize(key string, defaultValue interface{}) error {
	raw, err := json.Marshal(defaultValue)
	if err != nil {
		return fmt.Errorf("failed to marshal default for key %q: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults[key] = raw
	return nil
}

// Get reads the stored value, falling back to the registered default.
func (s *MemoryStore) Get(key string, out interface{}) (bool, error) {
	s.mu.RLock()
	raw, ok := s.values[key]
	if !ok {
		raw, ok = s.defaults[key]
	}
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal value for key %q: %w", key, err)
	}
	return true, nil
}

// Set stores the value for key.
func (s *MemoryStore) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %q: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = raw
	return nil
}

// snapshot returns a copy of the stored values (not defaults).
func (s *MemoryStore) snapshot() map[string]json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]json.RawMessage, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// load replaces the stored values wholesale.
func (s *MemoryStore) load(values map[string]json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = values
}
