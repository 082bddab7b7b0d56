package save

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SlotSchemaVersion is the on-disk save slot format version. Bump when the
// slot envelope changes shape.
const SlotSchemaVersion = "1.0"

// slotFile is the on-disk envelope for one save slot.
type slotFile struct {
	Version string                     `json:"version"`
	Data    map[string]json.RawMessage `json:"data"`
}

// FileStore is a Store persisted to a single JSON save-slot file. All
// Get/Set traffic stays in memory; Flush writes the slot to disk with an
// atomic rename so a crash mid-write never corrupts the previous save.
type FileStore struct {
	*MemoryStore
	path string
}

// NewFileStore creates a file store for the given slot path and loads the
// existing slot if one exists. A missing file is a fresh start.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{
		MemoryStore: NewMemoryStore(),
		path:        path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, fmt.Errorf("failed to read save slot: %w", err)
	}

	var slot slotFile
	if err := json.Unmarshal(data, &slot); err != nil {
		return nil, fmt.Errorf("failed to parse save slot: %w", err)
	}
	if slot.Version != SlotSchemaVersion {
		return nil, fmt.Errorf("save slot version mismatch: expected %s, got %s", SlotSchemaVersion, slot.Version)
	}

	fs.load(slot.Data)
	return fs, nil
}

// Flush writes the current slot contents to disk.
func (s *FileStore) Flush() error {
	slot := slotFile{
		Version: SlotSchemaVersion,
		Data:    s.snapshot(),
	}

	data, err := json.MarshalIndent(slot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal save slot: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create save directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write save slot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace save slot: %w", err)
	}
	return nil
}
