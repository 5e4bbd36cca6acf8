// Package storage provides the durable state file backing the application
// state store: a single named JSON document, read once at startup and
// overwritten on every mutation.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/store"
)

// StateFile persists store snapshots to a fixed path on disk.
type StateFile struct {
	path string
}

// NewStateFile creates a StateFile and ensures its directory exists.
func NewStateFile(path string) (*StateFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", filepath.Dir(path), err)
	}
	return &StateFile{path: path}, nil
}

// Save writes the snapshot, replacing any previous state.
func (f *StateFile) Save(snap store.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Load reads the persisted snapshot. It returns (nil, nil) when no state
// file exists yet.
func (f *StateFile) Load() (*store.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state file: %w", err)
	}
	return &snap, nil
}
