// Package settings persists key bindings and pointer sensitivity in a
// string-keyed store.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoPath is returned when a file store is flushed without a path.
	ErrNoPath = errors.New("settings store has no path")
	// ErrUnknownFormat is returned by Open for unsupported file extensions.
	ErrUnknownFormat = errors.New("unknown settings format")
)

// Store is a flat string key/value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	// Flush persists pending writes.
	Flush() error
}

// Memory is an in-process Store.
type Memory struct {
	values map[string]string
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key, value string) {
	m.values[key] = value
}

func (m *Memory) Flush() error {
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	return len(m.values)
}

// Open returns the file store matching the extension of path: .yaml/.yml or
// .json. A missing file yields an empty store that is created on Flush.
func Open(path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return OpenYAML(path)
	case ".json":
		return OpenJSON(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// readOptional returns the file contents, or nil when it does not exist.
func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// writeAtomic replaces path with data via a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	if path == "" {
		return ErrNoPath
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
