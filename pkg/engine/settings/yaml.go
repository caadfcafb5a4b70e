package settings

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLFile is a Store backed by a flat YAML mapping.
type YAMLFile struct {
	path   string
	values map[string]string
	dirty  bool
}

// OpenYAML loads path. A missing file is an empty store.
func OpenYAML(path string) (*YAMLFile, error) {
	f := &YAMLFile{path: path, values: make(map[string]string)}
	data, err := readOptional(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	if len(data) == 0 {
		return f, nil
	}
	if err := yaml.Unmarshal(data, &f.values); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if f.values == nil {
		f.values = make(map[string]string)
	}
	return f, nil
}

func (f *YAMLFile) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f *YAMLFile) Set(key, value string) {
	if cur, ok := f.values[key]; ok && cur == value {
		return
	}
	f.values[key] = value
	f.dirty = true
}

// Flush writes the file when something changed since the last flush.
func (f *YAMLFile) Flush() error {
	if !f.dirty {
		return nil
	}
	data, err := yaml.Marshal(f.values)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := writeAtomic(f.path, data); err != nil {
		return fmt.Errorf("write settings %s: %w", f.path, err)
	}
	f.dirty = false
	return nil
}
