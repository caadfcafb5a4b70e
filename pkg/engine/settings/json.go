package settings

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSONFile is a Store backed by a flat JSON object. Unknown fields in the
// file are preserved on Flush.
type JSONFile struct {
	path  string
	doc   []byte
	dirty bool
}

// OpenJSON loads path. A missing file is an empty store.
func OpenJSON(path string) (*JSONFile, error) {
	data, err := readOptional(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	if len(data) == 0 {
		data = []byte("{}")
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse settings %s: invalid JSON", path)
	}
	return &JSONFile{path: path, doc: data}, nil
}

func (f *JSONFile) Get(key string) (string, bool) {
	r := gjson.GetBytes(f.doc, escapePath(key))
	if !r.Exists() {
		return "", false
	}
	return r.String(), true
}

func (f *JSONFile) Set(key, value string) {
	if cur, ok := f.Get(key); ok && cur == value {
		return
	}
	doc, err := sjson.SetBytes(f.doc, escapePath(key), value)
	if err != nil {
		// only reachable with a malformed path, which escapePath rules out
		return
	}
	f.doc = doc
	f.dirty = true
}

// Flush writes the file when something changed since the last flush.
func (f *JSONFile) Flush() error {
	if !f.dirty {
		return nil
	}
	if err := writeAtomic(f.path, f.doc); err != nil {
		return fmt.Errorf("write settings %s: %w", f.path, err)
	}
	f.dirty = false
	return nil
}

var pathEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
)

// escapePath makes key a literal single-segment gjson/sjson path.
func escapePath(key string) string {
	return pathEscaper.Replace(key)
}
