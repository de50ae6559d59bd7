package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/geoquick/pkg/style"
)

// Document is a decoded style document keyed by group key.
type Document map[string]style.Record

// FromMaps builds the document for keys from m. A nil keys exports every
// key m knows. Groups with no known attribute are left out. When compound is
// set, symbols and sizes are read from each key's type.
func FromMaps(m *style.Maps, keys []string, compound bool) Document {
	if keys == nil {
		keys = m.Keys()
	}
	doc := make(Document, len(keys))
	for _, k := range keys {
		r := m.Record(k, style.SubKey(k, compound))
		if r.Empty() {
			continue
		}
		doc[k] = r
	}
	return doc
}

// WriteJSON encodes doc as indented JSON to w. Keys are written in sorted
// order so documents diff cleanly.
func WriteJSON(doc Document, w io.Writer) error {
	if doc == nil {
		doc = Document{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to a JSON file at path.
func ExportJSON(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
