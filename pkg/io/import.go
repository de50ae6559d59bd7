package io

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/matzehuels/geoquick/pkg/errors"
	"github.com/matzehuels/geoquick/pkg/style"
)

// record mirrors style.Record with a float size, since documents written
// by other tools may carry sizes like 12.0.
type record struct {
	Color        *string  `json:"color"`
	Symbol       *string  `json:"symbol"`
	Size         *float64 `json:"size"`
	Opacity      *float64 `json:"opacity"`
	OutlineColor *string  `json:"outline_color"`
	OutlineWidth *float64 `json:"outline_width"`
}

// ReadJSON decodes and validates a style document from r.
//
// The document must be a JSON object whose values are objects. Colors must
// be "#rrggbb", symbols must be in the marker vocabulary, sizes positive,
// opacity within [0, 1] and outline widths non-negative. Unknown fields are
// ignored. Any violation is reported as ErrCodeInvalidStyleDocument.
func ReadJSON(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStyleDocument, err, "read style document")
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStyleDocument, err, "style document must be a JSON object of objects")
	}
	if top == nil {
		return nil, errors.New(errors.ErrCodeInvalidStyleDocument, "style document is null")
	}

	doc := make(Document, len(top))
	for key, raw := range top {
		if err := errors.ValidateGroupKey(key); err != nil {
			return nil, err
		}
		rec, err := decodeRecord(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidStyleDocument, err, "group %q", key)
		}
		doc[key] = rec
	}
	return doc, nil
}

func decodeRecord(raw json.RawMessage) (style.Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return style.Record{}, errors.New(errors.ErrCodeInvalidStyleDocument, "value must be an object")
	}
	var in record
	if err := json.Unmarshal(trimmed, &in); err != nil {
		return style.Record{}, err
	}

	var out style.Record
	if in.Color != nil {
		c := style.NormalizeHex(*in.Color)
		if !style.ValidHex(c) {
			return out, errors.New(errors.ErrCodeInvalidStyleDocument, "invalid color %q", *in.Color)
		}
		out.Color = &c
	}
	if in.Symbol != nil {
		if !style.IsSymbol(*in.Symbol) {
			return out, errors.New(errors.ErrCodeInvalidStyleDocument, "unknown symbol %q", *in.Symbol)
		}
		out.Symbol = in.Symbol
	}
	if in.Size != nil {
		size := int(math.Round(*in.Size))
		if size <= 0 {
			return out, errors.New(errors.ErrCodeInvalidStyleDocument, "size must be positive, got %v", *in.Size)
		}
		out.Size = &size
	}
	if in.Opacity != nil {
		if *in.Opacity < 0 || *in.Opacity > 1 {
			return out, errors.New(errors.ErrCodeInvalidStyleDocument, "opacity %v out of range [0, 1]", *in.Opacity)
		}
		out.Opacity = in.Opacity
	}
	if in.OutlineColor != nil {
		c := style.NormalizeHex(*in.OutlineColor)
		if !style.ValidHex(c) {
			return out, errors.New(errors.ErrCodeInvalidStyleDocument, "invalid outline color %q", *in.OutlineColor)
		}
		out.OutlineColor = &c
	}
	if in.OutlineWidth != nil {
		if *in.OutlineWidth < 0 {
			return out, errors.New(errors.ErrCodeInvalidStyleDocument, "outline width must not be negative, got %v", *in.OutlineWidth)
		}
		out.OutlineWidth = in.OutlineWidth
	}
	return out, nil
}

// ImportJSON reads the style document at path.
func ImportJSON(path string) (Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStyleDocument, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// Apply returns a copy of m patched with doc. Only fields present in the
// document are written; see the package documentation for key handling.
func Apply(m *style.Maps, doc Document, compound bool) *style.Maps {
	out := m.Clone()
	for key, rec := range doc {
		out.Apply(key, style.SubKey(key, compound), rec)
	}
	return out
}

// Import reads a document from r and applies it to a copy of m. On error
// the returned maps are nil and m is untouched.
func Import(r io.Reader, m *style.Maps, compound bool) (*style.Maps, Document, error) {
	doc, err := ReadJSON(r)
	if err != nil {
		return nil, nil, err
	}
	return Apply(m, doc, compound), doc, nil
}
