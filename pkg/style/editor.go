package style

import (
	"math"

	"github.com/matzehuels/geoquick/pkg/errors"
)

// Editor limits.
const (
	MinSize         = 2
	MaxSize         = 80
	MaxOutlineWidth = 6.0
)

// Editor applies single-key user edits to a set of maps.
//
// When compound is set, keys are compound keys and symbol and size writes
// go to the type part of the key, so every location of a type changes
// together. Invalid values are rejected and leave the maps unchanged.
type Editor struct {
	maps     *Maps
	defaults Defaults
	compound bool
}

// NewEditor returns an editor writing into m.
func NewEditor(m *Maps, d Defaults, compound bool) *Editor {
	if m == nil {
		m = NewMaps()
	}
	return &Editor{maps: m, defaults: d.normalize(), compound: compound}
}

// Maps returns the maps being edited.
func (e *Editor) Maps() *Maps { return e.maps }

// SubKey returns the key symbol and size writes for key go to.
func (e *Editor) SubKey(key string) string { return SubKey(key, e.compound) }

// Open returns the current style of key. Opacity and outline attributes that
// are unset are materialized with their defaults, as opening a group's
// editor does.
func (e *Editor) Open(key string) Resolved {
	if _, ok := e.maps.Opacity[key]; !ok {
		e.maps.Opacity[key] = e.defaults.Opacity
	}
	if _, ok := e.maps.OutlineColors[key]; !ok {
		e.maps.OutlineColors[key] = e.defaults.OutlineColor
	}
	if _, ok := e.maps.OutlineWidths[key]; !ok {
		e.maps.OutlineWidths[key] = e.defaults.OutlineWidth
	}
	return e.Get(key)
}

// Get returns the current style of key without materializing anything.
func (e *Editor) Get(key string) Resolved {
	return e.maps.Resolve(key, e.SubKey(key), e.defaults)
}

// SetColor sets the marker color of key.
func (e *Editor) SetColor(key, hex string) error {
	hex = NormalizeHex(hex)
	if !ValidHex(hex) {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid color %q (want #rrggbb)", hex)
	}
	e.maps.Colors[key] = hex
	return nil
}

// SetSymbol sets the marker symbol of key.
func (e *Editor) SetSymbol(key, symbol string) error {
	if !IsSymbol(symbol) {
		return errors.New(errors.ErrCodeInvalidStyle, "unknown symbol %q", symbol)
	}
	e.maps.Symbols[e.SubKey(key)] = symbol
	return nil
}

// SetSize sets the marker size of key in pixels.
func (e *Editor) SetSize(key string, size int) error {
	if size < MinSize || size > MaxSize {
		return errors.New(errors.ErrCodeInvalidStyle, "size %d out of range [%d, %d]", size, MinSize, MaxSize)
	}
	e.maps.Sizes[e.SubKey(key)] = size
	return nil
}

// SetOpacity sets the marker opacity of key.
func (e *Editor) SetOpacity(key string, opacity float64) error {
	if math.IsNaN(opacity) || opacity < 0 || opacity > 1 {
		return errors.New(errors.ErrCodeInvalidStyle, "opacity %v out of range [0, 1]", opacity)
	}
	e.maps.Opacity[key] = opacity
	return nil
}

// SetOutlineColor sets the marker outline color of key.
func (e *Editor) SetOutlineColor(key, hex string) error {
	hex = NormalizeHex(hex)
	if !ValidHex(hex) {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid outline color %q (want #rrggbb)", hex)
	}
	e.maps.OutlineColors[key] = hex
	return nil
}

// SetOutlineWidth sets the marker outline width of key.
func (e *Editor) SetOutlineWidth(key string, width float64) error {
	if math.IsNaN(width) || width < 0 || width > MaxOutlineWidth {
		return errors.New(errors.ErrCodeInvalidStyle, "outline width %v out of range [0, %v]", width, MaxOutlineWidth)
	}
	e.maps.OutlineWidths[key] = width
	return nil
}
