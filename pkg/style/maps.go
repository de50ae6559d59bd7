package style

import (
	"maps"
	"slices"
	"strings"
)

// KeySep separates the parts of compound and nested group keys.
const KeySep = "|"

// CompoundKey joins a type and a location into a compound key.
func CompoundKey(typ, loc string) string {
	return typ + KeySep + loc
}

// SubKey returns the key under which symbols and sizes of key are stored.
// For compound keys that is the type before the first separator; otherwise
// it is key itself.
func SubKey(key string, compound bool) string {
	if !compound {
		return key
	}
	head, _, _ := strings.Cut(key, KeySep)
	return head
}

// Maps holds the style attributes of every known group.
//
// Colors, Opacity and the outline maps are keyed by full group key. Symbols
// and Sizes are keyed by type when the maps come from [Build], and by full
// group key otherwise.
type Maps struct {
	Colors        map[string]string
	Symbols       map[string]string
	Sizes         map[string]int
	Opacity       map[string]float64
	OutlineColors map[string]string
	OutlineWidths map[string]float64
}

// NewMaps returns empty, non-nil maps.
func NewMaps() *Maps {
	return &Maps{
		Colors:        map[string]string{},
		Symbols:       map[string]string{},
		Sizes:         map[string]int{},
		Opacity:       map[string]float64{},
		OutlineColors: map[string]string{},
		OutlineWidths: map[string]float64{},
	}
}

// Clone returns a deep copy of m.
func (m *Maps) Clone() *Maps {
	if m == nil {
		return NewMaps()
	}
	c := NewMaps()
	maps.Copy(c.Colors, m.Colors)
	maps.Copy(c.Symbols, m.Symbols)
	maps.Copy(c.Sizes, m.Sizes)
	maps.Copy(c.Opacity, m.Opacity)
	maps.Copy(c.OutlineColors, m.OutlineColors)
	maps.Copy(c.OutlineWidths, m.OutlineWidths)
	return c
}

// Equal reports whether m and o hold the same entries. Nil and empty maps
// are equal.
func (m *Maps) Equal(o *Maps) bool {
	if m == nil || o == nil {
		return m.Empty() && o.Empty()
	}
	return maps.Equal(m.Colors, o.Colors) &&
		maps.Equal(m.Symbols, o.Symbols) &&
		maps.Equal(m.Sizes, o.Sizes) &&
		maps.Equal(m.Opacity, o.Opacity) &&
		maps.Equal(m.OutlineColors, o.OutlineColors) &&
		maps.Equal(m.OutlineWidths, o.OutlineWidths)
}

// Empty reports whether m holds no entries at all.
func (m *Maps) Empty() bool {
	return m == nil || len(m.Colors)+len(m.Symbols)+len(m.Sizes)+
		len(m.Opacity)+len(m.OutlineColors)+len(m.OutlineWidths) == 0
}

// Keys returns the sorted full group keys that carry a color, opacity or
// outline entry.
func (m *Maps) Keys() []string {
	set := map[string]bool{}
	for _, src := range []map[string]string{m.Colors, m.OutlineColors} {
		for k := range src {
			set[k] = true
		}
	}
	for _, src := range []map[string]float64{m.Opacity, m.OutlineWidths} {
		for k := range src {
			set[k] = true
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// Record returns the known attributes of key. Symbol and size are read
// under sub.
func (m *Maps) Record(key, sub string) Record {
	var r Record
	if v, ok := m.Colors[key]; ok {
		r.Color = &v
	}
	if v, ok := m.Symbols[sub]; ok {
		r.Symbol = &v
	}
	if v, ok := m.Sizes[sub]; ok {
		r.Size = &v
	}
	if v, ok := m.Opacity[key]; ok {
		r.Opacity = &v
	}
	if v, ok := m.OutlineColors[key]; ok {
		r.OutlineColor = &v
	}
	if v, ok := m.OutlineWidths[key]; ok {
		r.OutlineWidth = &v
	}
	return r
}

// Apply writes the set fields of r into m. Symbol and size go under sub,
// everything else under key.
func (m *Maps) Apply(key, sub string, r Record) {
	if r.Color != nil {
		m.Colors[key] = *r.Color
	}
	if r.Symbol != nil {
		m.Symbols[sub] = *r.Symbol
	}
	if r.Size != nil {
		m.Sizes[sub] = *r.Size
	}
	if r.Opacity != nil {
		m.Opacity[key] = *r.Opacity
	}
	if r.OutlineColor != nil {
		m.OutlineColors[key] = *r.OutlineColor
	}
	if r.OutlineWidth != nil {
		m.OutlineWidths[key] = *r.OutlineWidth
	}
}

// Resolved is a complete style with every attribute filled in.
type Resolved struct {
	Color        string
	Symbol       string
	Size         int
	Opacity      float64
	OutlineColor string
	OutlineWidth float64
}

// Resolve looks up every attribute of key, substituting d for misses.
func (m *Maps) Resolve(key, sub string, d Defaults) Resolved {
	d = d.normalize()
	r := Resolved{
		Color:        d.Color,
		Symbol:       d.Symbol,
		Size:         d.Size,
		Opacity:      d.Opacity,
		OutlineColor: d.OutlineColor,
		OutlineWidth: d.OutlineWidth,
	}
	if m == nil {
		return r
	}
	if v, ok := m.Colors[key]; ok {
		r.Color = v
	}
	if v, ok := m.Symbols[sub]; ok {
		r.Symbol = v
	}
	if v, ok := m.Sizes[sub]; ok {
		r.Size = v
	}
	if v, ok := m.Opacity[key]; ok {
		r.Opacity = v
	}
	if v, ok := m.OutlineColors[key]; ok {
		r.OutlineColor = v
	}
	if v, ok := m.OutlineWidths[key]; ok {
		r.OutlineWidth = v
	}
	return r
}
