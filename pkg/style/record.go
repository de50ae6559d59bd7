package style

// Record is the style of one group as stored in a style document.
// A nil field is unknown and is neither exported nor applied on import.
type Record struct {
	Color        *string  `json:"color,omitempty"`
	Symbol       *string  `json:"symbol,omitempty"`
	Size         *int     `json:"size,omitempty"`
	Opacity      *float64 `json:"opacity,omitempty"`
	OutlineColor *string  `json:"outline_color,omitempty"`
	OutlineWidth *float64 `json:"outline_width,omitempty"`
}

// Empty reports whether no field of r is set.
func (r Record) Empty() bool {
	return r.Color == nil && r.Symbol == nil && r.Size == nil &&
		r.Opacity == nil && r.OutlineColor == nil && r.OutlineWidth == nil
}

// Fallback values for lookups that miss.
const (
	DefaultColor        = "#1f77b4"
	DefaultSymbol       = "circle"
	DefaultSize         = 20
	DefaultOpacity      = 0.9
	DefaultFreshSize    = 10
	DefaultOutlineColor = "#000000"
	DefaultOutlineWidth = 1.0

	// UnknownTypeSize is the marker size given to types missing from the
	// base table.
	UnknownTypeSize = 18
)

// Defaults holds the values substituted for missing style attributes.
type Defaults struct {
	Color        string
	Symbol       string
	Size         int
	Opacity      float64
	FreshSize    int // size for groups styled without type/location columns
	OutlineColor string
	OutlineWidth float64
}

// DefaultDefaults returns the built-in fallback values.
func DefaultDefaults() Defaults {
	return Defaults{
		Color:        DefaultColor,
		Symbol:       DefaultSymbol,
		Size:         DefaultSize,
		Opacity:      DefaultOpacity,
		FreshSize:    DefaultFreshSize,
		OutlineColor: DefaultOutlineColor,
		OutlineWidth: DefaultOutlineWidth,
	}
}

func (d Defaults) normalize() Defaults {
	def := DefaultDefaults()
	if d.Color == "" {
		d.Color = def.Color
	}
	if d.Symbol == "" {
		d.Symbol = def.Symbol
	}
	if d.Size <= 0 {
		d.Size = def.Size
	}
	if d.Opacity <= 0 {
		d.Opacity = def.Opacity
	}
	if d.FreshSize <= 0 {
		d.FreshSize = def.FreshSize
	}
	if d.OutlineColor == "" {
		d.OutlineColor = def.OutlineColor
	}
	if d.OutlineWidth <= 0 {
		d.OutlineWidth = def.OutlineWidth
	}
	return d
}

// Options carries the configuration for [Build] and [Derive].
type Options struct {
	// TypeColumn names the type-like column. Default: "type".
	TypeColumn string

	// LocationColumn names the location-like column. Default: "Location".
	LocationColumn string

	// Base is consulted before procedural generation. Nil means
	// [DefaultBaseTable].
	Base *BaseTable

	// Defaults fills attributes that lookups cannot resolve.
	Defaults Defaults
}

// Default column names.
const (
	DefaultTypeColumn     = "type"
	DefaultLocationColumn = "Location"

	// CompoundColumn is the derived column holding compound keys.
	CompoundColumn = "type_loc"
)

// DefaultOptions returns options with the conventional column names and
// the built-in base table.
func DefaultOptions() Options {
	return Options{}.normalize()
}

func (o Options) normalize() Options {
	if o.TypeColumn == "" {
		o.TypeColumn = DefaultTypeColumn
	}
	if o.LocationColumn == "" {
		o.LocationColumn = DefaultLocationColumn
	}
	if o.Base == nil {
		o.Base = DefaultBaseTable()
	}
	o.Defaults = o.Defaults.normalize()
	return o
}
