package style

import (
	"maps"
	"slices"

	"github.com/matzehuels/geoquick/pkg/errors"
)

// Seed is the starting style of a type: its marker, the base color that
// locations are shaded from, and its marker size.
type Seed struct {
	Symbol    string
	BaseColor string
	Size      int
}

// BaseTable maps recognized type names to seeds. It is immutable once
// created; lookups are exact and case-sensitive.
type BaseTable struct {
	seeds map[string]Seed
}

var builtinSeeds = map[string]Seed{
	"MORB":      {Symbol: "circle", BaseColor: "#444444", Size: 15},
	"OIB":       {Symbol: "square", BaseColor: "#0060ff", Size: 20},
	"sediments": {Symbol: "triangle-down", BaseColor: "#ffd000", Size: 20},
	"arc":       {Symbol: "triangle-up", BaseColor: "#00c83e", Size: 20},
	"Deccan":    {Symbol: "cross", BaseColor: "#ff0000", Size: 30},
}

// DefaultBaseTable returns the built-in table of tectono-magmatic types.
func DefaultBaseTable() *BaseTable {
	return &BaseTable{seeds: builtinSeeds}
}

// NewBaseTable returns the built-in table extended with extra. Entries in
// extra replace built-in entries of the same name.
func NewBaseTable(extra map[string]Seed) (*BaseTable, error) {
	seeds := maps.Clone(builtinSeeds)
	for name, s := range extra {
		if name == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "base style entry has no name")
		}
		if err := s.validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "base style %q", name)
		}
		s.BaseColor = NormalizeHex(s.BaseColor)
		seeds[name] = s
	}
	return &BaseTable{seeds: seeds}, nil
}

func (s Seed) validate() error {
	if !IsSymbol(s.Symbol) {
		return errors.New(errors.ErrCodeInvalidStyle, "unknown symbol %q", s.Symbol)
	}
	if !ValidHex(s.BaseColor) {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid color %q", s.BaseColor)
	}
	if s.Size <= 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "size must be positive, got %d", s.Size)
	}
	return nil
}

// Lookup returns the seed for name.
func (t *BaseTable) Lookup(name string) (Seed, bool) {
	s, ok := t.seeds[name]
	return s, ok
}

// Names returns the recognized type names in sorted order.
func (t *BaseTable) Names() []string {
	return slices.Sorted(maps.Keys(t.seeds))
}

// Len returns the number of entries.
func (t *BaseTable) Len() int { return len(t.seeds) }
