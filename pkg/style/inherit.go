package style

import (
	"github.com/matzehuels/geoquick/pkg/dataset"
	"github.com/matzehuels/geoquick/pkg/errors"
)

// Derive re-keys base for the groups of column group.
//
// Grouping by [CompoundColumn] returns a copy of base. When ds has the type
// and location columns, each group takes the color of its first row's
// compound key and the symbol and size of that row's type, falling back to
// opts.Defaults. Otherwise the groups are styled with [Generate] and all get
// Defaults.FreshSize.
//
// A column with no non-missing values yields empty maps.
func Derive(ds *dataset.Dataset, group string, base *Maps, opts Options) (*Maps, error) {
	opts = opts.normalize()
	if !ds.Has(group) {
		return nil, errors.New(errors.ErrCodeColumnNotFound, "group column %q not found", group)
	}
	if group == CompoundColumn {
		return base.Clone(), nil
	}

	groups, err := ds.Distinct(group)
	if err != nil {
		return nil, err
	}
	m := NewMaps()
	if len(groups) == 0 {
		return m, nil
	}

	if !IsReference(ds, opts) {
		colors, symbols := Generate(groups)
		m.Colors, m.Symbols = colors, symbols
		for _, g := range groups {
			m.Sizes[g] = opts.Defaults.FreshSize
		}
		return m, nil
	}

	if base == nil {
		base = NewMaps()
	}
	d := opts.Defaults
	for _, g := range groups {
		row := ds.FirstRow(group, g)
		t := ds.Value(opts.TypeColumn, row)
		l := ds.Value(opts.LocationColumn, row)

		m.Colors[g] = lookup(base.Colors, CompoundKey(t, l), d.Color)
		m.Symbols[g] = lookup(base.Symbols, t, d.Symbol)
		m.Sizes[g] = lookup(base.Sizes, t, d.Size)
	}
	return m, nil
}

func lookup[V any](m map[string]V, key string, def V) V {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}
