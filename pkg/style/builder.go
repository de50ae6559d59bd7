package style

import (
	"slices"

	"github.com/matzehuels/geoquick/pkg/dataset"
)

// Build produces the base maps of ds: a color for every (type, location)
// pair present, and a symbol and size for every type.
//
// Types are visited in ascending natural order. Known types take their seed
// from opts.Base; unknown types get a procedural color, size
// [UnknownTypeSize], and a symbol not used by an earlier type unless the
// vocabulary has run out. Each location of a type is shaded from the type's
// base color with [Shade], locations sorted ascending.
//
// Locations that only occur on rows without a type get a procedural color
// under the bare location key.
func Build(ds *dataset.Dataset, opts Options) (*Maps, error) {
	opts = opts.normalize()
	types, err := ds.Strings(opts.TypeColumn)
	if err != nil {
		return nil, err
	}
	locs, err := ds.Strings(opts.LocationColumn)
	if err != nil {
		return nil, err
	}

	byType := map[string][]string{}
	placed := map[string]bool{}
	for i, t := range types {
		l := locs[i]
		if t == "" || l == "" {
			continue
		}
		if !slices.Contains(byType[t], l) {
			byType[t] = append(byType[t], l)
		}
		placed[l] = true
	}

	keys, _ := ds.Distinct(opts.TypeColumn)
	ds.SortKeys(opts.TypeColumn, keys)

	// Symbols of known types in this dataset are off limits for unknown ones.
	used := map[string]bool{}
	for _, t := range keys {
		if seed, ok := opts.Base.Lookup(t); ok {
			used[seed.Symbol] = true
		}
	}

	m := NewMaps()
	g := newGenerator()
	for _, t := range keys {
		seed, ok := opts.Base.Lookup(t)
		if !ok {
			seed = Seed{
				Symbol:    g.symbolAvoiding(used),
				BaseColor: g.color(),
				Size:      UnknownTypeSize,
			}
		}
		m.Symbols[t] = seed.Symbol
		m.Sizes[t] = seed.Size

		tl := byType[t]
		ds.SortKeys(opts.LocationColumn, tl)
		for i, l := range tl {
			m.Colors[CompoundKey(t, l)] = Shade(seed.BaseColor, i, len(tl))
		}
	}

	all, _ := ds.Distinct(opts.LocationColumn)
	for _, l := range all {
		if placed[l] {
			continue
		}
		if _, ok := m.Colors[l]; !ok {
			m.Colors[l] = g.color()
		}
	}
	return m, nil
}

// WithCompound adds the [CompoundColumn] to ds when both the type and
// location columns exist. A row's compound key is missing when either part
// is. Datasets without the two columns are returned unchanged.
func WithCompound(ds *dataset.Dataset, opts Options) (*dataset.Dataset, error) {
	opts = opts.normalize()
	if !ds.HasAll(opts.TypeColumn, opts.LocationColumn) {
		return ds, nil
	}
	types, _ := ds.Strings(opts.TypeColumn)
	locs, _ := ds.Strings(opts.LocationColumn)
	keys := make([]string, len(types))
	for i := range types {
		if types[i] != "" && locs[i] != "" {
			keys[i] = CompoundKey(types[i], locs[i])
		}
	}
	return ds.WithColumn(CompoundColumn, keys)
}

// IsReference reports whether ds carries both the type-like and the
// location-like column, which makes compound keys available.
func IsReference(ds *dataset.Dataset, opts Options) bool {
	opts = opts.normalize()
	return ds.HasAll(opts.TypeColumn, opts.LocationColumn)
}
