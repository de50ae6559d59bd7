// Package pkg provides the libraries behind geoquick, which assigns plot
// styles (color, marker symbol, size) to groups of geochemical samples.
//
// # Overview
//
//  1. [dataset] - tabular data: CSV/TSV/XLSX files, Google Sheets, filters
//  2. [style] - style maps, the base style table, palettes, inheritance, editing
//  3. [binning] - equal-width and manual binning of numeric columns
//  4. [io] - the flat JSON style document (export and import)
//  5. [pipeline] - orchestration (load → group → style → import/export)
//  6. [config] - the TOML configuration file
//
// Supporting packages: [errors], [httputil], [observability] and [buildinfo].
//
// # Data Flow
//
//	CSV / XLSX / Google Sheet
//	         ↓
//	    [dataset] (load, add type|location column)
//	         ↓
//	    [style] Build (base maps per type and location)
//	         ↓
//	    [binning] (numeric groupings)
//	         ↓
//	    [style] Derive (maps for the active groups)
//	         ↓
//	    [io] (style document)
//
// # Quick Start
//
//	ds, err := dataset.Open("samples.csv")
//	if err != nil {
//	    return err
//	}
//	opts := style.DefaultOptions()
//	ds, _ = style.WithCompound(ds, opts)
//	base, err := style.Build(ds, opts)
//	if err != nil {
//	    return err
//	}
//	maps, err := style.Derive(ds, "Location", base, opts)
//	if err != nil {
//	    return err
//	}
//	return io.ExportJSON(io.FromMaps(maps, nil, false), "style.json")
package pkg
