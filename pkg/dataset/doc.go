// Package dataset holds the in-memory sample table the style engine reads.
//
// A [Dataset] wraps a go-gg [table.Table] whose columns are either
// categorical ([]string, "" marks a missing value) or numeric ([]float64,
// NaN marks a missing value). The style engine needs only a handful of
// capabilities from it: enumerate the distinct values of a named column,
// test whether a column is numeric, read a single cell, and derive a new
// dataset with an added column or a subset of rows. Datasets are immutable;
// every derivation returns a new value so a failed operation never disturbs
// the caller's state.
//
// # Ingestion
//
// [Open] reads CSV (.csv), tab-separated (.txt, .tsv) and Excel (.xlsx)
// files. [Fetcher] downloads CSV over HTTP, rewriting Google Sheets share
// links to their CSV export endpoint and caching responses on disk.
//
// A column is numeric when every non-missing cell parses as a float.
// Empty cells and the tokens NA, N/A, NaN, nan and null are missing.
//
// # Filters
//
// [ParseFilter] and [Dataset.Apply] implement the row filters of the
// sidebar filter bar: "SiO2 >= 45", "type != OIB".
//
// [table.Table]: https://pkg.go.dev/github.com/aclements/go-gg/table#Table
package dataset
