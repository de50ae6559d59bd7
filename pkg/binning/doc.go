// Package binning turns numeric columns into ordered categorical groups.
//
// [Bin] splits a column into labeled intervals, either k equal-width
// intervals between the observed minimum and maximum ([EqualWidth]) or the
// intervals between user-supplied edges ([Manual]). Intervals are closed on
// the right, and the first interval also includes its left edge, so every
// value between the outer edges falls into exactly one interval.
//
// The labeled result is stored in the column "{col}_bin"; binning the same
// column again replaces it. Values outside the edges and missing values get
// no label.
//
// [Nest] combines a categorical column with a binned one into
// "{category}|{bin}" keys for grouping by both at once.
package binning
