package binning

import (
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/matzehuels/geoquick/pkg/dataset"
	"github.com/matzehuels/geoquick/pkg/errors"
)

// Mode selects how interval edges are chosen.
type Mode string

// Binning modes.
const (
	EqualWidth Mode = "equal-width"
	Manual     Mode = "manual"
)

// Limits on the equal-width bin count.
const (
	MinBins     = 2
	MaxBins     = 15
	DefaultBins = 4
)

// Suffix is appended to a column name to name its binned column.
const Suffix = "_bin"

// LabelSep joins the two edges of an interval label.
const LabelSep = "–"

// ParseMode parses a mode name. The empty string selects [EqualWidth].
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", EqualWidth, "equal", "equal_width":
		return EqualWidth, nil
	case Manual:
		return Manual, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown binning mode %q (want equal-width or manual)", s)
}

// Params are the mode-specific inputs of [Bin].
type Params struct {
	// Bins is the interval count for EqualWidth, 2 through 15.
	Bins int

	// Edges is the comma-separated edge list for Manual.
	Edges string
}

// Result describes one binning of a column.
type Result struct {
	// Column names the new categorical column in Dataset.
	Column string

	// Labels are the interval labels in ascending order.
	Labels []string

	// Edges are the interval boundaries; len(Edges) == len(Labels)+1.
	Edges []float64

	// Counts holds the number of rows in each interval.
	Counts []int

	// Unassigned counts rows outside every interval or missing a value.
	Unassigned int

	// Dataset is the input with Column added or replaced.
	Dataset *dataset.Dataset
}

// ColumnName returns the binned column name for col.
func ColumnName(col string) string { return col + Suffix }

// Bin splits the numeric column col of ds into labeled intervals.
//
// A categorical col is rejected with [errors.ErrCodeNotNumeric] so callers
// can skip binning. Bad bin counts and edge lists are rejected with
// [errors.ErrCodeInvalidBinCount] and [errors.ErrCodeInvalidBinEdges].
// The input dataset is never modified.
func Bin(ds *dataset.Dataset, col string, mode Mode, p Params) (*Result, error) {
	if !ds.Has(col) {
		return nil, errors.New(errors.ErrCodeColumnNotFound, "column %q not found", col)
	}
	values, err := ds.Floats(col)
	if err != nil {
		return nil, err
	}

	var edges []float64
	var labels []string
	switch mode {
	case EqualWidth, "":
		edges, err = equalWidthEdges(values, p.Bins)
		if err != nil {
			return nil, err
		}
		labels = equalWidthLabels(edges)
	case Manual:
		edges, err = ParseEdges(p.Edges)
		if err != nil {
			return nil, err
		}
		labels = make([]string, len(edges)-1)
		for i := range labels {
			labels[i] = Label(edges[i], edges[i+1])
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown binning mode %q", mode)
	}

	assigned, idx := Assign(values, edges, labels)
	res := &Result{
		Column: ColumnName(col),
		Labels: labels,
		Edges:  edges,
		Counts: make([]int, len(labels)),
	}
	for _, j := range idx {
		if j < 0 {
			res.Unassigned++
			continue
		}
		res.Counts[j]++
	}
	res.Dataset, err = ds.WithColumn(res.Column, assigned)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func equalWidthEdges(values []float64, k int) ([]float64, error) {
	if k == 0 {
		k = DefaultBins
	}
	if k < MinBins || k > MaxBins {
		return nil, errors.New(errors.ErrCodeInvalidBinCount, "bin count %d out of range [%d, %d]", k, MinBins, MaxBins)
	}
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "column has no values to bin")
	}

	lo, hi := stats.Bounds(present)
	if lo == hi {
		pad := 0.001 * math.Abs(lo)
		if lo == 0 {
			pad = 0.001
		}
		lo, hi = lo-pad, hi+pad
	}
	edges := vec.Linspace(lo, hi, k+1)
	edges[0], edges[k] = lo, hi
	return edges, nil
}

// ParseEdges parses a comma-separated list of interval edges. Blank items
// are skipped. At least two edges are required and they must increase.
func ParseEdges(s string) ([]float64, error) {
	var edges []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(part, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errors.New(errors.ErrCodeInvalidBinEdges, "bin edge %q is not a number", part)
		}
		edges = append(edges, f)
	}
	if len(edges) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidBinEdges, "need at least two bin edges, got %d", len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return nil, errors.New(errors.ErrCodeInvalidBinEdges, "bin edges must increase (%v after %v)", edges[i], edges[i-1])
		}
	}
	return edges, nil
}

// DefaultEdges returns the edge text a manual binning starts from: the
// minimum and maximum of col with two decimals.
func DefaultEdges(ds *dataset.Dataset, col string) (string, error) {
	values, err := ds.Floats(col)
	if err != nil {
		return "", err
	}
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "column %q has no values", col)
	}
	lo, hi := stats.Bounds(present)
	return strconv.FormatFloat(lo, 'f', 2, 64) + "," + strconv.FormatFloat(hi, 'f', 2, 64), nil
}

// Assign maps each value to the label of the interval containing it.
// Intervals are (edges[i], edges[i+1]], and the first also contains
// edges[0]. Values outside the edges and NaN get "" and index -1.
func Assign(values, edges []float64, labels []string) ([]string, []int) {
	out := make([]string, len(values))
	idx := make([]int, len(values))
	for i, v := range values {
		j := interval(v, edges)
		idx[i] = j
		if j >= 0 {
			out[i] = labels[j]
		}
	}
	return out, idx
}

func interval(v float64, edges []float64) int {
	n := len(edges) - 1
	if n < 1 || math.IsNaN(v) || v < edges[0] || v > edges[n] {
		return -1
	}
	if v == edges[0] {
		return 0
	}
	for j := range n {
		if v > edges[j] && v <= edges[j+1] {
			return j
		}
	}
	return -1
}

// Label renders an interval label such as "0.0–5.0". Edges print as the
// shortest decimal that round-trips, always with a fractional part.
func Label(left, right float64) string {
	return formatEdge(left) + LabelSep + formatEdge(right)
}

func formatEdge(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// labelDigits is the edge precision of equal-width labels. Narrow ranges
// get more digits, up to maxLabelDigits, so every label stays distinct.
const (
	labelDigits    = 2
	maxLabelDigits = 12
)

// equalWidthLabels labels the intervals of edges, rounding the edges to the
// fewest digits (at least two) that keep them strictly increasing.
func equalWidthLabels(edges []float64) []string {
	rounded := edges
	for d := labelDigits; d <= maxLabelDigits; d++ {
		if r := roundEdges(edges, d); increasing(r) {
			rounded = r
			break
		}
	}
	labels := make([]string, len(edges)-1)
	for i := range labels {
		labels[i] = Label(rounded[i], rounded[i+1])
	}
	return labels
}

func roundEdges(edges []float64, digits int) []float64 {
	scale := math.Pow10(digits)
	out := make([]float64, len(edges))
	for i, e := range edges {
		r := math.Round(e*scale) / scale
		if r == 0 {
			r = 0 // no "-0.0"
		}
		out[i] = r
	}
	return out
}

func increasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return false
		}
	}
	return true
}
