package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/geoquick/pkg/errors"
)

// Op is a comparison operator for row filters.
type Op string

// Supported filter operators.
const (
	OpGT Op = ">"
	OpLT Op = "<"
	OpGE Op = ">="
	OpLE Op = "<="
	OpEQ Op = "=="
	OpNE Op = "!="
)

// ops is ordered so two-character operators match before their prefixes.
var ops = []Op{OpGE, OpLE, OpEQ, OpNE, OpGT, OpLT}

// Filter keeps the rows whose Column compares true against Value.
type Filter struct {
	Column string
	Op     Op
	Value  string
}

// String renders the filter in the form ParseFilter accepts.
func (f Filter) String() string {
	return f.Column + " " + string(f.Op) + " " + f.Value
}

// ParseFilter parses an expression like "SiO2 >= 45" or "type!=OIB".
func ParseFilter(expr string) (Filter, error) {
	for _, op := range ops {
		i := strings.Index(expr, string(op))
		if i < 0 {
			continue
		}
		f := Filter{
			Column: strings.TrimSpace(expr[:i]),
			Op:     op,
			Value:  strings.TrimSpace(expr[i+len(op):]),
		}
		if f.Column == "" {
			return Filter{}, errors.New(errors.ErrCodeInvalidFilter, "filter %q has no column", expr)
		}
		return f, nil
	}
	return Filter{}, errors.New(errors.ErrCodeInvalidFilter, "filter %q has no operator (want one of > < >= <= == !=)", expr)
}

// Apply returns the rows that pass every filter.
//
// On numeric columns the value is parsed as a number and a value that does
// not parse makes that filter a no-op. On categorical columns the comparison
// is between strings. Missing cells only pass "!=".
func (d *Dataset) Apply(filters ...Filter) (*Dataset, error) {
	keep := make([]bool, d.rows)
	for i := range keep {
		keep[i] = true
	}

	for _, f := range filters {
		if !d.Has(f.Column) {
			return nil, errors.New(errors.ErrCodeColumnNotFound, "filter column %q not found", f.Column)
		}
		if d.IsNumeric(f.Column) {
			want, err := strconv.ParseFloat(f.Value, 64)
			if err != nil {
				continue
			}
			fs, _ := d.Floats(f.Column)
			for i, v := range fs {
				keep[i] = keep[i] && compareFloat(v, f.Op, want)
			}
			continue
		}
		ss, _ := d.Strings(f.Column)
		for i, v := range ss {
			keep[i] = keep[i] && compareString(v, f.Op, f.Value)
		}
	}

	rows := make([]int, 0, d.rows)
	for i, k := range keep {
		if k {
			rows = append(rows, i)
		}
	}
	if len(rows) == d.rows {
		return d, nil
	}
	return d.Select(rows), nil
}

func compareFloat(v float64, op Op, want float64) bool {
	if math.IsNaN(v) {
		return op == OpNE
	}
	switch op {
	case OpGT:
		return v > want
	case OpLT:
		return v < want
	case OpGE:
		return v >= want
	case OpLE:
		return v <= want
	case OpEQ:
		return v == want
	case OpNE:
		return v != want
	}
	return false
}

func compareString(v string, op Op, want string) bool {
	if v == "" {
		return op == OpNE
	}
	c := strings.Compare(v, want)
	switch op {
	case OpGT:
		return c > 0
	case OpLT:
		return c < 0
	case OpGE:
		return c >= 0
	case OpLE:
		return c <= 0
	case OpEQ:
		return c == 0
	case OpNE:
		return c != 0
	}
	return false
}
