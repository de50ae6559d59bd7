package dataset

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"

	"github.com/matzehuels/geoquick/pkg/errors"
)

// Dataset is an immutable table of samples with named columns.
type Dataset struct {
	tab  *table.Table
	rows int
}

// New wraps a go-gg table. Numeric columns of any element type are read as
// float64; every other column is read as text.
func New(tab *table.Table) *Dataset {
	if tab == nil {
		tab = new(table.Builder).Done()
	}
	return &Dataset{tab: tab, rows: tab.Len()}
}

// Table returns the underlying go-gg table.
func (d *Dataset) Table() *table.Table { return d.tab }

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.rows }

// Columns returns the column names in table order.
func (d *Dataset) Columns() []string { return d.tab.Columns() }

// Has reports whether the dataset has a column named col.
func (d *Dataset) Has(col string) bool { return d.tab.Column(col) != nil }

// HasAll reports whether every named column is present.
func (d *Dataset) HasAll(cols ...string) bool {
	for _, c := range cols {
		if !d.Has(c) {
			return false
		}
	}
	return true
}

// IsNumeric reports whether col holds numeric values.
// Missing columns are not numeric.
func (d *Dataset) IsNumeric(col string) bool {
	v := d.tab.Column(col)
	if v == nil {
		return false
	}
	return isNumericKind(reflect.TypeOf(v).Elem().Kind())
}

// NumericColumns returns the names of all numeric columns in table order.
func (d *Dataset) NumericColumns() []string {
	var out []string
	for _, c := range d.Columns() {
		if d.IsNumeric(c) {
			out = append(out, c)
		}
	}
	return out
}

// Floats returns a copy of the numeric column col. Missing values are NaN.
func (d *Dataset) Floats(col string) ([]float64, error) {
	v := d.tab.Column(col)
	if v == nil {
		return nil, errors.New(errors.ErrCodeColumnNotFound, "column %q not found", col)
	}
	if !d.IsNumeric(col) {
		return nil, errors.New(errors.ErrCodeNotNumeric, "column %q is not numeric", col)
	}
	if fs, ok := v.([]float64); ok {
		return slices.Clone(fs), nil
	}
	var fs []float64
	slice.Convert(&fs, v)
	return fs, nil
}

// Strings returns the column col rendered as text. Missing values are "".
func (d *Dataset) Strings(col string) ([]string, error) {
	v := d.tab.Column(col)
	if v == nil {
		return nil, errors.New(errors.ErrCodeColumnNotFound, "column %q not found", col)
	}
	if ss, ok := v.([]string); ok {
		return slices.Clone(ss), nil
	}
	if d.IsNumeric(col) {
		fs, err := d.Floats(col)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(fs))
		for i, f := range fs {
			out[i] = FormatValue(f)
		}
		return out, nil
	}
	rv := reflect.ValueOf(v)
	out := make([]string, rv.Len())
	for i := range out {
		out[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return out, nil
}

// Value returns the text of a single cell, or "" when the cell is missing
// or out of range.
func (d *Dataset) Value(col string, row int) string {
	if row < 0 || row >= d.rows {
		return ""
	}
	switch v := d.tab.Column(col).(type) {
	case nil:
		return ""
	case []string:
		return v[row]
	case []float64:
		return FormatValue(v[row])
	}
	ss, err := d.Strings(col)
	if err != nil {
		return ""
	}
	return ss[row]
}

// Distinct returns the non-missing values of col in order of first appearance.
func (d *Dataset) Distinct(col string) ([]string, error) {
	ss, err := d.Strings(col)
	if err != nil {
		return nil, err
	}
	uniq := slice.Nub(ss).([]string)
	out := make([]string, 0, len(uniq))
	for _, s := range uniq {
		if s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// FirstRow returns the index of the first row whose col value is value,
// or -1 when there is none.
func (d *Dataset) FirstRow(col, value string) int {
	ss, err := d.Strings(col)
	if err != nil {
		return -1
	}
	return slices.Index(ss, value)
}

// SortKeys sorts values of col in the natural order of the column type:
// numerically for numeric columns, lexically otherwise.
func (d *Dataset) SortKeys(col string, keys []string) {
	if !d.IsNumeric(col) {
		slices.Sort(keys)
		return
	}
	slices.SortStableFunc(keys, func(a, b string) int {
		fa, erra := strconv.ParseFloat(a, 64)
		fb, errb := strconv.ParseFloat(b, 64)
		if erra != nil || errb != nil {
			return strings.Compare(a, b)
		}
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	})
}

// WithColumn returns a dataset with a categorical column name set to values.
// An existing column of the same name is replaced in place, so repeated
// derivations of the same column do not accumulate.
func (d *Dataset) WithColumn(name string, values []string) (*Dataset, error) {
	if len(values) != d.rows && len(d.Columns()) > 0 {
		return nil, errors.New(errors.ErrCodeInternal, "column %q has %d values, dataset has %d rows", name, len(values), d.rows)
	}
	return d.replace(name, slices.Clone(values)), nil
}

// WithFloats is WithColumn for a numeric column.
func (d *Dataset) WithFloats(name string, values []float64) (*Dataset, error) {
	if len(values) != d.rows && len(d.Columns()) > 0 {
		return nil, errors.New(errors.ErrCodeInternal, "column %q has %d values, dataset has %d rows", name, len(values), d.rows)
	}
	return d.replace(name, slices.Clone(values)), nil
}

func (d *Dataset) replace(name string, data any) *Dataset {
	b := new(table.Builder)
	replaced := false
	for _, c := range d.Columns() {
		if c == name {
			b.Add(name, data)
			replaced = true
			continue
		}
		b.Add(c, d.tab.Column(c))
	}
	if !replaced {
		b.Add(name, data)
	}
	return New(b.Done())
}

// Select returns a dataset holding only the given rows, in the given order.
func (d *Dataset) Select(rows []int) *Dataset {
	b := new(table.Builder)
	for _, c := range d.Columns() {
		b.Add(c, slice.Select(d.tab.Column(c), rows))
	}
	return New(b.Done())
}

// DropMissing returns the rows whose col value is present.
func (d *Dataset) DropMissing(col string) (*Dataset, error) {
	ss, err := d.Strings(col)
	if err != nil {
		return nil, err
	}
	rows := make([]int, 0, len(ss))
	for i, s := range ss {
		if s != "" {
			rows = append(rows, i)
		}
	}
	if len(rows) == d.rows {
		return d, nil
	}
	return d.Select(rows), nil
}

// FormatValue renders a numeric cell as text. NaN renders as "".
func FormatValue(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
