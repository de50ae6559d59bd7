package pipeline

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matzehuels/geoquick/pkg/binning"
	"github.com/matzehuels/geoquick/pkg/dataset"
	"github.com/matzehuels/geoquick/pkg/errors"
)

// resolveGroup picks the effective grouping column and derives it:
//
//   - categorical Group with SubBin: SubBin is binned over the whole table
//     and nested under Group
//   - numeric Group: Group itself is binned
//   - categorical Group: used as is
//   - no Group: no styling
//
// Binning problems caused by user input are recorded as warnings and the
// run continues without the binned column.
func (r *Runner) resolveGroup(ds *dataset.Dataset, opts Options, res *Result) (*dataset.Dataset, error) {
	if opts.Group == "" {
		return ds, nil
	}
	if !ds.Has(opts.Group) {
		return nil, errors.New(errors.ErrCodeColumnNotFound, "group column %q not found", opts.Group)
	}

	numeric := ds.IsNumeric(opts.Group)
	if opts.SubBin != "" && numeric {
		r.warn(res, "sub-binning applies to categorical groupings only; ignored", "group", opts.Group)
	}

	switch {
	case opts.SubBin != "" && !numeric:
		if !ds.Has(opts.SubBin) {
			return nil, errors.New(errors.ErrCodeColumnNotFound, "sub-bin column %q not found", opts.SubBin)
		}
		br, err := binning.NestBin(ds, opts.Group, opts.SubBin, opts.BinMode, opts.binParams())
		if err != nil {
			if !errors.IsValidation(err) {
				return nil, err
			}
			r.warn(res, "sub-binning skipped: "+errors.UserMessage(err), "column", opts.SubBin)
			res.GroupColumn = opts.Group
			return ds, nil
		}
		r.Logger.Debug("nested bins", "group", opts.Group, "column", opts.SubBin, "bins", len(br.Labels))
		res.Bins = br
		res.GroupColumn = binning.NestedColumn
		return br.Dataset, nil

	case numeric:
		br, err := binning.Bin(ds, opts.Group, opts.BinMode, opts.binParams())
		if err != nil {
			if !errors.IsValidation(err) {
				return nil, err
			}
			r.warn(res, "binning skipped: "+errors.UserMessage(err), "column", opts.Group)
			return ds, nil
		}
		r.Logger.Debug("binned group column", "column", opts.Group, "bins", len(br.Labels))
		res.Bins = br
		res.GroupColumn = br.Column
		return br.Dataset, nil
	}

	res.GroupColumn = opts.Group
	return ds, nil
}

// orderGroups sorts group keys for display: bin labels in interval order,
// nested keys by category then interval, anything else in the natural order
// of the column.
func orderGroups(ds *dataset.Dataset, col string, groups []string, bins *binning.Result) {
	if bins == nil {
		ds.SortKeys(col, groups)
		return
	}
	rank := make(map[string]int, len(bins.Labels))
	for i, l := range bins.Labels {
		rank[l] = i
	}
	if col == bins.Column {
		slices.SortStableFunc(groups, func(a, b string) int {
			return cmp.Compare(rank[a], rank[b])
		})
		return
	}
	slices.SortStableFunc(groups, func(a, b string) int {
		ca, la := splitNested(a)
		cb, lb := splitNested(b)
		if c := strings.Compare(ca, cb); c != 0 {
			return c
		}
		return cmp.Compare(rank[la], rank[lb])
	})
}

// splitNested splits a nested key at its last separator. Bin labels never
// contain the separator, while categories may.
func splitNested(key string) (category, label string) {
	i := strings.LastIndex(key, binning.NestSep)
	if i < 0 {
		return key, ""
	}
	return key[:i], key[i+len(binning.NestSep):]
}
