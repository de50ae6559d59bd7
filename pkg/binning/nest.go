package binning

import (
	"github.com/matzehuels/geoquick/pkg/dataset"
	"github.com/matzehuels/geoquick/pkg/errors"
)

// NestedColumn holds "{category}|{bin}" keys produced by [Nest].
const NestedColumn = "__combined_group"

// NestSep separates the category from the bin label in nested keys.
const NestSep = "|"

// Nest adds [NestedColumn] to ds, joining each row's category and bin label.
// Rows missing either part get no key.
func Nest(ds *dataset.Dataset, categoryCol, binCol string) (*dataset.Dataset, error) {
	if !ds.HasAll(categoryCol, binCol) {
		return nil, errors.New(errors.ErrCodeColumnNotFound, "nesting needs columns %q and %q", categoryCol, binCol)
	}
	cats, _ := ds.Strings(categoryCol)
	bins, _ := ds.Strings(binCol)
	keys := make([]string, len(cats))
	for i := range cats {
		if cats[i] != "" && bins[i] != "" {
			keys[i] = cats[i] + NestSep + bins[i]
		}
	}
	return ds.WithColumn(NestedColumn, keys)
}

// NestBin bins numCol over the whole of ds and nests the result under
// categoryCol.
func NestBin(ds *dataset.Dataset, categoryCol, numCol string, mode Mode, p Params) (*Result, error) {
	res, err := Bin(ds, numCol, mode, p)
	if err != nil {
		return nil, err
	}
	res.Dataset, err = Nest(res.Dataset, categoryCol, res.Column)
	if err != nil {
		return nil, err
	}
	return res, nil
}
