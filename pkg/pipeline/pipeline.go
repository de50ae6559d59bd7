// Package pipeline runs one complete styling pass over a dataset.
//
// Every interaction (loading a file, changing the grouping column, editing
// or uploading a style) is a fresh run of the same stages:
//
//  1. Load: read a local file or remote sheet and add the compound column
//  2. Base: build the type/location base maps (reference datasets only)
//  3. Group: resolve the grouping column, binning numeric columns
//  4. Filter: apply row filters and drop rows without a group
//  5. Style: derive maps for the active groups
//  6. Import/Export: patch the maps from a style document, write one out
//
// Runs are deterministic: the same inputs always produce the same maps.
//
// # Usage
//
//	runner := pipeline.NewRunner(fetcher, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source: "samples.csv",
//	    Group:  "type_loc",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Maps.Colors)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/geoquick/pkg/binning"
	"github.com/matzehuels/geoquick/pkg/dataset"
	"github.com/matzehuels/geoquick/pkg/errors"
	"github.com/matzehuels/geoquick/pkg/style"
)

// Options configures one pipeline run.
type Options struct {
	// Source is a file path or an http(s) URL.
	Source string

	// Group is the grouping column. Empty means no group styling.
	Group string

	// SubBin names a numeric column to bin and nest under a categorical
	// Group, producing "{category}|{bin}" groups.
	SubBin string

	// Binning settings for numeric groupings and SubBin.
	BinMode binning.Mode
	Bins    int
	Edges   string

	// Filters are applied after grouping columns are derived.
	Filters []dataset.Filter

	// StylePath is a style document applied after deriving.
	StylePath string

	// OutputPath receives the resulting style document.
	OutputPath string

	// Refresh bypasses cached remote downloads.
	Refresh bool

	// Style carries column names, the base table and fallback values.
	Style style.Options

	Logger *log.Logger

	validated bool
}

// Result holds the outputs of a run.
type Result struct {
	// Dataset is the filtered dataset with derived columns.
	Dataset *dataset.Dataset

	// Reference is set when the dataset has type and location columns.
	Reference bool

	// Base are the type/location maps; empty for other datasets.
	Base *style.Maps

	// GroupColumn is the effective grouping column, after binning or
	// nesting. Empty when no grouping is active.
	GroupColumn string

	// Groups are the distinct group keys in display order.
	Groups []string

	// Bins describes the binning that produced GroupColumn, if any.
	Bins *binning.Result

	// Maps are the styles of the active groups.
	Maps *style.Maps

	// Compound is set when Maps keep symbols and sizes per type.
	Compound bool

	// Defaults fill attributes the maps do not know.
	Defaults style.Defaults

	// Warnings are recoverable problems that were absorbed.
	Warnings []string

	Stats Stats
}

// Stats contains run statistics.
type Stats struct {
	Rows      int
	Columns   int
	Filtered  int
	LoadTime  time.Duration
	StyleTime time.Duration
}

// SubKey returns the symbol/size lookup key for a group of this result.
func (r *Result) SubKey(key string) string {
	return style.SubKey(key, r.Compound)
}

// Style returns the full style of group key.
func (r *Result) Style(key string) style.Resolved {
	return r.Maps.Resolve(key, r.SubKey(key), r.Defaults)
}

// ValidateAndSetDefaults checks required fields and fills defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "a dataset source is required")
	}
	if o.BinMode == "" {
		o.BinMode = binning.EqualWidth
	}
	mode, err := binning.ParseMode(string(o.BinMode))
	if err != nil {
		return err
	}
	o.BinMode = mode
	if o.Bins == 0 {
		o.Bins = binning.DefaultBins
	}
	if o.Group != "" {
		if err := errors.ValidateColumnName(o.Group); err != nil {
			return err
		}
	}
	if o.SubBin != "" && o.Group == "" {
		return errors.New(errors.ErrCodeInvalidInput, "sub-binning needs a grouping column")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

func (o *Options) binParams() binning.Params {
	return binning.Params{Bins: o.Bins, Edges: o.Edges}
}
