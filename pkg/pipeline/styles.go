package pipeline

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/matzehuels/geoquick/pkg/dataset"
	"github.com/matzehuels/geoquick/pkg/errors"
	"github.com/matzehuels/geoquick/pkg/io"
	"github.com/matzehuels/geoquick/pkg/observability"
	"github.com/matzehuels/geoquick/pkg/style"
)

// Style modes reported to hooks.
const (
	ModeReference = "reference"
	ModeUser      = "user"
)

// styleGroups derives the maps for res.GroupColumn. Rows without a group
// value are dropped first. Without a grouping column the maps stay empty.
func (r *Runner) styleGroups(ctx context.Context, ds *dataset.Dataset, opts Options, res *Result) error {
	res.Maps = style.NewMaps()
	if res.GroupColumn == "" {
		res.Dataset = ds
		return nil
	}

	mode := ModeUser
	if res.Reference {
		mode = ModeReference
	}
	observability.Pipeline().OnStyleStart(ctx, mode, res.GroupColumn)
	start := time.Now()

	err := func() error {
		kept, err := ds.DropMissing(res.GroupColumn)
		if err != nil {
			return err
		}
		res.Dataset = kept

		m, err := style.Derive(kept, res.GroupColumn, res.Base, opts.Style)
		if err != nil {
			return err
		}
		res.Maps = m

		groups, err := kept.Distinct(res.GroupColumn)
		if err != nil {
			return err
		}
		orderGroups(kept, res.GroupColumn, groups, res.Bins)
		res.Groups = groups
		res.Compound = res.Reference && res.GroupColumn == style.CompoundColumn
		return nil
	}()

	observability.Pipeline().OnStyleComplete(ctx, mode, len(res.Groups), time.Since(start), err)
	if err == nil && len(res.Groups) == 0 {
		r.warn(res, "grouping column has no values; group styling disabled", "group", res.GroupColumn)
	}
	return err
}

// importStyle patches res.Maps with the document at opts.StylePath. A
// malformed document is reported as a warning and the maps are kept.
func (r *Runner) importStyle(ctx context.Context, opts Options, res *Result) error {
	doc, err := io.ImportJSON(opts.StylePath)
	observability.Pipeline().OnImport(ctx, opts.StylePath, len(doc), err)
	if err != nil {
		if errors.IsValidation(err) {
			r.warn(res, "style document ignored: "+errors.UserMessage(err), "path", opts.StylePath)
			return nil
		}
		return err
	}
	res.Maps = io.Apply(res.Maps, doc, res.Compound)
	r.Logger.Info("imported style", "path", opts.StylePath, "groups", len(doc))
	return nil
}

// Document returns the style document for res: the known attributes of
// every active group and of every other key the maps carry.
func (r *Result) Document() io.Document {
	keys := map[string]bool{}
	for _, k := range r.Groups {
		keys[k] = true
	}
	for _, k := range r.Maps.Keys() {
		keys[k] = true
	}
	return io.FromMaps(r.Maps, slices.Sorted(maps.Keys(keys)), r.Compound)
}

// ExportStyle writes the style document of res to path.
func (r *Runner) ExportStyle(ctx context.Context, res *Result, path string) error {
	doc := res.Document()
	err := io.ExportJSON(doc, path)
	observability.Pipeline().OnExport(ctx, path, len(doc), err)
	if err != nil {
		return err
	}
	r.Logger.Info("exported style", "path", path, "groups", len(doc))
	return nil
}
