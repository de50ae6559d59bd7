package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/geoquick/pkg/dataset"
	"github.com/matzehuels/geoquick/pkg/observability"
	"github.com/matzehuels/geoquick/pkg/style"
)

// Runner executes pipeline runs. It holds no results between runs, so one
// Runner can serve any number of sequential interactions.
type Runner struct {
	Fetcher *dataset.Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil fetcher downloads without caching and a
// nil logger falls back to log.Default().
func NewRunner(f *dataset.Fetcher, logger *log.Logger) *Runner {
	if f == nil {
		f = dataset.NewFetcher(nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Fetcher: f, Logger: logger}
}

// Execute runs every stage for opts.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	loadStart := time.Now()
	ds, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	res := &Result{
		Reference: style.IsReference(ds, opts.Style),
		Defaults:  opts.Style.Defaults,
	}
	res.Stats.Rows = ds.Len()
	res.Stats.Columns = len(ds.Columns())
	res.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded dataset",
		"rows", res.Stats.Rows,
		"columns", res.Stats.Columns,
		"reference", res.Reference,
		"duration", res.Stats.LoadTime)

	styleStart := time.Now()
	if res.Reference {
		res.Base, err = style.Build(ds, opts.Style)
		if err != nil {
			return nil, fmt.Errorf("build base styles: %w", err)
		}
		r.Logger.Debug("built base styles",
			"types", len(res.Base.Symbols),
			"colors", len(res.Base.Colors))
	} else {
		res.Base = style.NewMaps()
	}

	ds, err = r.resolveGroup(ds, opts, res)
	if err != nil {
		return nil, fmt.Errorf("group: %w", err)
	}

	if len(opts.Filters) > 0 {
		before := ds.Len()
		ds, err = ds.Apply(opts.Filters...)
		if err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
		res.Stats.Filtered = before - ds.Len()
		r.Logger.Debug("applied filters", "filters", len(opts.Filters), "dropped", res.Stats.Filtered)
	}

	if err := r.styleGroups(ctx, ds, opts, res); err != nil {
		return nil, fmt.Errorf("style: %w", err)
	}
	res.Stats.StyleTime = time.Since(styleStart)

	r.Logger.Info("styled groups",
		"group", res.GroupColumn,
		"groups", len(res.Groups),
		"duration", res.Stats.StyleTime)

	if opts.StylePath != "" {
		if err := r.importStyle(ctx, opts, res); err != nil {
			return nil, err
		}
	}
	if opts.OutputPath != "" {
		if err := r.ExportStyle(ctx, res, opts.OutputPath); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}
	return res, nil
}

// Load reads opts.Source and adds the compound column when the dataset has
// type and location columns.
func (r *Runner) Load(ctx context.Context, opts Options) (*dataset.Dataset, error) {
	observability.Pipeline().OnLoadStart(ctx, opts.Source)
	start := time.Now()

	ds, err := dataset.Load(ctx, opts.Source, r.Fetcher.WithRefresh(opts.Refresh))
	if err == nil {
		ds, err = style.WithCompound(ds, opts.Style)
	}

	rows := 0
	if ds != nil {
		rows = ds.Len()
	}
	observability.Pipeline().OnLoadComplete(ctx, opts.Source, rows, time.Since(start), err)
	return ds, err
}

// warn records a recoverable problem on res and logs it.
func (r *Runner) warn(res *Result, msg string, keyvals ...any) {
	res.Warnings = append(res.Warnings, msg)
	r.Logger.Warn(msg, keyvals...)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
