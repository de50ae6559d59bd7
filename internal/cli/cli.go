// Package cli implements the geoquick command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/geoquick/pkg/binning"
	"github.com/matzehuels/geoquick/pkg/buildinfo"
	"github.com/matzehuels/geoquick/pkg/config"
	"github.com/matzehuels/geoquick/pkg/dataset"
	"github.com/matzehuels/geoquick/pkg/httputil"
	"github.com/matzehuels/geoquick/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "geoquick"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// stdout receives command output. Tests replace it.
var stdout io.Writer = os.Stdout

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Geoquick styles geochemical sample groups for plotting",
		Long: `Geoquick assigns colors, marker symbols and sizes to groups of geochemical
samples. Rock types keep their conventional symbols, locations of a type get
shades of the type's color, and numeric columns can be binned into groups.

Style documents can be exported, edited and imported again.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/geoquick/config.toml)")

	root.AddCommand(c.stylesCommand())
	root.AddCommand(c.groupCommand())
	root.AddCommand(c.binCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// loadConfig reads the configuration file once.
func (c *CLI) loadConfig() error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "types", len(cfg.Types))
	return nil
}

// settings returns the loaded configuration or the defaults.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Remote datasets are
// cached on disk; without a usable cache directory they are fetched
// directly.
func (c *CLI) newRunner() *pipeline.Runner {
	cache, err := c.newCache()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		cache = nil
	}
	return pipeline.NewRunner(dataset.NewFetcher(cache), c.Logger)
}

func (c *CLI) newCache() (*httputil.Cache, error) {
	cfg := c.settings()
	return httputil.NewCache(cfg.Cache.Dir, cfg.CacheTTL())
}

// =============================================================================
// Options Helpers
// =============================================================================

// groupFlags are the pipeline flags shared by group and edit.
type groupFlags struct {
	by      string
	subBin  string
	mode    string
	bins    int
	edges   string
	filters []string
	style   string
	refresh bool
}

func (f *groupFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.by, "by", "", "grouping column (numeric columns are binned)")
	cmd.Flags().StringVar(&f.subBin, "sub-bin", "", "numeric column to bin within each group of --by")
	cmd.Flags().StringVar(&f.mode, "mode", "", "binning mode: equal-width (default), manual")
	cmd.Flags().IntVar(&f.bins, "bins", 0, "number of equal-width bins (2-15)")
	cmd.Flags().StringVar(&f.edges, "edges", "", "comma-separated bin edges for manual mode")
	cmd.Flags().StringArrayVar(&f.filters, "filter", nil, `row filter such as "SiO2 >= 45" (repeatable)`)
	cmd.Flags().StringVar(&f.style, "style", "", "style document to apply")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "download remote datasets again")
}

// options converts the flags into pipeline options, filling unset values
// from the configuration.
func (c *CLI) options(src string, f *groupFlags) (pipeline.Options, error) {
	cfg := c.settings()
	opts := pipeline.Options{
		Source:    src,
		Group:     f.by,
		SubBin:    f.subBin,
		BinMode:   cfg.BinMode(),
		Bins:      cfg.Binning.Bins,
		Edges:     f.edges,
		StylePath: f.style,
		Refresh:   f.refresh,
		Style:     cfg.StyleOptions(),
		Logger:    c.Logger,
	}
	if f.mode != "" {
		mode, err := binning.ParseMode(f.mode)
		if err != nil {
			return opts, err
		}
		opts.BinMode = mode
	}
	if f.bins != 0 {
		opts.Bins = f.bins
	}
	for _, expr := range f.filters {
		filter, err := dataset.ParseFilter(expr)
		if err != nil {
			return opts, err
		}
		opts.Filters = append(opts.Filters, filter)
	}
	return opts, nil
}
