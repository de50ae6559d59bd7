package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/geoquick/pkg/binning"
	"github.com/matzehuels/geoquick/pkg/errors"
	"github.com/matzehuels/geoquick/pkg/pipeline"
)

// binCommand creates the bin command, which previews a binning.
func (c *CLI) binCommand() *cobra.Command {
	var (
		mode    string
		bins    int
		edges   string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "bin [dataset] [column]",
		Short: "Preview the bins of a numeric column",
		Long: `Preview the bins of a numeric column.

Prints each interval label with its number of rows. Intervals are closed on
the right; the first one also includes its left edge. Rows outside every
interval are counted separately.

In manual mode without --edges the column's minimum and maximum are
suggested as a starting point.`,
		Example: `  geoquick bin samples.csv SiO2 --bins 6
  geoquick bin samples.csv MgO --mode manual --edges 0,4,8,12`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.settings()
			m := cfg.BinMode()
			if mode != "" {
				var err error
				if m, err = binning.ParseMode(mode); err != nil {
					return err
				}
			}
			if bins == 0 {
				bins = cfg.Binning.Bins
			}
			opts := pipeline.Options{
				Source:  args[0],
				Refresh: refresh,
				Style:   cfg.StyleOptions(),
				Logger:  c.Logger,
			}
			return c.runBin(cmd.Context(), opts, args[1], m, binning.Params{Bins: bins, Edges: edges})
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "binning mode: equal-width (default), manual")
	cmd.Flags().IntVar(&bins, "bins", 0, "number of equal-width bins (2-15)")
	cmd.Flags().StringVar(&edges, "edges", "", "comma-separated bin edges for manual mode")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "download remote datasets again")

	return cmd
}

func (c *CLI) runBin(ctx context.Context, opts pipeline.Options, col string, mode binning.Mode, p binning.Params) error {
	ds, err := c.newRunner().Load(ctx, opts)
	if err != nil {
		return err
	}

	if mode == binning.Manual && p.Edges == "" {
		suggest, err := binning.DefaultEdges(ds, col)
		if err != nil {
			return err
		}
		printInfo("No edges given; the range of %s is %s", col, suggest)
		printNextStep("Try", fmt.Sprintf("%s bin %s %s --mode manual --edges %s", appName, opts.Source, col, suggest))
		return nil
	}

	res, err := binning.Bin(ds, col, mode, p)
	if errors.IsValidation(err) {
		printWarning("%s", errors.UserMessage(err))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, StyleTitle.Render(res.Column))
	fmt.Fprintln(stdout, countTable(res.Labels, res.Counts, res.Unassigned))
	return nil
}
