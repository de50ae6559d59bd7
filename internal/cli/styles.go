package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/geoquick/pkg/io"
	"github.com/matzehuels/geoquick/pkg/pipeline"
	"github.com/matzehuels/geoquick/pkg/style"
)

// stylesCommand creates the styles command, which prints the base style
// table of a reference dataset.
func (c *CLI) stylesCommand() *cobra.Command {
	var (
		output  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "styles [dataset]",
		Short: "Show the base styles of every type and location",
		Long: `Show the base styles of every type and location.

The dataset needs a type column and a location column (see [columns] in the
config file). Every type gets a marker symbol and size, and every location of
a type a shade of the type's base color.

The dataset is a .csv, .tsv, .txt or .xlsx file or an http(s) URL such as a
shared Google Sheet.`,
		Example: `  geoquick styles samples.csv
  geoquick styles samples.xlsx -o base.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Source:  args[0],
				Refresh: refresh,
				Style:   c.settings().StyleOptions(),
				Logger:  c.Logger,
			}
			return c.runStyles(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the base styles as a style document")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "download remote datasets again")

	return cmd
}

func (c *CLI) runStyles(ctx context.Context, opts pipeline.Options, output string) error {
	res, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return err
	}
	if !res.Reference {
		opt := opts.Style
		printWarning("no %q and %q columns; base styles need both", opt.TypeColumn, opt.LocationColumn)
		return nil
	}

	rows := make([]styleRow, 0, len(res.Base.Colors))
	for _, key := range res.Base.Keys() {
		rows = append(rows, styleRow{
			Key:   key,
			Style: res.Base.Resolve(key, style.SubKey(key, true), res.Defaults),
		})
	}
	fmt.Fprintln(stdout, styleTable("Type|Location", rows))
	printStats(res.Stats, len(rows))

	if output == "" {
		return nil
	}
	if err := io.ExportJSON(io.FromMaps(res.Base, nil, true), output); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	printSuccess("Exported base styles")
	printFile(output)
	return nil
}
