package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/geoquick/pkg/pipeline"
)

// groupCommand creates the group command, which runs the whole pipeline.
func (c *CLI) groupCommand() *cobra.Command {
	var (
		flags  groupFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "group [dataset]",
		Short: "Style the groups of a column",
		Long: `Style the groups of a column.

Categorical columns are grouped by value. Numeric columns are binned first,
into --bins equal-width intervals or at the comma-separated --edges in manual
mode. With --sub-bin a numeric column is binned and nested under each
category of --by.

In a dataset with type and location columns, groups inherit the color of
their first sample's type and location and the symbol and size of its type.
Other datasets get generated colors and symbols.

A style document given with --style is applied on top; -o writes the result.`,
		Example: `  geoquick group samples.csv --by type_loc
  geoquick group samples.csv --by SiO2 --bins 5 -o sio2.json
  geoquick group samples.csv --by type --sub-bin MgO --mode manual --edges 0,5,10,20
  geoquick group samples.csv --by Location --filter "SiO2 >= 45" --style edits.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(args[0], &flags)
			if err != nil {
				return err
			}
			opts.OutputPath = output
			return c.runGroup(cmd.Context(), opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the resulting style document")

	return cmd
}

func (c *CLI) runGroup(ctx context.Context, opts pipeline.Options) error {
	prog := newProgress(c.Logger)
	res, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return err
	}
	printWarnings(res)

	if res.GroupColumn == "" {
		printInfo("No grouping column; nothing to style")
		printStats(res.Stats, 0)
		return nil
	}
	prog.done(fmt.Sprintf("Styled %d groups", len(res.Groups)))

	rows := make([]styleRow, len(res.Groups))
	for i, g := range res.Groups {
		rows[i] = styleRow{Key: g, Style: res.Style(g)}
	}
	fmt.Fprintln(stdout, styleTable(res.GroupColumn, rows))
	printStats(res.Stats, len(res.Groups))

	if opts.OutputPath != "" {
		printSuccess("Exported style document")
		printFile(opts.OutputPath)
		printNextStep("Edit it with", fmt.Sprintf("%s edit %s --by %s --style %s", appName, opts.Source, opts.Group, opts.OutputPath))
	}
	return nil
}
