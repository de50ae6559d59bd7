package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/geoquick/pkg/errors"
	"github.com/matzehuels/geoquick/pkg/pipeline"
	"github.com/matzehuels/geoquick/pkg/style"
)

// editCommand creates the edit command, an interactive style editor.
func (c *CLI) editCommand() *cobra.Command {
	var (
		flags  groupFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "edit [dataset]",
		Short: "Edit group styles interactively",
		Long: `Edit group styles interactively.

Groups are resolved as in 'group'. Select a group and a field, then step the
value with + and - or type a new one after pressing enter. Pressing w writes
every group's style to the output document.

For a dataset grouped by type_loc, symbol and size edits apply to every
location of the type.`,
		Example: `  geoquick edit samples.csv --by type_loc -o style.json
  geoquick edit samples.csv --by SiO2 --bins 4 --style style.json -o style.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.by == "" {
				return errors.New(errors.ErrCodeInvalidInput, "edit needs a grouping column (--by)")
			}
			opts, err := c.options(args[0], &flags)
			if err != nil {
				return err
			}
			return c.runEdit(cmd.Context(), opts, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "style.json", "style document to write")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, opts pipeline.Options, output string) error {
	runner := c.newRunner()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	printWarnings(res)
	if len(res.Groups) == 0 {
		printInfo("No groups to edit")
		return nil
	}

	ed := style.NewEditor(res.Maps, res.Defaults, res.Compound)
	final, err := tea.NewProgram(NewEditorModel(res.Groups, ed), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	if m, ok := final.(EditorModel); !ok || !m.Saved {
		printInfo("Quit without writing")
		return nil
	}

	res.Maps = ed.Maps()
	if err := runner.ExportStyle(ctx, res, output); err != nil {
		printError("Could not write %s", output)
		return err
	}
	printSuccess("Wrote %d group styles", len(res.Groups))
	printFile(output)
	return nil
}
