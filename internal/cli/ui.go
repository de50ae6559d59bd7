package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/geoquick/pkg/pipeline"
	"github.com/matzehuels/geoquick/pkg/style"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// printWarnings prints the warnings a pipeline run absorbed.
func printWarnings(res *pipeline.Result) {
	for _, w := range res.Warnings {
		printWarning("%s", w)
	}
}

// printStats prints run statistics on a single line.
func printStats(s pipeline.Stats, groups int) {
	parts := []string{
		fmt.Sprintf("%d rows", s.Rows),
		fmt.Sprintf("%d columns", s.Columns),
	}
	if s.Filtered > 0 {
		parts = append(parts, fmt.Sprintf("%d filtered", s.Filtered))
	}
	if groups > 0 {
		parts = append(parts, fmt.Sprintf("%d groups", groups))
	}
	fmt.Fprintln(stdout, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// =============================================================================
// Style Tables
// =============================================================================

// swatch renders a block in the given hex color.
func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●●")
}

// styleRow is one line of a style table.
type styleRow struct {
	Key   string
	Style style.Resolved
}

// styleTable renders rows as a bordered table with color swatches.
func styleTable(title string, rows []styleRow) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		s := r.Style
		data[i] = []string{
			r.Key,
			swatch(s.Color) + " " + s.Color,
			s.Symbol,
			strconv.Itoa(s.Size),
			strconv.FormatFloat(s.Opacity, 'f', -1, 64),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(title, "Color", "Symbol", "Size", "Opacity").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 0 {
				return StyleValue
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})
	return t.Render()
}

// countTable renders bin labels with their row counts.
func countTable(labels []string, counts []int, unassigned int) string {
	data := make([][]string, 0, len(labels)+1)
	for i, l := range labels {
		data = append(data, []string{l, strconv.Itoa(counts[i])})
	}
	if unassigned > 0 {
		data = append(data, []string{"(none)", strconv.Itoa(unassigned)})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Bin", "Rows").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return StyleValue
		}).
		Render()
}
