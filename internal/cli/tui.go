package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/geoquick/pkg/errors"
	"github.com/matzehuels/geoquick/pkg/style"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// field is an editable style attribute.
type field int

const (
	fieldColor field = iota
	fieldSymbol
	fieldSize
	fieldOpacity
	fieldOutlineColor
	fieldOutlineWidth
	fieldCount
)

var fieldNames = [fieldCount]string{"Color", "Symbol", "Size", "Opacity", "Outline", "Width"}

// Adjustment steps for + and -.
const (
	opacityStep = 0.05
	widthStep   = 0.5
)

// =============================================================================
// EditorModel - Interactive style editing
// =============================================================================

// EditorModel is the bubbletea model for editing the styles of groups.
type EditorModel struct {
	Groups []string
	Editor *style.Editor
	Cursor int
	Field  field
	Height int
	Offset int

	// Saved is set when the user asked to write the document.
	Saved bool

	input   string
	editing bool
	status  string
	failed  bool
}

// NewEditorModel creates an editor model over groups.
func NewEditorModel(groups []string, ed *style.Editor) EditorModel {
	return EditorModel{Groups: groups, Editor: ed, Height: 15}
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateInput(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "w":
			m.Saved = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Groups)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab", "l":
			m.Field = (m.Field + 1) % fieldCount
		case "shift+tab", "h":
			m.Field = (m.Field + fieldCount - 1) % fieldCount
		case "+", "=", "right":
			m = m.adjust(1)
		case "-", "left":
			m = m.adjust(-1)
		case "enter":
			if len(m.Groups) > 0 {
				m.editing = true
				m.input = m.current()
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

// updateInput handles keys while a value is being typed.
func (m EditorModel) updateInput(msg tea.KeyMsg) EditorModel {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.editing = false
	case tea.KeyEnter:
		m.editing = false
		m = m.set(m.input)
	case tea.KeyBackspace:
		_, size := utf8.DecodeLastRuneInString(m.input)
		m.input = m.input[:len(m.input)-size]
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m
}

func (m EditorModel) key() string {
	if len(m.Groups) == 0 {
		return ""
	}
	return m.Groups[m.Cursor]
}

// current returns the selected field of the selected group as text.
func (m EditorModel) current() string {
	s := m.Editor.Get(m.key())
	switch m.Field {
	case fieldColor:
		return s.Color
	case fieldSymbol:
		return s.Symbol
	case fieldSize:
		return strconv.Itoa(s.Size)
	case fieldOpacity:
		return formatFloat(s.Opacity)
	case fieldOutlineColor:
		return s.OutlineColor
	default:
		return formatFloat(s.OutlineWidth)
	}
}

// set parses text into the selected field.
func (m EditorModel) set(text string) EditorModel {
	key := m.key()
	if key == "" {
		return m
	}
	m.Editor.Open(key)
	text = strings.TrimSpace(text)

	var err error
	switch m.Field {
	case fieldColor:
		err = m.Editor.SetColor(key, text)
	case fieldSymbol:
		err = m.Editor.SetSymbol(key, text)
	case fieldSize:
		var n int
		if n, err = strconv.Atoi(text); err == nil {
			err = m.Editor.SetSize(key, n)
		}
	case fieldOpacity:
		var f float64
		if f, err = strconv.ParseFloat(text, 64); err == nil {
			err = m.Editor.SetOpacity(key, f)
		}
	case fieldOutlineColor:
		err = m.Editor.SetOutlineColor(key, text)
	case fieldOutlineWidth:
		var f float64
		if f, err = strconv.ParseFloat(text, 64); err == nil {
			err = m.Editor.SetOutlineWidth(key, f)
		}
	}
	return m.report(err)
}

// adjust steps the selected field up or down. Colors are only typed.
func (m EditorModel) adjust(dir int) EditorModel {
	key := m.key()
	if key == "" {
		return m
	}
	s := m.Editor.Open(key)

	var err error
	switch m.Field {
	case fieldSymbol:
		n := len(style.Symbols)
		i := (style.SymbolIndex(s.Symbol) + dir + n) % n
		err = m.Editor.SetSymbol(key, style.Symbols[i])
	case fieldSize:
		err = m.Editor.SetSize(key, s.Size+dir)
	case fieldOpacity:
		err = m.Editor.SetOpacity(key, round2(s.Opacity+float64(dir)*opacityStep))
	case fieldOutlineWidth:
		err = m.Editor.SetOutlineWidth(key, round2(s.OutlineWidth+float64(dir)*widthStep))
	default:
		return m
	}
	return m.report(err)
}

func (m EditorModel) report(err error) EditorModel {
	m.failed = err != nil
	switch {
	case err == nil:
		m.status = fmt.Sprintf("%s %s = %s", m.key(), fieldNames[m.Field], m.current())
	case errors.GetCode(err) != "":
		m.status = errors.UserMessage(err)
	default:
		m.status = fmt.Sprintf("%s: not a number", fieldNames[m.Field])
	}
	return m
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Edit Styles"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ group  ⇥ field  +/- adjust  ⏎ type value  w write  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Groups))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		g := m.Groups[i]
		s := m.Editor.Get(g)
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor + g,
			swatch(s.Color) + " " + s.Color,
			s.Symbol,
			strconv.Itoa(s.Size),
			formatFloat(s.Opacity),
			swatch(s.OutlineColor) + " " + s.OutlineColor,
			formatFloat(s.OutlineWidth),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(append([]string{"Group"}, fieldNames[:]...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col == int(m.Field)+1 {
					return styleHeader.Foreground(colorCyan)
				}
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				if col == int(m.Field)+1 {
					return listSelectedStyle.Underline(true)
				}
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	switch {
	case m.editing:
		b.WriteString(fmt.Sprintf("  %s: %s█", fieldNames[m.Field], m.input))
	case m.failed:
		b.WriteString("  " + listErrorStyle.Render(m.status))
	case m.status != "":
		b.WriteString("  " + listDimStyle.Render(m.status))
	default:
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Groups))))
	}
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
