// Package table wraps the bubbles table for displaying a rendered tabview
// projection with a movable cursor.
package table

import (
	"fmt"
	"image/color"

	bubtable "charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/frota/pkg/tabview"
)

// Column and Row re-export the bubbles types so callers need not import bubbles.
type Column = bubtable.Column
type Row = bubtable.Row

const (
	colPadding  = 2
	minColWidth = 3
)

// Model displays the header and cell text of a tabview.RenderedTable.
type Model struct {
	table   bubtable.Model
	styles  bubtable.Styles
	headers []tabview.Header
	rows    [][]string

	width   int
	height  int
	focused bool
	noColor bool

	headerFG   color.Color
	headerBG   color.Color
	selectedFG color.Color
	selectedBG color.Color
}

// New creates an empty focused table.
func New() *Model {
	t := bubtable.New(
		bubtable.WithFocused(true),
		bubtable.WithHeight(5),
	)

	s := bubtable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(colPadding)
	s.Selected = s.Selected.PaddingLeft(0).PaddingRight(0)
	s.Cell = lipgloss.NewStyle().Align(lipgloss.Left).PaddingLeft(0).PaddingRight(colPadding)
	t.SetStyles(s)

	return &Model{
		table:   t,
		styles:  s,
		width:   80,
		height:  10,
		focused: true,
	}
}

// SetTable replaces the headers and rows. The cursor is kept when still in
// range and reset to the first row otherwise.
func (m *Model) SetTable(rt tabview.RenderedTable) {
	m.headers = rt.Headers
	m.rows = rt.Rows
	m.layout()
}

func (m *Model) layout() {
	titles := make([]string, len(m.headers))
	for i, h := range m.headers {
		titles[i] = h.Title()
	}
	widths := fitWidths(titles, m.rows, m.width)

	cols := make([]Column, len(titles))
	for i, title := range titles {
		cols[i] = Column{Title: title, Width: widths[i]}
	}
	rows := make([]Row, len(m.rows))
	for i, r := range m.rows {
		rows[i] = Row(r)
	}

	// Rows must be cleared before shrinking the column set.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) || c < 0 {
		m.table.SetCursor(0)
	}
}

// fitWidths sizes columns to their widest cell and shrinks the widest ones
// until the table fits in total.
func fitWidths(titles []string, rows [][]string, total int) []int {
	widths := make([]int, len(titles))
	for i, t := range titles {
		widths[i] = lipgloss.Width(t)
	}
	for _, r := range rows {
		for i := 0; i < len(widths) && i < len(r); i++ {
			widths[i] = max(widths[i], lipgloss.Width(r[i]))
		}
	}
	budget := total - colPadding*len(widths)
	for {
		sum, widest := 0, 0
		for i, w := range widths {
			sum += w
			if w > widths[widest] {
				widest = i
			}
		}
		if sum <= budget || len(widths) == 0 || widths[widest] <= minColWidth {
			return widths
		}
		widths[widest]--
	}
}

// Rows returns the displayed cell text.
func (m *Model) Rows() [][]string {
	return m.rows
}

// Cursor returns the current cursor position.
func (m *Model) Cursor() int {
	return m.table.Cursor()
}

// SetCursor sets the cursor position.
func (m *Model) SetCursor(pos int) {
	m.table.SetCursor(pos)
}

// SelectedRow returns the cells under the cursor, or nil when there are no rows.
func (m *Model) SelectedRow() []string {
	c := m.Cursor()
	if c < 0 || c >= len(m.rows) {
		return nil
	}
	return m.rows[c]
}

// SetSize sets the table dimensions and refits the columns.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(height)
	m.layout()
}

// Focus sets the table focus state.
func (m *Model) Focus() {
	m.focused = true
	m.table.Focus()
}

// Blur removes focus from the table.
func (m *Model) Blur() {
	m.focused = false
	m.table.Blur()
}

// Focused returns true if the table has focus.
func (m *Model) Focused() bool {
	return m.focused
}

// SetNoColor enables/disables color output.
func (m *Model) SetNoColor(noColor bool) {
	m.noColor = noColor
	m.applyColorScheme()
}

// SetColors sets theme colors; nil keeps the bubbles default.
func (m *Model) SetColors(headerFG, headerBG, selectedFG, selectedBG color.Color) {
	m.headerFG = headerFG
	m.headerBG = headerBG
	m.selectedFG = selectedFG
	m.selectedBG = selectedBG
	m.applyColorScheme()
}

func (m *Model) applyColorScheme() {
	s := m.styles
	if m.noColor {
		s.Header = s.Header.UnsetForeground().UnsetBackground()
		s.Selected = s.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		s.Cell = s.Cell.UnsetForeground().UnsetBackground()
	} else {
		if m.headerFG != nil {
			s.Header = s.Header.Foreground(m.headerFG)
		}
		if m.headerBG != nil {
			s.Header = s.Header.Background(m.headerBG)
		}
		if m.selectedFG != nil {
			s.Selected = s.Selected.Foreground(m.selectedFG)
		}
		if m.selectedBG != nil {
			s.Selected = s.Selected.Background(m.selectedBG)
		}
	}
	m.table.SetStyles(s)
	m.styles = s
}

// Update forwards navigation keys to the bubbles table.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m *Model) View() string {
	return m.table.View()
}

// Height returns the rendered height including the header.
func (m *Model) Height() int {
	return lipgloss.Height(m.View())
}

func (m *Model) String() string {
	return fmt.Sprintf("Table[cols=%d, rows=%d, cursor=%d]", len(m.headers), len(m.rows), m.Cursor())
}
