package formatter

import (
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/frota/pkg/tabview"
)

const (
	sepWidth    = 2
	minColWidth = 3
	maxColWidth = 40
)

// TableOptions configures RenderTable.
type TableOptions struct {
	NoColor bool
	// Width is the total available width. Zero means the terminal width.
	Width int
	// HideTitle omits the title line even when the table has one.
	HideTitle bool
}

// RenderTable draws a rendered view as aligned columns: an optional title,
// the header row with sort indicators, a separator and one line per row.
// An empty projection prints the placeholder in place of the body.
func RenderTable(t tabview.RenderedTable, opts TableOptions) string {
	width := opts.Width
	if width <= 0 {
		width = TerminalWidth()
	}

	titles := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		titles[i] = h.Title()
	}
	widths := columnWidths(titles, t.Rows, width)

	style := func(s lipgloss.Style, text string) string {
		if opts.NoColor {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	if t.Title != "" && !opts.HideTitle {
		b.WriteString(style(titleStyle, t.Title) + "\n")
	}

	header := make([]string, len(titles))
	for i, title := range titles {
		header[i] = style(headerStyle, padRight(truncate(title, widths[i]), widths[i]))
	}
	b.WriteString(strings.TrimRight(strings.Join(header, strings.Repeat(" ", sepWidth)), " ") + "\n")
	b.WriteString(style(separatorStyle, strings.Repeat("─", totalWidth(widths))) + "\n")

	if t.Empty {
		b.WriteString(style(placeholderStyle, t.Placeholder) + "\n")
		return b.String()
	}

	for _, row := range t.Rows {
		cells := make([]string, len(widths))
		for i := range widths {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			cells[i] = style(cellStyle, padRight(truncate(val, widths[i]), widths[i]))
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, strings.Repeat(" ", sepWidth)), " ") + "\n")
	}
	return b.String()
}

func totalWidth(widths []int) int {
	total := 0
	for i, w := range widths {
		total += w
		if i < len(widths)-1 {
			total += sepWidth
		}
	}
	return total
}

// columnWidths fits each column to its widest cell, then caps and shrinks
// proportionally when the total exceeds available.
func columnWidths(headers []string, rows [][]string, available int) []int {
	n := len(headers)
	if n == 0 {
		return nil
	}
	widths := make([]int, n)
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < n && i < len(row); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	usable := available - (n-1)*sepWidth
	if usable <= 0 || sum(widths) <= usable {
		return widths
	}
	for i := range widths {
		widths[i] = min(widths[i], maxColWidth)
	}
	if total := sum(widths); total > usable {
		for i := range widths {
			widths[i] = max(widths[i]*usable/total, minColWidth)
		}
		for sum(widths) > usable {
			widest := 0
			for i := 1; i < n; i++ {
				if widths[i] > widths[widest] {
					widest = i
				}
			}
			if widths[widest] <= minColWidth {
				break
			}
			widths[widest]--
		}
	}
	return widths
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate shortens s to maxLen display cells, ending in "..." when cut.
func truncate(s string, maxLen int) string {
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}
