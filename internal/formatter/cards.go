package formatter

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Card is a boxed indicator: a title, a headline value and an optional trend
// and subtitle.
type Card struct {
	Title      string
	Value      string
	Trend      string // up, down or neutral
	TrendValue string
	Subtitle   string
}

const cardWidth = 26

var (
	trendUpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	trendDownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func trendArrow(trend string) string {
	switch trend {
	case "up":
		return "↑"
	case "down":
		return "↓"
	default:
		return ""
	}
}

func cardLines(c Card, noColor bool) []string {
	lines := []string{c.Title, c.Value}
	if c.Value != "" && !noColor {
		lines[1] = lipgloss.NewStyle().Bold(true).Render(c.Value)
	}
	if arrow := trendArrow(c.Trend); arrow != "" || c.TrendValue != "" {
		trend := strings.TrimSpace(arrow + " " + c.TrendValue)
		if !noColor {
			switch c.Trend {
			case "up":
				trend = trendUpStyle.Render(trend)
			case "down":
				trend = trendDownStyle.Render(trend)
			}
		}
		lines = append(lines, trend)
	}
	if c.Subtitle != "" {
		lines = append(lines, c.Subtitle)
	}
	return lines
}

// RenderCards lays cards out side by side in rounded boxes, wrapping to new
// rows when width is exceeded. Zero width means the terminal width.
func RenderCards(cards []Card, width int, noColor bool) string {
	if len(cards) == 0 {
		return ""
	}
	if width <= 0 {
		width = TerminalWidth()
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(cardWidth)
	if !noColor {
		box = box.BorderForeground(defaultSeparator)
	}

	perRow := max(width/(cardWidth+2), 1)
	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		boxes := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			boxes = append(boxes, box.Render(strings.Join(cardLines(c, noColor), "\n")))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return strings.Join(rows, "\n") + "\n"
}
