// Package formatter renders table views and KPI cards for the terminal and
// serializes visible rows as JSON, YAML or TOML.
package formatter

import (
	"image/color"
	"os"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"
)

var (
	defaultHeaderFG    = lipgloss.Color("12")
	defaultHeaderBG    = lipgloss.Color("236")
	defaultCellColor   = lipgloss.Color("252")
	defaultSeparator   = lipgloss.Color("240")
	defaultPlaceholder = lipgloss.Color("244")
	defaultTitle       = lipgloss.Color("13")

	headerStyle      lipgloss.Style
	cellStyle        lipgloss.Style
	separatorStyle   lipgloss.Style
	placeholderStyle lipgloss.Style
	titleStyle       lipgloss.Style
)

// TableColors controls the rendered colors. Nil fields fall back to the
// built-in ANSI 256 defaults.
type TableColors struct {
	HeaderFG       color.Color
	HeaderBG       color.Color
	CellColor      color.Color
	SeparatorColor color.Color
	Placeholder    color.Color
	Title          color.Color
}

func orDefault(c, def color.Color) color.Color {
	if c == nil {
		return def
	}
	return c
}

func applyTableTheme(tc TableColors) {
	headerStyle = lipgloss.NewStyle().Bold(true).
		Foreground(orDefault(tc.HeaderFG, defaultHeaderFG)).
		Background(orDefault(tc.HeaderBG, defaultHeaderBG))
	cellStyle = lipgloss.NewStyle().Foreground(orDefault(tc.CellColor, defaultCellColor))
	separatorStyle = lipgloss.NewStyle().Foreground(orDefault(tc.SeparatorColor, defaultSeparator))
	placeholderStyle = lipgloss.NewStyle().Italic(true).Foreground(orDefault(tc.Placeholder, defaultPlaceholder))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(orDefault(tc.Title, defaultTitle))
}

// SetTableTheme overrides the package styles.
func SetTableTheme(tc TableColors) {
	applyTableTheme(tc)
}

// Color parses a config color token; the empty token yields nil.
func Color(token string) color.Color {
	if token == "" {
		return nil
	}
	return lipgloss.Color(token)
}

//nolint:gochecknoinits // initialize default table theme for package consumers
func init() {
	applyTableTheme(TableColors{})
}

// TerminalWidth returns the width of stdout, or 120 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}
