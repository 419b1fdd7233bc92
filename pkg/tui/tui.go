// Package tui runs the interactive frota table for host applications: a
// search bar, sortable columns and CSV export over a tabview.View.
package tui

import (
	"io"
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/frota/internal/ui"
	"github.com/oakwood-commons/frota/pkg/tabview"
)

const (
	defaultFallbackTermWidth  = 120
	defaultFallbackTermHeight = 24
)

var termGetSize = term.GetSize

// DetectTerminalSize returns the best-effort terminal width and height by probing
// stdout, stderr, and stdin, then falling back to the COLUMNS environment variable.
// If detection fails completely, returns (120, 24).
func DetectTerminalSize() (width int, height int) {
	for _, fd := range []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()} {
		if w, h, err := termGetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, defaultFallbackTermHeight
		}
	}
	return defaultFallbackTermWidth, defaultFallbackTermHeight
}

// Run starts the table UI over view and blocks until the user quits. It
// returns the search and sort state at exit. Host applications can pass
// tea.ProgramOption values to control IO.
func Run(view *tabview.View, cfg Config, opts ...tea.ProgramOption) (tabview.ViewState, error) {
	return ui.Run(view, cfg.options(), opts...)
}

// RenderSnapshot renders a single frame of the table UI at the configured
// size. Colors follow cfg.NoColor.
func RenderSnapshot(view *tabview.View, cfg Config) string {
	width, height := cfg.Width, cfg.Height
	if width <= 0 || height <= 0 {
		w, h := DetectTerminalSize()
		if width <= 0 {
			width = w
		}
		if height <= 0 {
			height = h
		}
	}
	m := ui.New(view, cfg.options())
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m.Frame()
}

// WithIO returns tea.ProgramOptions to set custom input/output.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}
