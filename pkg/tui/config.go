package tui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/frota/internal/ui"
	"github.com/oakwood-commons/frota/pkg/tabview"
)

// Theme holds color tokens (ANSI numbers or #rrggbb). Empty tokens keep the
// built-in colors.
type Theme struct {
	HeaderFG    string
	HeaderBG    string
	SelectedFG  string
	SelectedBG  string
	Placeholder string
	Search      string
	Title       string
}

// Config holds host-provided settings for running the table UI.
type Config struct {
	NoColor bool
	Theme   Theme

	// ExportDir receives <title>.csv on the export key when Sink is nil.
	ExportDir string
	// Sink overrides ExportDir as the export destination.
	Sink tabview.FileSink
	// Clipboard enables the copy key, placing the CSV on the system clipboard.
	Clipboard bool

	// Width and Height size RenderSnapshot. Zero means the detected terminal size.
	Width  int
	Height int

	Logger logr.Logger
}

// DefaultConfig returns the defaults used by the CLI.
func DefaultConfig() Config {
	return Config{
		Theme: Theme{
			HeaderFG:    "12",
			HeaderBG:    "236",
			SelectedFG:  "229",
			SelectedBG:  "57",
			Placeholder: "244",
			Search:      "14",
			Title:       "13",
		},
		ExportDir: ".",
		Logger:    logr.Discard(),
	}
}

func token(s string) color.Color {
	if s == "" {
		return nil
	}
	return lipgloss.Color(s)
}

func (c Config) options() ui.Options {
	sink := c.Sink
	if sink == nil {
		sink = tabview.DirSink{Dir: c.ExportDir}
	}
	opts := ui.Options{
		NoColor: c.NoColor,
		Theme: ui.Theme{
			HeaderFG:    token(c.Theme.HeaderFG),
			HeaderBG:    token(c.Theme.HeaderBG),
			SelectedFG:  token(c.Theme.SelectedFG),
			SelectedBG:  token(c.Theme.SelectedBG),
			Placeholder: token(c.Theme.Placeholder),
			Search:      token(c.Theme.Search),
			Title:       token(c.Theme.Title),
		},
		Sink:   sink,
		Logger: c.Logger,
	}
	if c.Clipboard {
		opts.Clipboard = ClipboardSink{}
	}
	return opts
}
