package ui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/frota/pkg/tabview"
)

// Run starts the interactive table and blocks until the user quits. It
// returns the view state at exit. Extra program options (custom IO, window
// size) are passed to tea.NewProgram.
func Run(v *tabview.View, opts Options, progOpts ...tea.ProgramOption) (tabview.ViewState, error) {
	m := New(v, opts)
	prog := tea.NewProgram(m, progOpts...)
	final, err := prog.Run()
	if err != nil {
		return v.State(), fmt.Errorf("run table ui: %w", err)
	}
	if fm, ok := final.(*Model); ok && fm != nil {
		return fm.view.State(), nil
	}
	return v.State(), nil
}
