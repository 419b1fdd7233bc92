package cmd

import (
	"context"
	"io"

	"github.com/oakwood-commons/frota/internal/config"
	"github.com/oakwood-commons/frota/internal/formatter"
	"github.com/oakwood-commons/frota/pkg/logger"
	"github.com/oakwood-commons/frota/pkg/settings"
	"github.com/oakwood-commons/frota/pkg/tabview"
	"github.com/oakwood-commons/frota/pkg/tui"
)

var runTableUI = tui.Run

func runInteractive(ctx context.Context, view *tabview.View, cfg config.Config) error {
	lgr := logger.FromContext(ctx)

	progOpts, cleanup := getProgramOptions()
	defer cleanup()

	state, err := runTableUI(view, tuiConfig(ctx, cfg), progOpts...)
	if err != nil {
		return err
	}
	lgr.V(1).Info("table closed", "search", state.SearchTerm, "sort", state.SortKey, "direction", state.SortDirection.String())
	return nil
}

// writeSnapshot prints one frame of the interactive table.
func writeSnapshot(ctx context.Context, w io.Writer, view *tabview.View, cfg config.Config, width, height int) error {
	tc := tuiConfig(ctx, cfg)
	tc.Width, tc.Height = width, height
	_, err := io.WriteString(w, tui.RenderSnapshot(view, tc)+"\n")
	return err
}

func tuiConfig(ctx context.Context, cfg config.Config) tui.Config {
	run := settings.FromContextOrDefault(ctx)
	th := cfg.Theme
	tc := tui.DefaultConfig()
	tc.NoColor = run.NoColor
	tc.ExportDir = run.ExportDir
	tc.Clipboard = true
	tc.Logger = *logger.FromContext(ctx)
	tc.Theme = tui.Theme{
		HeaderFG:    string(th.HeaderFG),
		HeaderBG:    string(th.HeaderBG),
		SelectedFG:  string(th.SelectedFG),
		SelectedBG:  string(th.SelectedBG),
		Placeholder: string(th.PlaceholderFG),
		Search:      string(th.SearchFG),
		Title:       string(th.TitleFG),
	}
	return tc
}

// applyTheme sets the static table colors from the config theme.
func applyTheme(cfg config.Config) {
	th := cfg.Theme
	formatter.SetTableTheme(formatter.TableColors{
		HeaderFG:       formatter.Color(string(th.HeaderFG)),
		HeaderBG:       formatter.Color(string(th.HeaderBG)),
		CellColor:      formatter.Color(string(th.CellColor)),
		SeparatorColor: formatter.Color(string(th.SeparatorColor)),
		Placeholder:    formatter.Color(string(th.PlaceholderFG)),
		Title:          formatter.Color(string(th.TitleFG)),
	})
}
