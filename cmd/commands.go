package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/frota/internal/cel"
	"github.com/oakwood-commons/frota/internal/dataset"
	"github.com/oakwood-commons/frota/internal/formatter"
	"github.com/oakwood-commons/frota/pkg/settings"
	"github.com/oakwood-commons/frota/pkg/tabview"
)

var (
	listOutput string
	kpiOutput  string
)

// cliVersionString builds the text for 'frota version' and --version.
func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, go %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print frota version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return err
	},
}

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the built-in datasets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := formatter.ParseFormat(listOutput)
		if err != nil {
			return err
		}
		return writeView(cmd.OutOrStdout(), datasetsView(), format, formatter.TableOptions{
			NoColor:   noColor || stdoutIsPiped(),
			Width:     outputWidth(),
			HideTitle: true,
		})
	},
}

// datasetsView lists the datasets as a table of their own.
func datasetsView() *tabview.View {
	all := dataset.All()
	rows := make([]tabview.Row, len(all))
	for i, ds := range all {
		rows[i] = tabview.RowOf(map[string]any{
			"nome":      ds.Name,
			"titulo":    ds.Title,
			"perfil":    string(ds.Role),
			"registros": len(ds.Rows),
			"descricao": ds.Description,
		})
	}
	return tabview.New(
		tabview.WithTitle("datasets"),
		tabview.WithColumns(
			tabview.ColumnSpec{Key: "nome", Label: "Nome", Sortable: true},
			tabview.ColumnSpec{Key: "titulo", Label: "Título"},
			tabview.ColumnSpec{Key: "perfil", Label: "Perfil", Sortable: true},
			tabview.ColumnSpec{Key: "registros", Label: "Registros", Sortable: true},
			tabview.ColumnSpec{Key: "descricao", Label: "Descrição"},
		),
		tabview.WithData(rows),
	)
}

var kpisCmd = &cobra.Command{
	Use:       "kpis <motorista|investidor>",
	Short:     "Show the dashboard indicator cards for a role",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(dataset.RoleMotorista), string(dataset.RoleInvestidor)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kpis, err := dataset.KPIs(dataset.Role(strings.ToLower(args[0])))
		if err != nil {
			return err
		}
		var out []byte
		switch strings.ToLower(kpiOutput) {
		case "", "table":
			cards := make([]formatter.Card, len(kpis))
			for i, k := range kpis {
				cards[i] = formatter.Card{Title: k.Title, Value: k.Value, Trend: string(k.Trend), TrendValue: k.TrendValue, Subtitle: k.Subtitle}
			}
			out = []byte(formatter.RenderCards(cards, outputWidth(), noColor || stdoutIsPiped()) + "\n")
		case "json":
			if out, err = json.MarshalIndent(kpis, "", "  "); err != nil {
				return err
			}
			out = append(out, '\n')
		case "yaml", "yml":
			if out, err = yaml.Marshal(kpis); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown output format %q (expected table, json or yaml)", kpiOutput)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the CEL functions available to --select and --where",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ev, err := cel.NewEvaluator()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, fn := range ev.Functions() {
			if _, err := fmt.Fprintln(w, fn); err != nil {
				return err
			}
		}
		return nil
	},
}

func outputWidth() int {
	if widthFlag > 0 {
		return widthFlag
	}
	w, _ := detectTerminalSize()
	return w
}

func init() { //nolint:gochecknoinits
	datasetsCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "output format: table|csv|json|yaml|toml")
	kpisCmd.Flags().StringVarP(&kpiOutput, "output", "o", "table", "output format: table|json|yaml")
	for _, c := range []*cobra.Command{datasetsCmd, kpisCmd} {
		c.Flags().IntVar(&widthFlag, "width", 0, "output width in columns (default: terminal width)")
		c.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	}
}
