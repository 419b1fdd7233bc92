package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/frota/pkg/tabview"
	"github.com/oakwood-commons/frota/pkg/tui"
)

func resetRootCmdState() {
	for _, c := range []*cobra.Command{rootCmd, datasetsCmd, kpisCmd, configGetCmd} {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Value.Type() != "stringArray" {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	renderFlags = nil
	rootCmd.SetArgs(nil)
	rootCmd.SetIn(strings.NewReader(""))
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command with isolated config and piping state.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	resetRootCmdState()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	origIn, origOut := stdinIsPiped, stdoutIsPiped
	stdinIsPiped = func() bool { return stdin != "" }
	stdoutIsPiped = func() bool { return true }
	t.Cleanup(func() {
		stdinIsPiped, stdoutIsPiped = origIn, origOut
	})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return cliResult{stdout: out.String(), stderr: errOut.String(), err: err}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDatasetCSVSortedDescending(t *testing.T) {
	res := runCLI(t, "", "-d", "carros-alugados", "-o", "csv", "--sort", "valor", "--desc")
	require.NoError(t, res.err)
	want := "Veículo,Placa,Motorista,Início,Término,Valor/Mês,Status,Ações\n" +
		"Honda Civic 2023,DEF-5678,Maria Santos,2024-12-15,2025-01-15,900,Ativo,\n" +
		"Toyota Corolla 2022,ABC-1234,João Silva,2024-12-01,2024-12-31,850,Ativo,\n" +
		"Nissan Versa 2022,JKL-3456,-,-,-,800,Disponível,\n" +
		"Hyundai HB20 2021,GHI-9012,Carlos Oliveira,2024-12-10,2025-01-10,750,Ativo,\n"
	assert.Equal(t, want, res.stdout)
}

func TestDatasetSearchAndColumns(t *testing.T) {
	res := runCLI(t, "", "-d", "carros-alugados", "--search", "SILVA", "--columns", "motorista,valor", "-o", "csv")
	require.NoError(t, res.err)
	assert.Equal(t, "Motorista,Valor/Mês\nJoão Silva,850\n", res.stdout)
}

func TestSearchDisabledShowsEveryRow(t *testing.T) {
	res := runCLI(t, "", "-d", "carros-alugados", "--search", "SILVA", "--no-search", "-o", "csv", "--columns", "placa")
	require.NoError(t, res.err)
	assert.Equal(t, "Placa\nABC-1234\nDEF-5678\nGHI-9012\nJKL-3456\n", res.stdout)
}

func TestTableOutputPlaceholder(t *testing.T) {
	res := runCLI(t, "", "-d", "carros-alugados", "--search", "zzz", "--width", "120")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Carros Alugados")
	assert.Contains(t, res.stdout, "Veículo")
	assert.Contains(t, res.stdout, tabview.NoResultsPlaceholder)
}

func TestTableOutputRendersCells(t *testing.T) {
	res := runCLI(t, "", "-d", "carros-alugados", "--sort", "veiculo", "--width", "200")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Veículo ▲")
	assert.Contains(t, res.stdout, "Detalhes")
}

func TestJSONFileWithWhere(t *testing.T) {
	path := writeTemp(t, "rows.json", `[{"nome":"A","valor":10},{"nome":"B","valor":20}]`)
	res := runCLI(t, "", path, "--where", "row.valor > 15.0", "-o", "json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"nome": "B"`)
	assert.NotContains(t, res.stdout, `"A"`)
}

func TestYAMLFileWithSelect(t *testing.T) {
	path := writeTemp(t, "fleet.yaml", `frota:
  veiculos:
    - placa: x
      ano: 2022
    - placa: y
      ano: 2020
`)
	res := runCLI(t, "", path, "--select", "_.frota.veiculos", "--sort", "ano", "-o", "csv")
	require.NoError(t, res.err)
	assert.Equal(t, "ano,placa\n2020,y\n2022,x\n", res.stdout)
}

func TestStdinCSVWithExport(t *testing.T) {
	dir := t.TempDir()
	res := runCLI(t, "nome,cidade\nAna,Recife\nBia,Natal\n",
		"--input-format", "csv", "--title", "Clientes", "--export", "--export-dir", dir, "-o", "csv")
	require.NoError(t, res.err)
	assert.Equal(t, "cidade,nome\nRecife,Ana\nNatal,Bia\n", res.stdout)
	assert.Contains(t, res.stderr, "Exportado: Clientes.csv")

	data, err := os.ReadFile(filepath.Join(dir, "Clientes.csv"))
	require.NoError(t, err)
	assert.Equal(t, "cidade,nome\nRecife,Ana\nNatal,Bia", string(data))
}

func TestExportUntitledUsesDefaultName(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, "rows.json", `[{"a":"x,y"}]`)
	res := runCLI(t, "", path, "--export", "--export-dir", dir, "-o", "csv")
	require.NoError(t, res.err)
	data, err := os.ReadFile(filepath.Join(dir, "data.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a\nx,y", string(data))
}

func TestExportStrictCSVMode(t *testing.T) {
	path := writeTemp(t, "rows.json", `[{"a":"x,y"}]`)
	res := runCLI(t, "", path, "--csv-mode", "rfc4180", "-o", "csv")
	require.NoError(t, res.err)
	assert.Equal(t, "a\n\"x,y\"\n", res.stdout)
}

func TestExportDisabled(t *testing.T) {
	res := runCLI(t, "", "-d", "pagamentos", "--no-export", "--export", "--export-dir", t.TempDir())
	require.ErrorIs(t, res.err, tabview.ErrExportDisabled)
}

func TestCSVOutputRespectsExportDisabled(t *testing.T) {
	res := runCLI(t, "", "-d", "pagamentos", "--no-export", "-o", "csv")
	require.ErrorIs(t, res.err, tabview.ErrExportDisabled)
	assert.Empty(t, res.stdout)

	res = runCLI(t, "", "-d", "pagamentos", "--no-export", "-o", "json")
	require.NoError(t, res.err)
	assert.NotEmpty(t, res.stdout)
}

func TestSortErrors(t *testing.T) {
	res := runCLI(t, "", "-d", "carros-alugados", "--sort", "acoes")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "not sortable")

	res = runCLI(t, "", "-d", "carros-alugados", "--sort", "nope")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unknown sort column")
}

func TestLimitingFlags(t *testing.T) {
	res := runCLI(t, "", "-d", "receita-mensal", "--limit", "2", "--offset", "1", "-o", "csv")
	require.NoError(t, res.err)
	assert.Equal(t, "Mês,Receita\nFev,7800\nMar,8100\n", res.stdout)

	res = runCLI(t, "", "-d", "receita-mensal", "--tail", "1", "-o", "csv")
	require.NoError(t, res.err)
	assert.Equal(t, "Mês,Receita\nDez,8750\n", res.stdout)

	res = runCLI(t, "", "-d", "receita-mensal", "--limit", "1", "--tail", "1")
	require.Error(t, res.err)
}

func TestUnknownDataset(t *testing.T) {
	res := runCLI(t, "", "-d", "nope")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unknown dataset")
}

func TestSelectWithDatasetRejected(t *testing.T) {
	res := runCLI(t, "", "-d", "pagamentos", "--select", "_")
	require.Error(t, res.err)
}

func TestRenderFlag(t *testing.T) {
	path := writeTemp(t, "rows.json", `[{"placa":"abc-1234"}]`)
	res := runCLI(t, "", path, "--render", "placa=upper", "--width", "80")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "ABC-1234")

	res = runCLI(t, "", path, "--render", "placa=nope")
	require.Error(t, res.err)
}

func TestConfigColumnsAndTitle(t *testing.T) {
	cfgPath := writeTemp(t, "config.yaml", `view:
  title: Frota
columns:
  - key: placa
    label: Placa
    sortable: true
    render: upper
`)
	path := writeTemp(t, "rows.json", `[{"placa":"b-2","ano":2020},{"placa":"a-1","ano":2021}]`)
	res := runCLI(t, "", path, "--config-file", cfgPath, "--sort", "placa", "-o", "csv", "--export", "--export-dir", t.TempDir())
	require.NoError(t, res.err)
	assert.Equal(t, "Placa\na-1\nb-2\n", res.stdout)
	assert.Contains(t, res.stderr, "Frota.csv")
}

func TestNoInputShowsHelp(t *testing.T) {
	res := runCLI(t, "")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Usage:")
}

func TestInteractiveUsesTableUI(t *testing.T) {
	orig := runTableUI
	defer func() { runTableUI = orig }()

	var gotTitle string
	var gotCfg tui.Config
	runTableUI = func(v *tabview.View, cfg tui.Config, _ ...tea.ProgramOption) (tabview.ViewState, error) {
		gotTitle = v.Title()
		gotCfg = cfg
		return v.State(), nil
	}

	res := runCLI(t, "", "-d", "pagamentos", "-i", "--export-dir", "out")
	require.NoError(t, res.err)
	assert.Equal(t, "Histórico de Pagamentos", gotTitle)
	assert.Equal(t, "out", gotCfg.ExportDir)
	assert.True(t, gotCfg.Clipboard)
	assert.Equal(t, "12", gotCfg.Theme.HeaderFG)
	assert.Empty(t, res.stdout)
}

func TestSnapshot(t *testing.T) {
	res := runCLI(t, "", "-d", "carros-alugados", "--snapshot", "--no-color", "--width", "120", "--height", "20", "--search", "civic")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Carros Alugados")
	assert.Contains(t, res.stdout, "Honda Civic 2023")
	assert.NotContains(t, res.stdout, "Toyota Corolla 2022")
	assert.Contains(t, res.stdout, "q sair")
}

func TestPickColumns(t *testing.T) {
	cols := []tabview.ColumnSpec{{Key: "a", Label: "A"}, {Key: "b", Label: "B"}}
	got, err := pickColumns(cols, []string{"b", "c"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Label)
	assert.Equal(t, tabview.ColumnSpec{Key: "c", Label: "c", Sortable: true}, got[1])

	_, err = pickColumns(cols, nil)
	require.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}

func TestParseInputFormat(t *testing.T) {
	f, err := parseInputFormat("YML")
	require.NoError(t, err)
	assert.EqualValues(t, "yaml", f)

	_, err = parseInputFormat("xml")
	require.Error(t, err)
}
