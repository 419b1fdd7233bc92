package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/frota/pkg/tabview"
)

func rentalView() *tabview.View {
	return tabview.New(
		tabview.WithTitle("Carros Alugados"),
		tabview.WithColumns(
			tabview.ColumnSpec{Key: "veiculo", Label: "Veículo", Sortable: true},
			tabview.ColumnSpec{Key: "valor", Label: "Valor/Mês", Sortable: true},
		),
		tabview.WithData([]tabview.Row{
			tabview.RowOf(map[string]any{"veiculo": "Corolla", "valor": 850, "placa": "ABC-1234"}),
			tabview.RowOf(map[string]any{"veiculo": "Civic", "valor": 900}),
		}),
	)
}

func TestRenderTable(t *testing.T) {
	v := rentalView()
	v.ToggleSort("valor")
	v.ToggleSort("valor")

	out := RenderTable(v.Render(), TableOptions{NoColor: true, Width: 80})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Carros Alugados", lines[0])
	assert.Equal(t, "Veículo  Valor/Mês ▼", lines[1])
	assert.Equal(t, strings.Repeat("─", len([]rune("Veículo  Valor/Mês ▼"))), lines[2])
	assert.Equal(t, "Civic    900", lines[3])
	assert.Equal(t, "Corolla  850", lines[4])
}

func TestRenderTablePlaceholder(t *testing.T) {
	v := rentalView()
	v.SetSearch("tesla")

	out := RenderTable(v.Render(), TableOptions{NoColor: true, Width: 80, HideTitle: true})
	assert.NotContains(t, out, "Carros Alugados")
	assert.Contains(t, out, tabview.NoResultsPlaceholder)
	assert.NotContains(t, out, "Corolla")
}

func TestRenderTableShrinks(t *testing.T) {
	long := strings.Repeat("x", 60)
	table := tabview.RenderedTable{
		Headers: []tabview.Header{{Key: "a", Label: "A"}, {Key: "b", Label: "B"}},
		Rows:    [][]string{{long, long}},
	}
	out := RenderTable(table, TableOptions{NoColor: true, Width: 30})
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 30, line)
	}
	assert.Contains(t, out, "...")
}

func TestColumnWidths(t *testing.T) {
	assert.Nil(t, columnWidths(nil, nil, 80))
	assert.Equal(t, []int{7, 9}, columnWidths([]string{"Veículo", "Valor/Mês"}, [][]string{{"Corolla", "850"}}, 80))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "ab", truncate("abcdefgh", 2))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTable, "JSON": FormatJSON, "yml": FormatYAML, "toml": FormatTOML, "csv": FormatCSV} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestFormatRecordsJSON(t *testing.T) {
	v := rentalView()
	out, err := FormatRecords(v.Columns(), v.Projection(), FormatJSON)
	require.NoError(t, err)

	assert.True(t, strings.Index(out, `"veiculo"`) < strings.Index(out, `"valor"`))
	assert.NotContains(t, out, "placa")

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Corolla", decoded[0]["veiculo"])
	assert.InDelta(t, 850, decoded[0]["valor"], 0)

	out, err = FormatRecords(v.Columns(), nil, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestFormatRecordsYAML(t *testing.T) {
	v := rentalView()
	out, err := FormatRecords(v.Columns(), v.Projection(), FormatYAML)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "- veiculo: Corolla\n  valor: 850\n"), out)

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded, 2)
}

func TestFormatRecordsTOML(t *testing.T) {
	cols := []tabview.ColumnSpec{{Key: "veiculo", Label: "Veículo"}, {Key: "obs", Label: "Obs"}}
	rows := []tabview.Row{tabview.RowOf(map[string]any{"veiculo": "Versa", "obs": nil})}
	out, err := FormatRecords(cols, rows, FormatTOML)
	require.NoError(t, err)

	var decoded map[string][]map[string]any
	require.NoError(t, toml.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded["rows"], 1)
	assert.Equal(t, "Versa", decoded["rows"][0]["veiculo"])
	assert.NotContains(t, decoded["rows"][0], "obs")
}

func TestFormatRecordsRejectsTable(t *testing.T) {
	_, err := FormatRecords(nil, nil, FormatTable)
	assert.Error(t, err)
}

func TestRenderCards(t *testing.T) {
	cards := []Card{
		{Title: "Total de Carros", Value: "4", Trend: "neutral", Subtitle: "Frota total"},
		{Title: "Carros Alugados", Value: "3", Trend: "up", TrendValue: "+2"},
	}
	out := RenderCards(cards, 120, true)
	assert.Contains(t, out, "Total de Carros")
	assert.Contains(t, out, "Frota total")
	assert.Contains(t, out, "↑ +2")
	assert.Contains(t, out, "╭")

	first := strings.Split(out, "\n")[1]
	assert.Contains(t, first, "Total de Carros")
	assert.Contains(t, first, "Carros Alugados")

	narrow := RenderCards(cards, 10, true)
	assert.NotContains(t, strings.Split(narrow, "\n")[1], "Carros Alugados")
	assert.Empty(t, RenderCards(nil, 80, true))
}
