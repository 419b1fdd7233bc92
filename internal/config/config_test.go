package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/frota/pkg/tabview"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.True(t, BoolValue(cfg.View.Searchable, false))
	assert.True(t, BoolValue(cfg.View.Exportable, false))
	assert.Equal(t, "pt-BR", cfg.View.Locale)
	assert.Equal(t, "raw", cfg.View.CSVMode)
	assert.Equal(t, ColorValue("12"), cfg.Theme.HeaderFG)
	assert.Empty(t, cfg.Columns)
}

func TestLoadYAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
view:
  title: Carros Alugados
  exportable: false
  csv_mode: rfc4180
theme:
  header_fg: "#ff8800"
columns:
  - key: veiculo
    label: Veículo
    sortable: true
  - key: valor
    label: Valor/Mês
    sortable: true
    render: currency
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Carros Alugados", cfg.View.Title)
	assert.False(t, BoolValue(cfg.View.Exportable, true))
	assert.True(t, BoolValue(cfg.View.Searchable, false))
	assert.Equal(t, "pt-BR", cfg.View.Locale)
	assert.Equal(t, ColorValue("#ff8800"), cfg.Theme.HeaderFG)
	assert.Equal(t, ColorValue("236"), cfg.Theme.HeaderBG)

	cols, err := cfg.ColumnSpecs()
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Nil(t, cols[0].Renderer)
	require.NotNil(t, cols[1].Renderer)

	opts, err := cfg.ViewOptions()
	require.NoError(t, err)
	v := tabview.New(append(opts, tabview.WithColumns(cols...), tabview.WithData([]tabview.Row{
		tabview.RowOf(map[string]any{"veiculo": "Corolla", "valor": 850}),
	}))...)
	assert.Equal(t, "Carros Alugados.csv", v.ExportFileName())
	assert.False(t, v.Exportable())
	assert.Equal(t, "Veículo,Valor/Mês\nCorolla,850", v.ExportCSV())
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[view]
title = "Multas"
searchable = false

[theme]
header_fg = "33"

[[columns]]
key = "valor"
sortable = true
render = "currency"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Multas", cfg.View.Title)
	assert.False(t, BoolValue(cfg.View.Searchable, true))
	assert.Equal(t, ColorValue("33"), cfg.Theme.HeaderFG)

	cols, err := cfg.ColumnSpecs()
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, "valor", cols[0].Label)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view: [unclosed"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestColumnSpecsErrors(t *testing.T) {
	cfg := Config{Columns: []ColumnConfig{{Key: "a", Render: "sparkline"}}}
	_, err := cfg.ColumnSpecs()
	assert.ErrorContains(t, err, "unknown renderer")

	cfg = Config{Columns: []ColumnConfig{{Key: "a"}, {Key: "a"}}}
	_, err = cfg.ColumnSpecs()
	assert.ErrorIs(t, err, tabview.ErrDuplicateKey)

	specs, err := Config{}.ColumnSpecs()
	assert.NoError(t, err)
	assert.Nil(t, specs)
}

func TestViewOptionsErrors(t *testing.T) {
	_, err := Config{View: ViewConfig{CSVMode: "tsv"}}.ViewOptions()
	assert.Error(t, err)
	_, err = Config{View: ViewConfig{Locale: "not a locale!"}}.ViewOptions()
	assert.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/tmp/explicit.yaml", ResolvePath("/tmp/explicit.yaml"))

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, "", ResolvePath(""))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "frota"), 0o755))
	want := filepath.Join(dir, "frota", "config.toml")
	require.NoError(t, os.WriteFile(want, []byte("[view]\n"), 0o600))
	assert.Equal(t, want, ResolvePath(""))
}

func TestColorValueMarshal(t *testing.T) {
	out, err := yaml.Marshal(ThemeConfig{HeaderFG: "12", HeaderBG: "#101010"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "header_fg: 12\n")
	assert.Contains(t, string(out), "#101010")
}

func TestMarshal(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	out, err := Marshal(cfg, "toml")
	require.NoError(t, err)
	assert.Contains(t, string(out), "[view]")

	out, err = Marshal(cfg, "yaml")
	require.NoError(t, err)
	assert.Contains(t, string(out), "view:")
}
