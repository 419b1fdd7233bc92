// Package config loads frota settings from the embedded defaults and an
// optional user file in YAML or TOML.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/frota/internal/render"
	"github.com/oakwood-commons/frota/pkg/tabview"
)

//go:embed default_config.yaml
var embeddedDefault []byte

// DefaultYAML returns a copy of the embedded default config.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefault...)
}

// ColorValue stores a color token (ANSI number or hex) and marshals numbers as
// YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (any, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	*c = ColorValue(value.Value)
	return nil
}

// Config is the merged configuration.
type Config struct {
	View    ViewConfig     `yaml:"view" toml:"view"`
	Display DisplayConfig  `yaml:"display" toml:"display"`
	Theme   ThemeConfig    `yaml:"theme" toml:"theme"`
	Columns []ColumnConfig `yaml:"columns" toml:"columns"`
}

// ViewConfig holds table behavior settings.
type ViewConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Searchable *bool  `yaml:"searchable" toml:"searchable"`
	Exportable *bool  `yaml:"exportable" toml:"exportable"`
	Locale     string `yaml:"locale" toml:"locale"`
	CSVMode    string `yaml:"csv_mode" toml:"csv_mode"`
	ExportDir  string `yaml:"export_dir" toml:"export_dir"`
}

// DisplayConfig holds terminal output settings.
type DisplayConfig struct {
	NoColor     *bool `yaml:"no_color" toml:"no_color"`
	Interactive *bool `yaml:"interactive" toml:"interactive"`
	Width       int   `yaml:"width" toml:"width"`
}

// ThemeConfig holds table colors. In TOML files colors are written as strings.
type ThemeConfig struct {
	HeaderFG       ColorValue `yaml:"header_fg" toml:"header_fg"`
	HeaderBG       ColorValue `yaml:"header_bg" toml:"header_bg"`
	CellColor      ColorValue `yaml:"cell_color" toml:"cell_color"`
	SeparatorColor ColorValue `yaml:"separator_color" toml:"separator_color"`
	SelectedFG     ColorValue `yaml:"selected_fg" toml:"selected_fg"`
	SelectedBG     ColorValue `yaml:"selected_bg" toml:"selected_bg"`
	PlaceholderFG  ColorValue `yaml:"placeholder_fg" toml:"placeholder_fg"`
	SearchFG       ColorValue `yaml:"search_fg" toml:"search_fg"`
	TitleFG        ColorValue `yaml:"title_fg" toml:"title_fg"`
}

// ColumnConfig declares one column of the schema. Render names a renderer
// from the render package; empty means the raw value.
type ColumnConfig struct {
	Key      string `yaml:"key" toml:"key"`
	Label    string `yaml:"label,omitempty" toml:"label,omitempty"`
	Sortable bool   `yaml:"sortable,omitempty" toml:"sortable,omitempty"`
	Render   string `yaml:"render,omitempty" toml:"render,omitempty"`
}

// Default parses the embedded defaults.
func Default() (Config, error) {
	var cfg Config
	if len(embeddedDefault) == 0 {
		return cfg, fmt.Errorf("embedded default config is empty")
	}
	if err := yaml.Unmarshal(embeddedDefault, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults merged with the file at path. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	user, err := Parse(data, path)
	if err != nil {
		return cfg, err
	}
	return Merge(cfg, user), nil
}

// Parse decodes a config file; the extension of name selects TOML or YAML.
func Parse(data []byte, name string) (Config, error) {
	var cfg Config
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", name, err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", name, err)
	}
	return cfg, nil
}

// Merge overlays the set fields of top onto base.
func Merge(base, top Config) Config {
	out := base
	if top.View.Title != "" {
		out.View.Title = top.View.Title
	}
	if top.View.Searchable != nil {
		out.View.Searchable = top.View.Searchable
	}
	if top.View.Exportable != nil {
		out.View.Exportable = top.View.Exportable
	}
	if top.View.Locale != "" {
		out.View.Locale = top.View.Locale
	}
	if top.View.CSVMode != "" {
		out.View.CSVMode = top.View.CSVMode
	}
	if top.View.ExportDir != "" {
		out.View.ExportDir = top.View.ExportDir
	}
	if top.Display.NoColor != nil {
		out.Display.NoColor = top.Display.NoColor
	}
	if top.Display.Interactive != nil {
		out.Display.Interactive = top.Display.Interactive
	}
	if top.Display.Width != 0 {
		out.Display.Width = top.Display.Width
	}
	out.Theme = mergeTheme(out.Theme, top.Theme)
	if len(top.Columns) > 0 {
		out.Columns = append([]ColumnConfig(nil), top.Columns...)
	}
	return out
}

func mergeTheme(base, top ThemeConfig) ThemeConfig {
	pick := func(b, t ColorValue) ColorValue {
		if t != "" {
			return t
		}
		return b
	}
	return ThemeConfig{
		HeaderFG:       pick(base.HeaderFG, top.HeaderFG),
		HeaderBG:       pick(base.HeaderBG, top.HeaderBG),
		CellColor:      pick(base.CellColor, top.CellColor),
		SeparatorColor: pick(base.SeparatorColor, top.SeparatorColor),
		SelectedFG:     pick(base.SelectedFG, top.SelectedFG),
		SelectedBG:     pick(base.SelectedBG, top.SelectedBG),
		PlaceholderFG:  pick(base.PlaceholderFG, top.PlaceholderFG),
		SearchFG:       pick(base.SearchFG, top.SearchFG),
		TitleFG:        pick(base.TitleFG, top.TitleFG),
	}
}

// ResolvePath returns explicit when set, otherwise the first existing file
// among $XDG_CONFIG_HOME/frota/config.{yaml,toml} or
// ~/.config/frota/config.{yaml,toml}. It returns "" when none exists.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dir = filepath.Join(xdg, "frota")
	} else if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".config", "frota")
	}
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		candidate := filepath.Join(dir, name)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// ColumnSpecs converts the configured columns into a validated schema. It
// returns nil, nil when no columns are configured.
func (c Config) ColumnSpecs() ([]tabview.ColumnSpec, error) {
	if len(c.Columns) == 0 {
		return nil, nil
	}
	specs := make([]tabview.ColumnSpec, len(c.Columns))
	for i, col := range c.Columns {
		fn, err := render.ByName(col.Render)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Key, err)
		}
		label := col.Label
		if label == "" {
			label = col.Key
		}
		specs[i] = tabview.ColumnSpec{Key: col.Key, Label: label, Sortable: col.Sortable, Renderer: fn}
	}
	if err := tabview.ValidateColumns(specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// ViewOptions translates the view section into tabview options.
func (c Config) ViewOptions() ([]tabview.Option, error) {
	mode, err := tabview.ParseCSVMode(c.View.CSVMode)
	if err != nil {
		return nil, err
	}
	opts := []tabview.Option{tabview.WithCSVMode(mode)}
	if c.View.Locale != "" {
		tag, err := language.Parse(c.View.Locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", c.View.Locale, err)
		}
		opts = append(opts, tabview.WithLocale(tag))
	}
	if c.View.Title != "" {
		opts = append(opts, tabview.WithTitle(c.View.Title))
	}
	if c.View.Searchable != nil {
		opts = append(opts, tabview.WithSearchable(*c.View.Searchable))
	}
	if c.View.Exportable != nil {
		opts = append(opts, tabview.WithExportable(*c.View.Exportable))
	}
	return opts, nil
}

// BoolValue dereferences b, returning def when nil.
func BoolValue(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// Marshal renders cfg as YAML, or TOML when format is "toml".
func Marshal(cfg Config, format string) ([]byte, error) {
	if strings.EqualFold(format, "toml") {
		return toml.Marshal(cfg)
	}
	return yaml.Marshal(cfg)
}
