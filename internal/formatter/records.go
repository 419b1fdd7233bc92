package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/frota/pkg/tabview"
)

// Format is an output format for non-interactive runs.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
)

// Formats lists the accepted output formats.
var Formats = []Format{FormatTable, FormatCSV, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat validates an --output value.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatTable, nil
	}
	if f == "yml" {
		return FormatYAML, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (expected table, csv, json, yaml or toml)", s)
}

// tomlRowsKey names the array of tables in TOML output.
const tomlRowsKey = "rows"

// orderedRecord marshals one row restricted to the schema keys, in schema order.
type orderedRecord struct {
	columns []tabview.ColumnSpec
	row     tabview.Row
}

func (r orderedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.row.Get(c.Key))
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r orderedRecord) yamlNode() (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, c := range r.columns {
		var val yaml.Node
		if err := val.Encode(r.row.Get(c.Key).Interface()); err != nil {
			return nil, fmt.Errorf("encode %s: %w", c.Key, err)
		}
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Key}, &val)
	}
	return m, nil
}

// FormatRecords serializes rows restricted to the schema columns. Values are
// raw; renderers are not applied.
func FormatRecords(columns []tabview.ColumnSpec, rows []tabview.Row, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(columns, rows)
	case FormatYAML:
		return formatYAML(columns, rows)
	case FormatTOML:
		return formatTOML(columns, rows)
	default:
		return "", fmt.Errorf("format %q is not a record format", format)
	}
}

func formatJSON(columns []tabview.ColumnSpec, rows []tabview.Row) (string, error) {
	records := make([]orderedRecord, len(rows))
	for i, r := range rows {
		records[i] = orderedRecord{columns: columns, row: r}
	}
	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}

func formatYAML(columns []tabview.ColumnSpec, rows []tabview.Row) (string, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, r := range rows {
		n, err := orderedRecord{columns: columns, row: r}.yamlNode()
		if err != nil {
			return "", err
		}
		seq.Content = append(seq.Content, n)
	}
	if len(seq.Content) == 0 {
		seq.Style = yaml.FlowStyle
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatTOML writes rows as an array of tables. TOML has no null, so null
// cells are left out.
func formatTOML(columns []tabview.ColumnSpec, rows []tabview.Row) (string, error) {
	tables := make([]map[string]any, len(rows))
	for i, r := range rows {
		m := make(map[string]any, len(columns))
		for _, c := range columns {
			if v := r.Get(c.Key); !v.IsNull() {
				m[c.Key] = v.Interface()
			}
		}
		tables[i] = m
	}
	out, err := toml.Marshal(map[string]any{tomlRowsKey: tables})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
