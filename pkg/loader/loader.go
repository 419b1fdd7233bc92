// Package loader decodes row data from JSON, NDJSON, YAML, TOML and CSV and
// turns the decoded documents into tabview rows.
package loader

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names an input encoding.
type Format string

const (
	FormatAuto   Format = ""
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatCSV    Format = "csv"
)

// ErrEmptyInput is returned for blank input.
var ErrEmptyInput = errors.New("empty input")

var (
	tomlSectionPattern  = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".csv":
		return FormatCSV
	default:
		return FormatAuto
	}
}

// Detect guesses the format of input from its content.
func Detect(input string) Format {
	input = strings.TrimSpace(input)
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return FormatYAML
	}
	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		return FormatNDJSON
	}
	// [section] headers look like JSON arrays, so TOML is checked first
	if isLikelyTOML(lines) {
		return FormatTOML
	}
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		return FormatJSON
	}
	if isLikelyCSV(input) {
		return FormatCSV
	}
	return FormatYAML
}

// Decode parses input in the given format; FormatAuto detects it. The result
// is one element per document.
func Decode(input []byte, format Format, lgr logr.Logger) ([]any, error) {
	text := strings.TrimSpace(string(input))
	if text == "" {
		return nil, ErrEmptyInput
	}
	if format == FormatAuto {
		format = Detect(text)
		lgr.V(1).Info("detected input format", "format", format)
	}

	docs, err := decodeAs(text, format)
	if err == nil {
		return docs, nil
	}

	// Content heuristics can misfire; try the remaining decoders before giving up.
	for _, alt := range []Format{FormatJSON, FormatYAML, FormatTOML, FormatNDJSON} {
		if alt == format {
			continue
		}
		if alt2, altErr := decodeAs(text, alt); altErr == nil {
			lgr.V(1).Info("input decoded with fallback format", "wanted", format, "used", alt, "error", err.Error())
			return alt2, nil
		}
	}
	return nil, err
}

func decodeAs(text string, format Format) ([]any, error) {
	switch format {
	case FormatJSON:
		return loadJSON(text)
	case FormatNDJSON:
		return loadNDJSON(text)
	case FormatTOML:
		return loadTOML(text)
	case FormatCSV:
		return loadCSV(text)
	default:
		return loadYAML(text)
	}
}

// ReadFile reads and decodes a file, using its extension as a format hint.
func ReadFile(path string, lgr logr.Logger) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	docs, err := Decode(data, FormatFromPath(path), lgr)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return docs, nil
}

// Read decodes everything from r.
func Read(r io.Reader, format Format, lgr logr.Logger) ([]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return Decode(data, format, lgr)
}

func loadJSON(input string) ([]any, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("invalid JSON: trailing data after document")
	}
	return []any{data}, nil
}

// loadYAML accepts one or more documents separated by ---.
func loadYAML(input string) ([]any, error) {
	var results []any
	dec := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		if doc != nil {
			results = append(results, doc)
		}
	}
	if len(results) == 0 {
		return nil, errors.New("no documents found in YAML input")
	}
	return results, nil
}

// loadNDJSON parses one JSON value per line; blank lines are skipped.
func loadNDJSON(input string) ([]any, error) {
	lines := strings.Split(input, "\n")
	results := make([]any, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var obj any
		dec := json.NewDecoder(strings.NewReader(line))
		dec.UseNumber()
		if err := dec.Decode(&obj); err != nil {
			return nil, fmt.Errorf("invalid NDJSON on line %d: %w", i+1, err)
		}
		results = append(results, obj)
	}
	if len(results) == 0 {
		return nil, ErrEmptyInput
	}
	return results, nil
}

func loadTOML(input string) ([]any, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return []any{data}, nil
}

// loadCSV turns a header row plus data rows into one object per data row.
func loadCSV(input string) ([]any, error) {
	reader := csv.NewReader(strings.NewReader(input))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(records) == 0 {
		return []any{[]any{}}, nil
	}
	headers := records[0]
	out := make([]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]any, len(headers))
		for j, h := range headers {
			if j < len(rec) {
				row[h] = rec[j]
			} else {
				row[h] = ""
			}
		}
		out = append(out, row)
	}
	return []any{out}, nil
}

// isLikelyNDJSON requires several non-empty lines, most of them starting like
// a JSON object or array.
func isLikelyNDJSON(lines []string) bool {
	jsonCount, nonEmpty := 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}
	if nonEmpty <= 1 || jsonCount <= nonEmpty/2 {
		return false
	}
	// a pretty-printed JSON document also starts lines with { and [
	var probe any
	return json.Unmarshal([]byte(strings.TrimSpace(lines[0])), &probe) == nil
}

// isLikelyTOML looks for [section] headers or a majority of key = value lines.
func isLikelyTOML(lines []string) bool {
	sections, keyValues, nonEmpty := 0, 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSectionPattern.MatchString(line) {
			sections++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValues++
		}
	}
	return sections > 0 || (nonEmpty > 0 && keyValues > nonEmpty/2)
}

// isLikelyCSV requires a multi-column header and content YAML cannot parse
// as a mapping or sequence.
func isLikelyCSV(input string) bool {
	reader := csv.NewReader(strings.NewReader(input))
	first, err := reader.Read()
	if err != nil || len(first) < 2 {
		return false
	}
	var probe any
	if err := yaml.Unmarshal([]byte(input), &probe); err != nil {
		return true
	}
	_, isString := probe.(string)
	return isString && bytes.Count([]byte(input), []byte("\n")) > 0
}
