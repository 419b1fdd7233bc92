package tabview

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExportMIME is the media type offered with exported files.
const ExportMIME = "text/csv"

// ErrExportDisabled is returned by Export on a view that is not exportable.
var ErrExportDisabled = errors.New("export is disabled for this table")

// CSVMode selects how fields are written on export.
type CSVMode string

const (
	// CSVRaw joins raw values with commas and performs no quoting. Values
	// containing commas, quotes or newlines produce ambiguous output.
	CSVRaw CSVMode = "raw"
	// CSVQuoted quotes fields as described by RFC 4180.
	CSVQuoted CSVMode = "rfc4180"
)

// ParseCSVMode maps a config/flag string to a CSVMode.
func ParseCSVMode(s string) (CSVMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "raw":
		return CSVRaw, nil
	case "rfc4180", "quoted", "strict":
		return CSVQuoted, nil
	default:
		return CSVRaw, fmt.Errorf("unknown csv mode %q (expected raw or rfc4180)", s)
	}
}

// FileSink receives an exported file. Offer is called once per export.
type FileSink interface {
	Offer(name, mimeType string, content []byte) error
}

// FileSinkFunc adapts a function to FileSink.
type FileSinkFunc func(name, mimeType string, content []byte) error

// Offer calls f.
func (f FileSinkFunc) Offer(name, mimeType string, content []byte) error {
	return f(name, mimeType, content)
}

// DirSink writes exported files into Dir.
type DirSink struct {
	Dir string
}

// Offer writes content to Dir/name.
func (s DirSink) Offer(name, _ string, content []byte) error {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, content, 0o644); err != nil { //nolint:gosec // exported data is not secret
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriterSink writes the exported content to W and ignores the file name.
type WriterSink struct {
	W io.Writer
}

// Offer writes content to W.
func (s WriterSink) Offer(_, _ string, content []byte) error {
	_, err := s.W.Write(content)
	return err
}

// ExportFileName returns "<title>.csv", using DefaultTitle when untitled.
func (v *View) ExportFileName() string {
	title := v.title
	if title == "" {
		title = DefaultTitle
	}
	return title + ".csv"
}

// ExportCSV serializes the current projection. The first line holds the
// column labels; each following line holds the raw values of one visible row,
// in schema order. Renderers are not applied. Lines are separated by "\n"
// with no trailing newline.
func (v *View) ExportCSV() string {
	records := make([][]string, 0, len(v.data)+1)

	header := make([]string, len(v.columns))
	for i, c := range v.columns {
		header[i] = c.Label
	}
	records = append(records, header)

	for _, row := range v.Projection() {
		line := make([]string, len(v.columns))
		for i, c := range v.columns {
			line[i] = row.Get(c.Key).Raw()
		}
		records = append(records, line)
	}

	if v.csvMode == CSVQuoted {
		return quotedCSV(records)
	}
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = strings.Join(r, ",")
	}
	return strings.Join(lines, "\n")
}

func quotedCSV(records [][]string) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	// bytes.Buffer writes cannot fail
	_ = w.WriteAll(records)
	return strings.TrimSuffix(buf.String(), "\n")
}

// Export offers the current projection to sink as a CSV file.
func (v *View) Export(sink FileSink) error {
	if !v.exportable {
		return ErrExportDisabled
	}
	return sink.Offer(v.ExportFileName(), ExportMIME, []byte(v.ExportCSV()))
}
