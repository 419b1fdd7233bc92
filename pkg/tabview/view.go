// Package tabview implements a searchable, sortable and exportable table view
// over an in-memory row collection. A View never fetches data; callers hand it
// a column schema and rows and drive it with search and sort interactions.
package tabview

import (
	"slices"

	"golang.org/x/text/language"
)

const (
	// NoResultsPlaceholder is shown instead of an empty table body.
	NoResultsPlaceholder = "Nenhum resultado encontrado"
	// SearchPlaceholder is the hint shown in an empty search input.
	SearchPlaceholder = "Buscar..."
	// ExportLabel names the export action.
	ExportLabel = "Exportar"
	// DefaultTitle is used for the export file name when no title is set.
	DefaultTitle = "data"

	sortIndicatorAsc  = "▲"
	sortIndicatorDesc = "▼"
)

// ViewState is the interactive state of a View. It is never persisted.
type ViewState struct {
	SearchTerm    string
	SortKey       string // "" means input order
	SortDirection Direction
}

// View presents a filtered, sorted projection of its rows.
type View struct {
	columns    []ColumnSpec
	data       []Row
	searchable bool
	exportable bool
	title      string
	locale     language.Tag
	csvMode    CSVMode
	lower      Lowerer

	state ViewState
}

// Option configures a View.
type Option func(*View)

// WithColumns sets the column schema.
func WithColumns(columns ...ColumnSpec) Option {
	return func(v *View) {
		v.columns = columns
	}
}

// WithData sets the row collection.
func WithData(rows []Row) Option {
	return func(v *View) {
		v.data = rows
	}
}

// WithSearchable toggles the search step. Defaults to true.
func WithSearchable(on bool) Option {
	return func(v *View) {
		v.searchable = on
	}
}

// WithExportable toggles the export action. Defaults to true.
func WithExportable(on bool) Option {
	return func(v *View) {
		v.exportable = on
	}
}

// WithTitle sets the table title, which also names the export file.
func WithTitle(title string) Option {
	return func(v *View) {
		v.title = title
	}
}

// WithLocale selects the lowercasing rules used by search.
func WithLocale(tag language.Tag) Option {
	return func(v *View) {
		v.locale = tag
	}
}

// WithCSVMode selects how exported fields are written. Defaults to CSVRaw.
func WithCSVMode(mode CSVMode) Option {
	return func(v *View) {
		v.csvMode = mode
	}
}

// New creates a View with fresh state.
func New(opts ...Option) *View {
	v := &View{
		searchable: true,
		exportable: true,
		locale:     language.Und,
		csvMode:    CSVRaw,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.lower = LocaleLowerer(v.locale)
	return v
}

// Columns returns the column schema.
func (v *View) Columns() []ColumnSpec { return v.columns }

// Data returns the full row collection in input order.
func (v *View) Data() []Row { return v.data }

// SetData replaces the rows, keeping the current search and sort.
func (v *View) SetData(rows []Row) { v.data = rows }

// Searchable reports whether the search step is active.
func (v *View) Searchable() bool { return v.searchable }

// Exportable reports whether export is offered.
func (v *View) Exportable() bool { return v.exportable }

// Title returns the configured title, possibly empty.
func (v *View) Title() string { return v.title }

// State returns a copy of the current state.
func (v *View) State() ViewState { return v.state }

// Column looks up a column by key.
func (v *View) Column(key string) (ColumnSpec, bool) {
	i := slices.IndexFunc(v.columns, func(c ColumnSpec) bool { return c.Key == key })
	if i < 0 {
		return ColumnSpec{}, false
	}
	return v.columns[i], true
}

// SetSearch updates the search term. The projection is recomputed on the
// next read; there is no debouncing.
func (v *View) SetSearch(term string) {
	v.state.SearchTerm = term
}

// ToggleSort handles a click on the header of key. Clicking the current sort
// column flips the direction; clicking another sortable column sorts by it
// ascending. Unknown and non-sortable columns are ignored. It reports whether
// the state changed.
func (v *View) ToggleSort(key string) bool {
	col, ok := v.Column(key)
	if !ok || !col.Sortable {
		return false
	}
	if v.state.SortKey == key {
		v.state.SortDirection = v.state.SortDirection.Toggle()
		return true
	}
	v.state.SortKey = key
	v.state.SortDirection = Ascending
	return true
}

// SortBy sets the sort column and direction directly. The same sortable
// check as ToggleSort applies.
func (v *View) SortBy(key string, dir Direction) bool {
	col, ok := v.Column(key)
	if !ok || !col.Sortable {
		return false
	}
	v.state.SortKey = key
	v.state.SortDirection = dir
	return true
}

// Projection returns the rows currently shown: filtered, then sorted. The
// result is a fresh slice the caller may reorder.
func (v *View) Projection() []Row {
	rows := v.data
	if v.searchable {
		rows = Filter(rows, v.state.SearchTerm, v.lower)
	}
	return Sort(rows, v.state.SortKey, v.state.SortDirection)
}

// Cell returns the text shown for col in row.
func (v *View) Cell(row Row, col ColumnSpec) string {
	val := row.Get(col.Key)
	if col.Renderer != nil {
		return col.Renderer(val, row)
	}
	return val.Display()
}

// Header is a rendered column header.
type Header struct {
	Key       string
	Label     string
	Sortable  bool
	Sorted    bool
	Direction Direction
}

// Indicator returns the sort arrow for the header, or "" when unsorted.
func (h Header) Indicator() string {
	if !h.Sorted {
		return ""
	}
	if h.Direction == Descending {
		return sortIndicatorDesc
	}
	return sortIndicatorAsc
}

// Title returns the label followed by the sort indicator, if any.
func (h Header) Title() string {
	if ind := h.Indicator(); ind != "" {
		return h.Label + " " + ind
	}
	return h.Label
}

// RenderedTable is the display-ready projection.
type RenderedTable struct {
	Title       string
	Headers     []Header
	Rows        [][]string
	Empty       bool
	Placeholder string
}

// Render builds the display-ready projection.
func (v *View) Render() RenderedTable {
	headers := make([]Header, len(v.columns))
	for i, c := range v.columns {
		headers[i] = Header{
			Key:       c.Key,
			Label:     c.Label,
			Sortable:  c.Sortable,
			Sorted:    c.Sortable && c.Key == v.state.SortKey,
			Direction: v.state.SortDirection,
		}
	}

	rows := v.Projection()
	cells := make([][]string, len(rows))
	for i, row := range rows {
		line := make([]string, len(v.columns))
		for j, c := range v.columns {
			line[j] = v.Cell(row, c)
		}
		cells[i] = line
	}

	out := RenderedTable{
		Title:   v.title,
		Headers: headers,
		Rows:    cells,
	}
	if len(rows) == 0 {
		out.Empty = true
		out.Placeholder = NoResultsPlaceholder
	}
	return out
}
