package tabview

import (
	"errors"
	"fmt"
)

// Row maps a column key to a cell value.
type Row map[string]Value

// RowOf converts a decoded object into a Row.
func RowOf(m map[string]any) Row {
	row := make(Row, len(m))
	for k, v := range m {
		row[k] = ValueOf(v)
	}
	return row
}

// Get returns the value stored under key, or Null when absent.
func (r Row) Get(key string) Value {
	return r[key]
}

// Map returns the row as plain Go values.
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = v.Interface()
	}
	return out
}

// Renderer maps a cell value (and its row) to the text shown in the cell.
// Renderers must be pure.
type Renderer func(value Value, row Row) string

// ColumnSpec describes one table column.
type ColumnSpec struct {
	Key      string
	Label    string
	Sortable bool
	Renderer Renderer
}

var (
	ErrNoColumns    = errors.New("no columns defined")
	ErrEmptyColumn  = errors.New("column key is empty")
	ErrDuplicateKey = errors.New("duplicate column key")
)

// ValidateColumns checks a schema for the problems that make a table
// meaningless. The view itself renders any schema; callers decide whether to
// reject it.
func ValidateColumns(columns []ColumnSpec) error {
	if len(columns) == 0 {
		return ErrNoColumns
	}
	seen := make(map[string]struct{}, len(columns))
	var errs []error
	for i, c := range columns {
		if c.Key == "" {
			errs = append(errs, fmt.Errorf("column %d: %w", i, ErrEmptyColumn))
			continue
		}
		if _, dup := seen[c.Key]; dup {
			errs = append(errs, fmt.Errorf("column %q: %w", c.Key, ErrDuplicateKey))
		}
		seen[c.Key] = struct{}{}
	}
	return errors.Join(errs...)
}
