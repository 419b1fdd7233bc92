package loader

import (
	"errors"
	"fmt"
	"sort"

	"github.com/oakwood-commons/frota/pkg/tabview"
)

// ErrNotTabular is returned when decoded data has no row collection.
var ErrNotTabular = errors.New("input is not a collection of records")

// Rows converts decoded documents into table rows. Accepted shapes:
//   - an array of objects
//   - one object per document (NDJSON, multi-document YAML)
//   - a single object holding exactly one array of objects, such as
//     {"pagamentos": [...]} or a TOML file with [[pagamentos]] tables
func Rows(docs []any) ([]tabview.Row, error) {
	if len(docs) == 1 {
		return rowsFromRoot(docs[0])
	}
	out := make([]tabview.Row, 0, len(docs))
	for i, d := range docs {
		m, ok := asObject(d)
		if !ok {
			return nil, fmt.Errorf("%w: document %d is %T", ErrNotTabular, i+1, d)
		}
		out = append(out, tabview.RowOf(m))
	}
	return out, nil
}

func rowsFromRoot(root any) ([]tabview.Row, error) {
	if list, ok := root.([]any); ok {
		return rowsFromList(list)
	}
	m, ok := asObject(root)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotTabular, root)
	}

	var lists []string
	for k, v := range m {
		if list, ok := v.([]any); ok && isObjectList(list) {
			lists = append(lists, k)
		}
	}
	switch len(lists) {
	case 0:
		return []tabview.Row{tabview.RowOf(m)}, nil
	case 1:
		return rowsFromList(m[lists[0]].([]any))
	default:
		sort.Strings(lists)
		return nil, fmt.Errorf("%w: several record lists %v, pick one with a CEL expression or a dedicated file", ErrNotTabular, lists)
	}
}

func rowsFromList(list []any) ([]tabview.Row, error) {
	out := make([]tabview.Row, len(list))
	for i, item := range list {
		m, ok := asObject(item)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T", ErrNotTabular, i, item)
		}
		out[i] = tabview.RowOf(m)
	}
	return out, nil
}

func isObjectList(list []any) bool {
	if len(list) == 0 {
		return false
	}
	for _, item := range list {
		if _, ok := asObject(item); !ok {
			return false
		}
	}
	return true
}

// asObject accepts the map shapes produced by the JSON, YAML and TOML decoders.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// InferColumns derives a schema from the union of row keys, in sorted order.
// Every inferred column is sortable and labelled with its key.
func InferColumns(rows []tabview.Row) []tabview.ColumnSpec {
	seen := map[string]struct{}{}
	for _, r := range rows {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cols := make([]tabview.ColumnSpec, len(keys))
	for i, k := range keys {
		cols[i] = tabview.ColumnSpec{Key: k, Label: k, Sortable: true}
	}
	return cols
}
