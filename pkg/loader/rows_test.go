package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/frota/pkg/tabview"
)

func TestRows(t *testing.T) {
	t.Run("array of objects", func(t *testing.T) {
		rows, err := Rows([]any{[]any{
			map[string]any{"a": 1},
			map[string]any{"a": 2},
		}})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("object wrapping one list", func(t *testing.T) {
		rows, err := Rows([]any{map[string]any{
			"titulo": "Frota",
			"veiculos": []any{
				map[string]any{"placa": "abc-1234"},
			},
		}})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, tabview.String("abc-1234"), rows[0].Get("placa"))
	})

	t.Run("single object is one row", func(t *testing.T) {
		rows, err := Rows([]any{map[string]any{"a": 1, "tags": []any{"x"}}})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, tabview.KindStructured, rows[0].Get("tags").Kind())
	})

	t.Run("one row per document", func(t *testing.T) {
		rows, err := Rows([]any{
			map[string]any{"a": 1},
			map[any]any{"a": 2},
		})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, tabview.Number(2), rows[1].Get("a"))
	})

	t.Run("ambiguous lists", func(t *testing.T) {
		_, err := Rows([]any{map[string]any{
			"a": []any{map[string]any{"x": 1}},
			"b": []any{map[string]any{"y": 1}},
		}})
		assert.ErrorIs(t, err, ErrNotTabular)
	})

	t.Run("scalars", func(t *testing.T) {
		_, err := Rows([]any{[]any{1, 2}})
		assert.ErrorIs(t, err, ErrNotTabular)
		_, err = Rows([]any{"text"})
		assert.ErrorIs(t, err, ErrNotTabular)
	})
}

func TestInferColumns(t *testing.T) {
	rows := []tabview.Row{
		tabview.RowOf(map[string]any{"valor": 1, "status": "Pago"}),
		tabview.RowOf(map[string]any{"data": "2024-12-15"}),
	}
	cols := InferColumns(rows)
	require.Len(t, cols, 3)
	assert.Equal(t, []string{"data", "status", "valor"}, []string{cols[0].Key, cols[1].Key, cols[2].Key})
	for _, c := range cols {
		assert.True(t, c.Sortable)
		assert.Equal(t, c.Key, c.Label)
	}
	assert.Empty(t, InferColumns(nil))
}
