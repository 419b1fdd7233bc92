package tabview

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValueOf(t *testing.T) {
	ts := time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC)
	var nilMap map[string]any

	tests := []struct {
		name     string
		in       any
		wantKind Kind
		wantText string
		wantRaw  string
	}{
		{"nil", nil, KindNull, "null", ""},
		{"string", "Pago", KindString, "Pago", "Pago"},
		{"int", 850, KindNumber, "850", "850"},
		{"int64", int64(-3), KindNumber, "-3", "-3"},
		{"uint8", uint8(7), KindNumber, "7", "7"},
		{"float", 2.5, KindNumber, "2.5", "2.5"},
		{"negative zero", -0.0, KindNumber, "0", "0"},
		{"json number", json.Number("4500"), KindNumber, "4500", "4500"},
		{"bool", true, KindBool, "true", "true"},
		{"time", ts, KindString, "2024-12-15T10:00:00Z", "2024-12-15T10:00:00Z"},
		{"map", map[string]any{"a": 1}, KindStructured, `{"a":1}`, `{"a":1}`},
		{"slice", []any{"x", 2}, KindStructured, `["x",2]`, `["x",2]`},
		{"nil map", nilMap, KindNull, "null", ""},
		{"value passthrough", String("v"), KindString, "v", "v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValueOf(tt.in)
			assert.Equal(t, tt.wantKind, v.Kind())
			assert.Equal(t, tt.wantText, v.Text())
			assert.Equal(t, tt.wantRaw, v.Raw())
		})
	}
}

func TestValuePointerDeref(t *testing.T) {
	n := 42
	assert.Equal(t, Number(42), ValueOf(&n))
	var np *int
	assert.True(t, ValueOf(np).IsNull())
}

func TestValueMarshalJSON(t *testing.T) {
	row := Row{"valor": Number(850), "status": String("Pago"), "obs": Null()}
	b, err := json.Marshal(row)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"valor":850,"status":"Pago","obs":null}`, string(b))
}

func TestRowOf(t *testing.T) {
	row := RowOf(map[string]any{"ano": 2022, "cor": "Branco", "renavam": nil})
	assert.Equal(t, Number(2022), row.Get("ano"))
	assert.Equal(t, String("Branco"), row.Get("cor"))
	assert.True(t, row.Get("renavam").IsNull())
	assert.True(t, row.Get("absent").IsNull())
	assert.Equal(t, map[string]any{"ano": float64(2022), "cor": "Branco", "renavam": nil}, row.Map())
}

func TestValidateColumns(t *testing.T) {
	assert.ErrorIs(t, ValidateColumns(nil), ErrNoColumns)
	assert.ErrorIs(t, ValidateColumns([]ColumnSpec{{Key: ""}}), ErrEmptyColumn)
	assert.ErrorIs(t, ValidateColumns([]ColumnSpec{{Key: "a"}, {Key: "a"}}), ErrDuplicateKey)
	assert.NoError(t, ValidateColumns([]ColumnSpec{{Key: "a"}, {Key: "b"}}))
}

func TestDirection(t *testing.T) {
	assert.Equal(t, Descending, Ascending.Toggle())
	assert.Equal(t, Ascending, Descending.Toggle())
	d, ok := ParseDirection("DESC")
	assert.True(t, ok)
	assert.Equal(t, Descending, d)
	_, ok = ParseDirection("sideways")
	assert.False(t, ok)
}
