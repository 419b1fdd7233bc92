package tabview

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindStructured
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindStructured:
		return "structured"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a single cell value. The zero Value is Null.
type Value struct {
	kind Kind
	str  string
	num  float64
	bool bool
	obj  any
}

// Null returns the null value.
func Null() Value { return Value{} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a number.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, bool: b} }

// Structured wraps a nested map or slice. A nil argument yields Null.
func Structured(v any) Value {
	if v == nil {
		return Null()
	}
	return Value{kind: KindStructured, obj: v}
}

// ValueOf converts a decoded JSON/YAML/TOML value (or a plain Go scalar) into a Value.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case string:
		return String(t)
	case []byte:
		return String(string(t))
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return Number(f)
		}
		return String(t.String())
	case time.Time:
		return String(t.Format(time.RFC3339))
	case fmt.Stringer:
		// Stringers that are also numeric kinds fall through to reflection below.
		if !isNumericKind(reflect.ValueOf(v).Kind()) {
			return String(t.String())
		}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() { //nolint:exhaustive // remaining kinds are structured or stringified
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())
	case reflect.String:
		return String(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if (rv.Kind() == reflect.Map || rv.Kind() == reflect.Slice) && rv.IsNil() {
			return Null()
		}
		return Structured(v)
	default:
		return String(fmt.Sprint(v))
	}
}

func isNumericKind(k reflect.Kind) bool {
	switch k { //nolint:exhaustive // only numeric kinds matter
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Num returns the numeric payload and whether v is a number.
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// Boolean returns the boolean payload and whether v is a bool.
func (v Value) Boolean() (bool, bool) { return v.bool, v.kind == KindBool }

// Interface returns v as a plain Go value suitable for encoders and CEL.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.bool
	case KindStructured:
		return v.obj
	default:
		return nil
	}
}

// Text is the textual representation used for searching. Null is "null",
// numbers use their shortest decimal form and structured values are compact JSON.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.bool)
	case KindStructured:
		if b, err := json.Marshal(v.obj); err == nil {
			return string(b)
		}
		return fmt.Sprint(v.obj)
	default:
		return ""
	}
}

// Raw is the export form: Text, except Null exports as an empty field.
func (v Value) Raw() string {
	if v.kind == KindNull {
		return ""
	}
	return v.Text()
}

// Display is what a cell shows without a renderer. Null renders empty.
func (v Value) Display() string {
	return v.Raw()
}

// MarshalJSON encodes the underlying value.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// MarshalYAML encodes the underlying value.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

func (v Value) String() string { return v.Text() }

func formatNumber(n float64) string {
	if n == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// kindRank orders kinds for sorting: null, bool, number, string, structured.
var kindRank = [...]int{
	KindNull:       0,
	KindBool:       1,
	KindNumber:     2,
	KindString:     3,
	KindStructured: 4,
}

// Compare orders two values. Values of different kinds order by kind rank
// (null, bool, number, string, structured). Within a kind, numbers compare
// numerically, strings by their bytes, booleans false before true and
// structured values by their JSON text. Nulls are equal to each other.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return cmp.Compare(kindRank[a.kind], kindRank[b.kind])
	}
	switch a.kind {
	case KindNumber:
		return cmp.Compare(a.num, b.num)
	case KindString:
		return strings.Compare(a.str, b.str)
	case KindBool:
		switch {
		case a.bool == b.bool:
			return 0
		case !a.bool:
			return -1
		default:
			return 1
		}
	case KindStructured:
		return strings.Compare(a.Text(), b.Text())
	default:
		return 0
	}
}
