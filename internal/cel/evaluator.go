// Package cel evaluates CEL expressions over loaded documents and table rows.
// Document expressions see the decoded input as "_"; row predicates see the
// current record as "row".
package cel

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"
)

const (
	docVar = "_"
	rowVar = "row"
)

// ErrNotBool is returned when a predicate evaluates to a non-boolean value.
var ErrNotBool = errors.New("expression did not evaluate to a bool")

// Evaluator compiles and evaluates CEL expressions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator with the string, encoder, list and math
// extensions enabled.
func NewEvaluator() (*Evaluator, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

func newEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	all := []cel.EnvOption{
		cel.Variable(docVar, cel.DynType),
		cel.Variable(rowVar, cel.MapType(cel.StringType, cel.DynType)),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	}
	return cel.NewEnv(append(all, opts...)...)
}

func (e *Evaluator) program(expr string) (cel.Program, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return prg, nil
}

// Select evaluates expr with the decoded document bound to "_" and returns
// the result as plain Go values. It picks the record list out of a larger
// document, e.g. "_.frota.veiculos".
func (e *Evaluator) Select(expr string, doc any) (any, error) {
	prg, err := e.program(expr)
	if err != nil {
		return nil, err
	}
	out, _, err := prg.Eval(map[string]any{docVar: doc, rowVar: map[string]any{}})
	if err != nil {
		return nil, fmt.Errorf("eval error: %w", err)
	}
	return ToGo(out), nil
}

// ToGo converts CEL values to plain Go values recursively.
func ToGo(val ref.Val) any {
	if val == nil {
		return nil
	}
	switch v := val.(type) {
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	case types.Null:
		return nil
	}

	valuer, ok := val.(interface{ Value() any })
	if !ok {
		return val
	}
	return fromNative(valuer.Value())
}

func fromNative(inner any) any {
	switch t := inner.(type) {
	case ref.Val:
		return ToGo(t)
	case []ref.Val:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = ToGo(elem)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = fromNative(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			out[k] = fromNative(v)
		}
		return out
	case map[ref.Val]ref.Val:
		out := make(map[string]any, len(t))
		for k, v := range t {
			key := fmt.Sprint(k)
			if kv, ok := k.(interface{ Value() any }); ok {
				key = fmt.Sprint(kv.Value())
			}
			out[key] = ToGo(v)
		}
		return out
	default:
		return inner
	}
}
