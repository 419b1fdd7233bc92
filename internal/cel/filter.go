package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"

	"github.com/oakwood-commons/frota/pkg/tabview"
)

// Predicate is a compiled boolean row expression.
type Predicate struct {
	expr string
	prg  cel.Program
}

// Predicate compiles a boolean expression over "row", such as
// `row.status == "Pago" && row.valor > 800.0`.
func (e *Evaluator) Predicate(expr string) (*Predicate, error) {
	prg, err := e.program(expr)
	if err != nil {
		return nil, err
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Predicate) String() string { return p.expr }

// Match evaluates the predicate against row.
func (p *Predicate) Match(row tabview.Row) (bool, error) {
	out, _, err := p.prg.Eval(map[string]any{rowVar: row.Map(), docVar: nil})
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.expr, err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("%w: %q returned %v", ErrNotBool, p.expr, out.Type())
	}
	return bool(b), nil
}

// Filter keeps the rows matching p, preserving order. Evaluation stops at the
// first error.
func (p *Predicate) Filter(rows []tabview.Row) ([]tabview.Row, error) {
	out := make([]tabview.Row, 0, len(rows))
	for i, r := range rows {
		ok, err := p.Match(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}
