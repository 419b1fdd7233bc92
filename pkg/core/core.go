// Package core is the embeddable pipeline behind the frota CLI: decode
// input documents, pick the record list, filter the rows and build a
// tabview.View over them.
package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/frota/internal/cel"
	"github.com/oakwood-commons/frota/pkg/loader"
	"github.com/oakwood-commons/frota/pkg/tabview"
)

// Selector picks a value out of a decoded document.
type Selector interface {
	Select(expr string, doc any) (any, error)
}

// RowFilter keeps the rows matching a predicate expression.
type RowFilter interface {
	Filter(expr string, rows []tabview.Row) ([]tabview.Row, error)
}

// Engine holds the pluggable stages of the pipeline.
type Engine struct {
	Selector Selector
	Filter   RowFilter
	Logger   logr.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithSelector sets a custom selector.
func WithSelector(s Selector) Option {
	return func(e *Engine) {
		e.Selector = s
	}
}

// WithFilter sets a custom row filter.
func WithFilter(f RowFilter) Option {
	return func(e *Engine) {
		e.Filter = f
	}
}

// WithLogger sets the logger used for decode diagnostics.
func WithLogger(lgr logr.Logger) Option {
	return func(e *Engine) {
		e.Logger = lgr
	}
}

// New creates an Engine. Unset stages default to CEL.
func New(opts ...Option) (*Engine, error) {
	engine := &Engine{Logger: logr.Discard()}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.Selector == nil || engine.Filter == nil {
		ev, err := cel.NewEvaluator()
		if err != nil {
			return nil, err
		}
		if engine.Selector == nil {
			engine.Selector = ev
		}
		if engine.Filter == nil {
			engine.Filter = celFilter{ev: ev}
		}
	}
	return engine, nil
}

// LoadFile decodes a file, using its extension as a format hint.
func (e *Engine) LoadFile(path string) ([]any, error) {
	return loader.ReadFile(path, e.Logger)
}

// LoadBytes decodes data in the given format; loader.FormatAuto detects it.
func (e *Engine) LoadBytes(data []byte, format loader.Format) ([]any, error) {
	return loader.Decode(data, format, e.Logger)
}

// LoadReader decodes everything read from r.
func (e *Engine) LoadReader(r io.Reader, format loader.Format) ([]any, error) {
	return loader.Read(r, format, e.Logger)
}

// Rows turns decoded documents into rows. A non-empty selectExpr is
// evaluated first; a single document is bound to "_" directly and several
// documents are bound as a list.
func (e *Engine) Rows(docs []any, selectExpr string) ([]tabview.Row, error) {
	if strings.TrimSpace(selectExpr) != "" {
		if e == nil || e.Selector == nil {
			return nil, fmt.Errorf("selector is not configured")
		}
		var doc any = docs
		if len(docs) == 1 {
			doc = docs[0]
		}
		out, err := e.Selector.Select(selectExpr, doc)
		if err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
		docs = []any{out}
	}
	return loader.Rows(docs)
}

// Where keeps the rows matching expr. An empty expr keeps every row.
func (e *Engine) Where(rows []tabview.Row, expr string) ([]tabview.Row, error) {
	if strings.TrimSpace(expr) == "" {
		return rows, nil
	}
	if e == nil || e.Filter == nil {
		return nil, fmt.Errorf("row filter is not configured")
	}
	out, err := e.Filter.Filter(expr, rows)
	if err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}
	return out, nil
}

// Table builds a view over rows. Nil columns are inferred from the row keys.
func (e *Engine) Table(rows []tabview.Row, columns []tabview.ColumnSpec, opts ...tabview.Option) (*tabview.View, error) {
	if columns == nil {
		columns = loader.InferColumns(rows)
	}
	if err := tabview.ValidateColumns(columns); err != nil {
		return nil, err
	}
	base := []tabview.Option{tabview.WithColumns(columns...), tabview.WithData(rows)}
	return tabview.New(append(base, opts...)...), nil
}

type celFilter struct {
	ev *cel.Evaluator
}

func (f celFilter) Filter(expr string, rows []tabview.Row) ([]tabview.Row, error) {
	pred, err := f.ev.Predicate(expr)
	if err != nil {
		return nil, err
	}
	return pred.Filter(rows)
}
