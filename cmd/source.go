package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oakwood-commons/frota/internal/dataset"
	"github.com/oakwood-commons/frota/internal/render"
	"github.com/oakwood-commons/frota/pkg/core"
	"github.com/oakwood-commons/frota/pkg/loader"
	"github.com/oakwood-commons/frota/pkg/logger"
	"github.com/oakwood-commons/frota/pkg/settings"
	"github.com/oakwood-commons/frota/pkg/tabview"
)

// source is what a run reads before shaping: rows plus the schema and title
// that come with them.
type source struct {
	title   string
	columns []tabview.ColumnSpec
	rows    []tabview.Row
}

func loadSource(ctx context.Context, stdin io.Reader) (source, error) {
	run := settings.FromContextOrDefault(ctx)
	lgr := logger.FromContext(ctx)

	if run.Source.Dataset != "" {
		if selectExpr != "" {
			return source{}, fmt.Errorf("--select cannot be used with --dataset")
		}
		ds, err := dataset.Get(run.Source.Dataset)
		if err != nil {
			return source{}, err
		}
		lgr.V(1).Info("loaded dataset", logger.DatasetKey, ds.Name, logger.RowsKey, len(ds.Rows))
		return source{title: ds.Title, columns: ds.Columns, rows: ds.Rows}, nil
	}

	engine, err := core.New(core.WithLogger(*lgr))
	if err != nil {
		return source{}, err
	}
	format, err := parseInputFormat(inputFormat)
	if err != nil {
		return source{}, err
	}
	var docs []any
	switch {
	case run.Source.Path != "" && format == loader.FormatAuto:
		docs, err = engine.LoadFile(run.Source.Path)
	case run.Source.Path != "":
		var data []byte
		if data, err = os.ReadFile(run.Source.Path); err != nil {
			return source{}, fmt.Errorf("read %s: %w", run.Source.Path, err)
		}
		docs, err = engine.LoadBytes(data, format)
	default:
		docs, err = engine.LoadReader(stdin, format)
	}
	if err != nil {
		return source{}, err
	}

	rows, err := engine.Rows(docs, selectExpr)
	if err != nil {
		return source{}, err
	}
	lgr.V(1).Info("loaded input", logger.RowsKey, len(rows))
	return source{columns: loader.InferColumns(rows), rows: rows}, nil
}

func parseInputFormat(s string) (loader.Format, error) {
	switch f := loader.Format(strings.ToLower(strings.TrimSpace(s))); f {
	case loader.FormatAuto, loader.FormatJSON, loader.FormatNDJSON, loader.FormatYAML, loader.FormatTOML, loader.FormatCSV:
		return f, nil
	case "yml":
		return loader.FormatYAML, nil
	default:
		return loader.FormatAuto, fmt.Errorf("unknown input format %q (expected json, ndjson, yaml, toml or csv)", s)
	}
}

func filterRows(rows []tabview.Row, expr string) ([]tabview.Row, error) {
	if strings.TrimSpace(expr) == "" {
		return rows, nil
	}
	engine, err := core.New()
	if err != nil {
		return nil, err
	}
	return engine.Where(rows, expr)
}

// applyRenderers attaches the renderers named by key=renderer pairs.
func applyRenderers(columns []tabview.ColumnSpec, pairs []string) ([]tabview.ColumnSpec, error) {
	if len(pairs) == 0 {
		return columns, nil
	}
	out := append([]tabview.ColumnSpec(nil), columns...)
	for _, pair := range pairs {
		key, name, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("--render %q: expected key=renderer", pair)
		}
		fn, err := render.ByName(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("--render %q: %w", pair, err)
		}
		found := false
		for i := range out {
			if out[i].Key == strings.TrimSpace(key) {
				out[i].Renderer = fn
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("--render %q: no column %q", pair, key)
		}
	}
	return out, nil
}
