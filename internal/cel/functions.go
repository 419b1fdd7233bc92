package cel

import (
	"sort"
	"strings"

	"github.com/google/cel-go/common/decls"
	"github.com/google/cel-go/common/types"
)

// Functions lists the callable functions and macros of the evaluator as
// "name() - usage" lines, sorted.
func (e *Evaluator) Functions() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, 100)
	add := func(entry string) {
		if !seen[entry] {
			seen[entry] = true
			out = append(out, entry)
		}
	}

	for _, fn := range e.env.Functions() {
		if isOperator(fn.Name()) {
			continue
		}
		for _, o := range fn.OverloadDecls() {
			add(fn.Name() + "() - " + usage(fn.Name(), o))
		}
	}
	for _, m := range e.env.Macros() {
		if isOperator(m.Function()) {
			continue
		}
		add(m.Function() + "() - macro")
	}
	sort.Strings(out)
	return out
}

func isOperator(name string) bool {
	if strings.HasPrefix(name, "@") {
		return true
	}
	if strings.HasPrefix(name, "_") && strings.HasSuffix(name, "_") {
		return true
	}
	switch name {
	case "!_", "-_", "_[_]", "_[?_]", "_?_:_":
		return true
	}
	return false
}

func typeLabel(t *types.Type) string {
	if t == nil {
		return "any"
	}
	if name := t.DeclaredTypeName(); name != "" {
		return name
	}
	if name := t.TypeName(); name != "" {
		return name
	}
	return "any"
}

func usage(name string, o *decls.OverloadDecl) string {
	params := o.ArgTypes()
	labels := make([]string, len(params))
	for i, p := range params {
		labels[i] = typeLabel(p)
	}
	call := name + "(" + strings.Join(labels, ", ") + ")"
	if o.IsMemberFunction() && len(labels) > 0 {
		call = labels[0] + "." + name + "(" + strings.Join(labels[1:], ", ") + ")"
	}
	if r := o.ResultType(); r != nil {
		call += " -> " + typeLabel(r)
	}
	return call
}
