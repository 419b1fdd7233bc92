// Package render holds the named cell renderers that column schemas can
// reference from configuration files.
package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/oakwood-commons/frota/pkg/tabview"
)

const isoDate = "2006-01-02"

var brl = message.NewPrinter(language.BrazilianPortuguese)

// Currency formats numbers as Brazilian reais ("R$ 2.550,00"). Non-numeric
// values are shown unchanged.
func Currency(v tabview.Value, _ tabview.Row) string {
	n, ok := v.Num()
	if !ok {
		return v.Display()
	}
	return brl.Sprintf("R$ %.2f", n)
}

// Date shows ISO dates (2024-12-15) as dd/mm/yyyy. Anything else is shown
// unchanged.
func Date(v tabview.Value, _ tabview.Row) string {
	s, ok := v.Str()
	if !ok {
		return v.Display()
	}
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}

// positive statuses get a filled badge
var positiveStatus = map[string]bool{
	"pago":       true,
	"ativo":      true,
	"disponível": true,
	"concluída":  true,
	"alugado":    true,
}

// Status renders a status as a badge: "● Pago" for settled/active states and
// "○ Pendente" for everything else.
func Status(v tabview.Value, _ tabview.Row) string {
	s := v.Display()
	if s == "" {
		return ""
	}
	if positiveStatus[strings.ToLower(s)] {
		return "● " + s
	}
	return "○ " + s
}

// Upper uppercases the display text.
func Upper(v tabview.Value, _ tabview.Row) string {
	return strings.ToUpper(v.Display())
}

// PaymentActions lists the actions for a payment row. Paid rows also offer
// the receipt.
func PaymentActions(_ tabview.Value, row tabview.Row) string {
	if s, _ := row.Get("status").Str(); s == "Pago" {
		return "Ver | PDF"
	}
	return "Ver"
}

// DetailsAction is the single action offered on rental rows.
func DetailsAction(tabview.Value, tabview.Row) string {
	return "Detalhes"
}

var registry = map[string]tabview.Renderer{
	"currency":        Currency,
	"date":            Date,
	"status":          Status,
	"upper":           Upper,
	"payment-actions": PaymentActions,
	"details":         DetailsAction,
}

// ByName returns a named renderer. The empty name yields nil, meaning raw
// display text.
func ByName(name string) (tabview.Renderer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "raw" {
		return nil, nil
	}
	r, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown renderer %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return r, nil
}

// Names lists the registered renderer names.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
