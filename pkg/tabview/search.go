package tabview

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lowerer lowercases text for case-insensitive matching.
type Lowerer func(string) string

// LocaleLowerer lowercases using the default rules for tag. language.Und gives
// the Unicode default mapping. No accent folding is applied: "São" never
// matches "sao".
func LocaleLowerer(tag language.Tag) Lowerer {
	if tag == language.Und {
		return strings.ToLower
	}
	caser := cases.Lower(tag)
	return func(s string) string {
		return caser.String(s)
	}
}

// Filter keeps the rows where any value under any key, lowercased, contains
// the lowercased term. Every key on the row is inspected, not just the
// displayed columns. An empty term returns a copy of rows.
func Filter(rows []Row, term string, lower Lowerer) []Row {
	if term == "" {
		return slices.Clone(rows)
	}
	if lower == nil {
		lower = strings.ToLower
	}
	needle := lower(term)
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if rowMatches(row, needle, lower) {
			out = append(out, row)
		}
	}
	return out
}

func rowMatches(row Row, needle string, lower Lowerer) bool {
	for _, v := range row {
		if strings.Contains(lower(v.Text()), needle) {
			return true
		}
	}
	return false
}

// Direction is the sort direction.
type Direction uint8

const (
	Ascending Direction = iota
	Descending
)

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts asc/ascending and desc/descending.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	default:
		return Ascending, false
	}
}

// Sort returns a stably sorted copy of rows ordered by the value under key.
// An empty key keeps the input order. Descending inverts the comparison, so
// ties keep their relative order in both directions.
func Sort(rows []Row, key string, dir Direction) []Row {
	out := slices.Clone(rows)
	if key == "" {
		return out
	}
	slices.SortStableFunc(out, func(a, b Row) int {
		c := Compare(a.Get(key), b.Get(key))
		if dir == Descending {
			return -c
		}
		return c
	})
	return out
}
