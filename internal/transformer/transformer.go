// Package transformer cleans a freshly extracted table in place: it
// normalizes column names and coerces selected columns to dates or numbers.
//
// Coercion is total. A value that cannot be converted becomes the missing
// marker (nil); it never surfaces as an error and never survives as the raw
// string. The only fatal condition is a configured column that does not
// exist once names are normalized.
package transformer

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"salesetl/internal/table"
)

// CoerceSpec lists the columns to coerce, by normalized name.
type CoerceSpec struct {
	Dates   []string
	Numbers []string

	// Layout is an optional date layout tried before the built-in list.
	Layout string
	// DayFirst reads "08/11/2017" as 8 November instead of August 11.
	DayFirst bool
}

// DefaultSpec coerces order_date and ship_date to dates and sales to a
// number.
func DefaultSpec() CoerceSpec {
	return CoerceSpec{
		Dates:   []string{"order_date", "ship_date"},
		Numbers: []string{"sales"},
	}
}

// Columns returns every coerced column, dates first.
func (s CoerceSpec) Columns() []string {
	out := make([]string, 0, len(s.Dates)+len(s.Numbers))
	out = append(out, s.Dates...)
	return append(out, s.Numbers...)
}

// NormalizeName trims surrounding whitespace, lower-cases and replaces every
// space with an underscore.
func NormalizeName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// NormalizeColumns renames every column of t with NormalizeName.
//
// When two columns normalize to the same name, the first one keeps its
// position, takes the values of the last one, and the later ones are
// dropped. The merged names are returned and logged.
func NormalizeColumns(t *table.Table) []string {
	first := make(map[string]int, len(t.Columns))
	var drop []int
	var merged []string

	for i, c := range t.Columns {
		n := NormalizeName(c)
		t.Columns[i] = n
		j, seen := first[n]
		if !seen {
			first[n] = i
			continue
		}
		for _, row := range t.Rows {
			row[j] = row[i]
		}
		t.Kinds[j] = t.Kinds[i]
		drop = append(drop, i)
		merged = appendUnique(merged, n)
	}

	for k := len(drop) - 1; k >= 0; k-- {
		t.DropColumn(drop[k])
	}
	if len(merged) > 0 {
		slog.Warn("duplicate column names after normalization; last values kept", "columns", merged)
	}
	return merged
}

func appendUnique(s []string, v string) []string {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

// Coerce converts the configured columns of t in place and sets their kinds.
// Every referenced column is checked before anything is modified.
func Coerce(t *table.Table, spec CoerceSpec) error {
	dateIdx, err := indexes(t, spec.Dates)
	if err != nil {
		return err
	}
	numIdx, err := indexes(t, spec.Numbers)
	if err != nil {
		return err
	}

	dp := NewDateParser(spec.Layout, spec.DayFirst)
	for k, c := range dateIdx {
		lost := coerceColumn(t, c, func(v any) any {
			if tv, ok := v.(time.Time); ok {
				return tv
			}
			s, _ := table.Text(v)
			if tv, ok := dp.Parse(s); ok {
				return tv
			}
			return nil
		})
		t.Kinds[c] = table.KindTimestamp
		slog.Debug("coerced column", "column", spec.Dates[k], "kind", table.KindTimestamp, "invalid", lost)
	}
	for k, c := range numIdx {
		lost := coerceColumn(t, c, func(v any) any {
			switch x := v.(type) {
			case float64:
				if math.IsNaN(x) {
					return nil
				}
				return x
			case int64:
				return float64(x)
			}
			s, _ := table.Text(v)
			if f, ok := ParseNumber(s); ok {
				return f
			}
			return nil
		})
		t.Kinds[c] = table.KindReal
		slog.Debug("coerced column", "column", spec.Numbers[k], "kind", table.KindReal, "invalid", lost)
	}
	return nil
}

// coerceColumn applies fn to every present value of column c and returns how
// many present values became missing.
func coerceColumn(t *table.Table, c int, fn func(any) any) int {
	lost := 0
	for _, row := range t.Rows {
		if row[c] == nil {
			continue
		}
		row[c] = fn(row[c])
		if row[c] == nil {
			lost++
		}
	}
	return lost
}

func indexes(t *table.Table, names []string) ([]int, error) {
	out := make([]int, len(names))
	for i, n := range names {
		c, err := t.MustIndex(n)
		if err != nil {
			return nil, fmt.Errorf("coerce: %w", err)
		}
		out[i] = c
	}
	return out, nil
}
