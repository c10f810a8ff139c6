// Package quality computes per-column missing-value counts for the
// coerced columns and renders them for the console.
package quality

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"

	"salesetl/internal/table"
)

// ColumnCount is the number of missing cells in one column.
type ColumnCount struct {
	Column  string
	Missing int
}

// NullCounts counts nil cells of each named column, in the order given. It
// does not modify t.
func NullCounts(t *table.Table, columns []string) ([]ColumnCount, error) {
	out := make([]ColumnCount, 0, len(columns))
	for _, name := range columns {
		vals, err := t.Column(name)
		if err != nil {
			return nil, fmt.Errorf("quality: %w", err)
		}
		n := 0
		for _, v := range vals {
			if v == nil {
				n++
			}
		}
		out = append(out, ColumnCount{Column: name, Missing: n})
	}
	return out, nil
}

// Report is the console block printed after the transform stage.
type Report []ColumnCount

// Total returns the sum of the missing counts.
func (r Report) Total() int {
	n := 0
	for _, c := range r {
		n += c.Missing
	}
	return n
}

// WriteTo writes the "Null values:" header followed by one aligned line per
// column.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Null values:\n")
	tw := tabwriter.NewWriter(&buf, 0, 0, 4, ' ', 0)
	for _, c := range r {
		fmt.Fprintf(tw, "%s\t%d\n", c.Column, c.Missing)
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}
