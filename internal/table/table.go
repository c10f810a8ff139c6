// Package table defines the in-memory tabular model that flows through the
// ETL: an ordered column list, a per-column kind, and fully materialized rows
// of positional values aligned to the columns.
//
// A nil cell is the missing marker. Every stage either reads the table or
// mutates it in place; none of them add or drop rows.
package table

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrMissingColumn is returned when an operation references a column that is
// not present in the table.
var ErrMissingColumn = errors.New("missing column")

// Kind is the logical type of a column. Storage backends map kinds onto
// dialect-specific SQL types.
type Kind uint8

const (
	KindText Kind = iota
	KindInteger
	KindReal
	KindTimestamp
)

// String returns the logical type name used in logs and DDL mapping.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindTimestamp:
		return "timestamp"
	default:
		return "text"
	}
}

// Table is a fully materialized, ordered set of rows. Rows[i][j] holds the
// value of Columns[j] for row i: nil, string, int64, float64 or time.Time.
type Table struct {
	Columns []string
	Kinds   []Kind
	Rows    [][]any
}

// New returns an empty table with the given columns, all of KindText.
func New(columns []string) *Table {
	cols := append([]string(nil), columns...)
	return &Table{
		Columns: cols,
		Kinds:   make([]Kind, len(cols)),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Append adds a row. The row must be aligned to Columns.
func (t *Table) Append(row []any) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("table: row width %d != columns %d", len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Index returns the position of the first column called name.
func (t *Table) Index(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// MustIndex is like Index but returns ErrMissingColumn (wrapped with the
// column name) when the column does not exist.
func (t *Table) MustIndex(name string) (int, error) {
	i, ok := t.Index(name)
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return i, nil
}

// Column returns a copy of the values of the named column in row order.
func (t *Table) Column(name string) ([]any, error) {
	i, err := t.MustIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out, nil
}

// DropColumn removes the column at position i from the header and every row.
func (t *Table) DropColumn(i int) {
	t.Columns = append(t.Columns[:i], t.Columns[i+1:]...)
	t.Kinds = append(t.Kinds[:i], t.Kinds[i+1:]...)
	for r, row := range t.Rows {
		t.Rows[r] = append(row[:i], row[i+1:]...)
	}
}

// Text renders a cell in its textual form. The second result is false for
// the missing marker.
func Text(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case time.Time:
		return x.Format("2006-01-02 15:04:05"), true
	default:
		return fmt.Sprint(x), true
	}
}
