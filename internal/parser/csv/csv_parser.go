// Package csv reads a delimited text file with a header row into a fully
// materialized table.Table.
//
// Stray quotes inside unquoted fields are kept literally and rows shorter than
// the header are padded with missing cells; a row wider than the header
// aborts the read. Empty header cells are named "Unnamed: <i>" and repeated
// names get ".1", ".2", ... suffixes. Cells matching the NA vocabulary become the
// missing marker (nil). When type inference is enabled, columns whose every
// present value is an integer (or float) literal are converted to int64 (or
// float64); everything else stays a string.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"salesetl/internal/table"
)

// DefaultNAValues is the set of cell contents treated as missing when
// KeepDefaultNA is true. It matches the vocabulary analysts expect from
// dataframe tooling.
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Options configures the reader. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// Comma is the field delimiter. When zero, ',' is used.
	Comma rune

	// NAValues are additional cell contents treated as missing.
	NAValues []string

	// KeepDefaultNA includes DefaultNAValues in the missing vocabulary. When
	// false only NAValues (and nothing else, not even "") are missing.
	KeepDefaultNA bool

	// InferTypes converts all-integer / all-float literal columns to int64 /
	// float64.
	InferTypes bool
}

// DefaultOptions returns comma-delimited, default-NA, inferring options.
func DefaultOptions() Options {
	return Options{Comma: ',', KeepDefaultNA: true, InferTypes: true}
}

// ReadTable consumes r fully and returns the table. The first record is the
// header; see UniqueHeader for how its cells are named.
func ReadTable(r io.Reader, opt Options) (*table.Table, error) {
	cr := csv.NewReader(r)
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read csv header: empty input")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	header = UniqueHeader(StripHeaderBOM(append([]string(nil), header...)))

	na := naSet(opt)
	t := table.New(header)

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if len(rec) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("read csv: line %d: expected %d fields, saw %d: %w",
				line, len(header), len(rec), csv.ErrFieldCount)
		}

		row := make([]any, len(header))
		for i, cell := range rec {
			row[i] = naToNil(cell, na)
		}
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}

	if opt.InferTypes {
		InferKinds(t)
	}
	return t, nil
}

// InferKinds converts string columns whose every present value is an integer
// literal to int64 (KindInteger), or else a float literal to float64
// (KindReal). Columns with no present values stay KindText.
func InferKinds(t *table.Table) {
	for c := range t.Columns {
		if t.Kinds[c] != table.KindText {
			continue
		}
		switch literalKind(t, c) {
		case table.KindInteger:
			for _, row := range t.Rows {
				if s, ok := row[c].(string); ok {
					n, _ := strconv.ParseInt(s, 10, 64)
					row[c] = n
				}
			}
			t.Kinds[c] = table.KindInteger
		case table.KindReal:
			for _, row := range t.Rows {
				if s, ok := row[c].(string); ok {
					f, _ := strconv.ParseFloat(s, 64)
					row[c] = f
				}
			}
			t.Kinds[c] = table.KindReal
		}
	}
}

// literalKind reports the narrowest literal kind that fits every present
// string value in column c.
func literalKind(t *table.Table, c int) table.Kind {
	seen := false
	allInt := true
	for _, row := range t.Rows {
		s, ok := row[c].(string)
		if !ok {
			continue
		}
		seen = true
		if allInt {
			if _, err := strconv.ParseInt(s, 10, 64); err == nil {
				continue
			}
			allInt = false
		}
		if strings.ContainsAny(s, "xX_") {
			return table.KindText
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return table.KindText
		}
	}
	switch {
	case !seen:
		return table.KindText
	case allInt:
		return table.KindInteger
	default:
		return table.KindReal
	}
}

func naSet(opt Options) map[string]struct{} {
	m := make(map[string]struct{}, len(DefaultNAValues)+len(opt.NAValues))
	if opt.KeepDefaultNA {
		for _, s := range DefaultNAValues {
			m[s] = struct{}{}
		}
	}
	for _, s := range opt.NAValues {
		m[s] = struct{}{}
	}
	return m
}

// naToNil converts a cell in the NA vocabulary to nil; all other values are
// returned as-is.
func naToNil(s string, na map[string]struct{}) any {
	if _, ok := na[s]; ok {
		return nil
	}
	return s
}
