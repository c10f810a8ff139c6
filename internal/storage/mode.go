package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMode is returned by ParseWriteMode for an unrecognized mode.
var ErrInvalidMode = errors.New("invalid write mode")

// WriteMode selects what happens to an existing destination table.
type WriteMode string

const (
	// Replace drops any existing table and recreates it from the current
	// table's schema before inserting.
	Replace WriteMode = "replace"
	// Append creates the table only if it is absent and inserts after any
	// existing rows.
	Append WriteMode = "append"
)

// ParseWriteMode accepts "replace" or "append" (case-insensitive). Empty
// means Replace.
func ParseWriteMode(s string) (WriteMode, error) {
	switch WriteMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Replace:
		return Replace, nil
	case Append:
		return Append, nil
	default:
		return "", fmt.Errorf("%w %q (want replace or append)", ErrInvalidMode, s)
	}
}
