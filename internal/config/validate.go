package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"salesetl/internal/storage"
	"salesetl/internal/transformer"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "storage.db.mode").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be returned as one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether issues contains at least one SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidatePipeline performs static validation of p. It does not mutate the
// pipeline and does not touch the filesystem or the network.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateTransform(p.Transform)...)
	issues = append(issues, validateStorage(p.Storage)...)
	issues = append(issues, validateRuntime(p.Runtime)...)
	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue

	switch strings.TrimSpace(s.Kind) {
	case "":
		return append(issues, Issue{SeverityError, "source.kind", "source.kind must not be empty"})
	case "file":
	default:
		return append(issues, Issue{SeverityError, "source.kind", fmt.Sprintf("unsupported source kind %q; only \"file\" is implemented", s.Kind)})
	}

	if strings.TrimSpace(s.File.Path) == "" {
		issues = append(issues, Issue{SeverityError, "source.file.path", "file source requires a non-empty path"})
	}
	return issues
}

func validateParser(p Parser) []Issue {
	var issues []Issue

	switch strings.TrimSpace(p.Kind) {
	case "":
		return append(issues, Issue{SeverityError, "parser.kind", "parser.kind must not be empty"})
	case "csv":
	default:
		return append(issues, Issue{SeverityError, "parser.kind", fmt.Sprintf("unsupported parser kind %q; only \"csv\" is implemented", p.Kind)})
	}

	if c, ok := p.Options["comma"]; ok {
		s, isStr := c.(string)
		if !isStr || utf8.RuneCountInString(s) != 1 {
			issues = append(issues, Issue{SeverityError, "parser.options.comma", "comma must be a single character"})
		} else if s == "\"" || s == "\n" || s == "\r" {
			issues = append(issues, Issue{SeverityError, "parser.options.comma", fmt.Sprintf("comma %q is not a valid delimiter", s)})
		}
	}
	if !p.Options.Bool("keep_default_na", true) && len(p.Options.StringSlice("na_values")) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "parser.options.keep_default_na",
			Message:  "default NA values disabled and na_values is empty; empty cells will load as empty strings",
		})
	}
	return issues
}

func validateTransform(t Transform) []Issue {
	var issues []Issue

	if len(t.Dates) == 0 && len(t.Numbers) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "transform",
			Message:  "no columns configured for coercion; values will be loaded as read",
		})
	}

	seen := map[string]string{}
	check := func(field string, cols []string) {
		for i, c := range cols {
			path := fmt.Sprintf("transform.%s[%d]", field, i)
			if strings.TrimSpace(c) == "" {
				issues = append(issues, Issue{SeverityError, path, "column name must not be empty"})
				continue
			}
			if n := transformer.NormalizeName(c); n != c {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Path:     path,
					Message:  fmt.Sprintf("column %q is not normalized (columns are renamed to %q before coercion)", c, n),
				})
			}
			if prev, dup := seen[c]; dup {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     path,
					Message:  fmt.Sprintf("column %q already listed in transform.%s", c, prev),
				})
				continue
			}
			seen[c] = field
		}
	}
	check("dates", t.Dates)
	check("numbers", t.Numbers)

	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		return append(issues, Issue{SeverityError, "storage.kind", "storage.kind must not be empty"})
	}

	known := storage.ListKinds()
	registered := false
	for _, k := range known {
		if k == s.Kind {
			registered = true
			break
		}
	}
	if !registered && len(known) > 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q (registered: %v)", s.Kind, known),
		})
	}

	db := s.DB
	if strings.TrimSpace(db.DSN) == "" {
		issues = append(issues, Issue{SeverityError, "storage.db.dsn", "storage.db.dsn must not be empty"})
	}
	if strings.TrimSpace(db.Table) == "" {
		issues = append(issues, Issue{SeverityError, "storage.db.table", "storage.db.table must not be empty"})
	}
	if _, err := storage.ParseWriteMode(db.Mode); err != nil {
		issues = append(issues, Issue{SeverityError, "storage.db.mode", err.Error()})
	}
	return issues
}

func validateRuntime(r RuntimeConfig) []Issue {
	if r.BatchSize <= 0 {
		return []Issue{{
			Severity: SeverityError,
			Path:     "runtime.batch_size",
			Message:  fmt.Sprintf("batch_size=%d; must be positive", r.BatchSize),
		}}
	}
	return nil
}
