// Package config defines the JSON-serializable configuration model for the
// sales ETL and the helpers that assemble it from defaults, a pipeline file,
// the environment and command-line flags.
//
// Example (trimmed):
//
//	{
//	  "job":       "sales",
//	  "source":    { "kind": "file", "file": { "path": "train.csv" } },
//	  "parser":    { "kind": "csv", "options": { "comma": ",", "na_values": ["-"] } },
//	  "transform": { "dates": ["order_date", "ship_date"], "numbers": ["sales"] },
//	  "storage":   { "kind": "sqlite", "db": { "dsn": "sales.db", "table": "sales_data", "mode": "replace" } }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Defaults used when nothing else is configured.
const (
	DefaultJob       = "sales"
	DefaultInput     = "train.csv"
	DefaultDSN       = "sales.db"
	DefaultTable     = "sales_data"
	DefaultMode      = "replace"
	DefaultStorage   = "sqlite"
	DefaultBatchSize = 10000
)

// Pipeline describes the full ETL run. It is the top-level object decoded
// from a pipeline file.
type Pipeline struct {
	// Job labels metrics and log lines for this pipeline.
	Job string `json:"job"`

	Source    Source        `json:"source"`
	Parser    Parser        `json:"parser"`
	Transform Transform     `json:"transform"`
	Storage   Storage       `json:"storage"`
	Runtime   RuntimeConfig `json:"runtime"`
}

// RuntimeConfig controls batching of the load stage.
type RuntimeConfig struct {
	BatchSize int `json:"batch_size"`
}

// Source identifies the data source. Current kind: "file".
type Source struct {
	Kind string     `json:"kind"`
	File SourceFile `json:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the input file.
	Path string `json:"path"`
	// Encoding names the input charset; empty means UTF-8.
	Encoding string `json:"encoding"`
}

// Parser selects how to parse the raw source into a table.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the parser. For CSV:
	//   comma (string), na_values ([]string), keep_default_na (bool),
	//   infer_types (bool)
	Options Options `json:"options"`
}

// Transform lists the columns to coerce, by normalized name.
type Transform struct {
	Dates      []string `json:"dates"`
	Numbers    []string `json:"numbers"`
	DateLayout string   `json:"date_layout"`
	DayFirst   bool     `json:"day_first"`
}

// Storage selects the sink used to persist the table.
type Storage struct {
	// Kind selects the registered backend ("sqlite", "postgres", ...).
	Kind string   `json:"kind"`
	DB   DBConfig `json:"db"`
}

// DBConfig configures the DB sink.
type DBConfig struct {
	// DSN is the backend connection string; for file-based stores, a path.
	DSN string `json:"dsn"`

	// Table is the destination table name, optionally schema-qualified.
	Table string `json:"table"`

	// Mode is "replace" (drop and recreate) or "append".
	Mode string `json:"mode"`
}

// Default returns the pipeline used when no file, environment or flag says
// otherwise: train.csv into the sales_data table of sales.db, replaced on
// every run.
func Default() Pipeline {
	return Pipeline{
		Job:    DefaultJob,
		Source: Source{Kind: "file", File: SourceFile{Path: DefaultInput}},
		Parser: Parser{Kind: "csv", Options: Options{}},
		Transform: Transform{
			Dates:   []string{"order_date", "ship_date"},
			Numbers: []string{"sales"},
		},
		Storage: Storage{
			Kind: DefaultStorage,
			DB:   DBConfig{DSN: DefaultDSN, Table: DefaultTable, Mode: DefaultMode},
		},
		Runtime: RuntimeConfig{BatchSize: DefaultBatchSize},
	}
}

// Load decodes the pipeline file at path on top of Default. Keys absent from
// the file keep their default values.
func Load(path string) (Pipeline, error) {
	p := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("parse config %s: %w", path, err)
	}
	if p.Parser.Options == nil {
		p.Parser.Options = Options{}
	}
	return p, nil
}

// Options fetches typed values from a free-form JSON map. Each getter
// returns def when the key is absent or holds an unexpected type.
type Options map[string]any

// String returns the string value for key or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. Used for single-character settings such as a delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringSlice returns a []string for key when the value is an array of
// strings. Non-string elements are skipped. Returns nil when the key is
// missing or not an array.
func (o Options) StringSlice(key string) []string {
	if v, ok := o[key]; ok {
		switch vv := v.(type) {
		case []any:
			out := make([]string, 0, len(vv))
			for _, x := range vv {
				if s, ok := x.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return vv
		}
	}
	return nil
}

// UnmarshalJSON makes a missing or null "options" object decode to a
// non-nil, empty map.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
