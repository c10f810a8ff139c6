package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// Settings is everything cmd/etl reads from its environment and command
// line: the assembled pipeline plus process-level switches.
type Settings struct {
	ConfigPath string
	Pipeline   Pipeline

	Validate bool
	Verbose  bool

	MetricsBackend string
	PushgatewayURL string
	DatadogAddr    string

	SeqURL string
}

// LoadFromArgs builds Settings from args and getenv without touching the
// process environment, which keeps it hermetic under test.
//
// Precedence, lowest first: Default, the JSON file named by -config (or
// ETL_CONFIG), environment variables, explicitly set flags.
func LoadFromArgs(fs *flag.FlagSet, getenv func(string) string, args []string) (*Settings, error) {
	s := &Settings{}

	var (
		input, dsn, tbl, mode, kind, encoding string
		batch                                 int
	)

	fs.StringVar(&s.ConfigPath, "config", getenv("ETL_CONFIG"), "Path to a JSON pipeline file")
	fs.StringVar(&input, "input", "", "Input CSV path (env ETL_INPUT_PATH)")
	fs.StringVar(&encoding, "encoding", "", "Input charset: utf-8, utf-16, latin1, windows-1252 (env ETL_INPUT_ENCODING)")
	fs.StringVar(&dsn, "db", "", "Destination DSN or database file (env ETL_OUTPUT_PATH)")
	fs.StringVar(&tbl, "table", "", "Destination table name (env ETL_TABLE_NAME)")
	fs.StringVar(&mode, "mode", "", "Write mode: replace or append (env ETL_WRITE_MODE)")
	fs.StringVar(&kind, "storage", "", "Storage backend kind (env ETL_STORAGE_KIND)")
	fs.IntVar(&batch, "batch-size", 0, "Rows per bulk insert batch (env ETL_BATCH_SIZE)")

	fs.BoolVar(&s.Validate, "validate", false, "Validate the configuration and exit")
	fs.BoolVar(&s.Verbose, "v", boolEnv(getenv, "ETL_VERBOSE"), "Enable debug logging")

	fs.StringVar(&s.MetricsBackend, "metrics-backend", envOr(getenv, "METRICS_BACKEND", "none"), "Metrics backend: none, prom, datadog")
	fs.StringVar(&s.PushgatewayURL, "pushgateway-url", getenv("PUSHGATEWAY_URL"), "Prometheus Pushgateway base URL")
	fs.StringVar(&s.DatadogAddr, "datadog-addr", envOr(getenv, "DD_AGENT_ADDR", "127.0.0.1:8125"), "DogStatsD address")

	fs.StringVar(&s.SeqURL, "seq-url", getenv("SEQ_URL"), "Seq server URL for structured logs")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	p := Default()
	if s.ConfigPath != "" {
		var err error
		if p, err = Load(s.ConfigPath); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(&p, getenv); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			p.Source.File.Path = input
		case "encoding":
			p.Source.File.Encoding = encoding
		case "db":
			p.Storage.DB.DSN = dsn
		case "table":
			p.Storage.DB.Table = tbl
		case "mode":
			p.Storage.DB.Mode = mode
		case "storage":
			p.Storage.Kind = kind
		case "batch-size":
			p.Runtime.BatchSize = batch
		}
	})

	s.Pipeline = p
	return s, nil
}

func applyEnv(p *Pipeline, getenv func(string) string) error {
	setIf := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setIf(&p.Source.File.Path, "ETL_INPUT_PATH")
	setIf(&p.Source.File.Encoding, "ETL_INPUT_ENCODING")
	setIf(&p.Storage.DB.DSN, "ETL_OUTPUT_PATH")
	setIf(&p.Storage.DB.Table, "ETL_TABLE_NAME")
	setIf(&p.Storage.DB.Mode, "ETL_WRITE_MODE")
	setIf(&p.Storage.Kind, "ETL_STORAGE_KIND")

	if v := getenv("ETL_BATCH_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ETL_BATCH_SIZE: %w", err)
		}
		p.Runtime.BatchSize = n
	}
	return nil
}

func envOr(getenv func(string) string, k, d string) string {
	if v := getenv(k); v != "" {
		return v
	}
	return d
}

func boolEnv(getenv func(string) string, k string) bool {
	switch strings.ToLower(getenv(k)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
