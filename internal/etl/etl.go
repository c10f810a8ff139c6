// Package etl runs the sales pipeline once, top to bottom: extract the CSV,
// normalize and coerce the table, report missing values, load it into the
// configured store.
package etl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"salesetl/internal/config"
	"salesetl/internal/datasource"
	"salesetl/internal/datasource/file"
	"salesetl/internal/metrics"
	"salesetl/internal/parser/csv"
	"salesetl/internal/quality"
	"salesetl/internal/storage"
	"salesetl/internal/table"
	"salesetl/internal/transformer"
)

// Result summarizes a completed run.
type Result struct {
	RunID         string
	RowsExtracted int
	RowsLoaded    int64
	Missing       quality.Report

	// Fingerprint is the xxh3 hash of the raw input bytes.
	Fingerprint uint64
	Bytes       int64
	Duration    time.Duration
}

// Run executes the pipeline described by p. Console report lines go to out;
// diagnostics go to the default slog logger. Any error aborts the run, and
// no output table is written unless the load stage was reached.
func Run(ctx context.Context, p config.Pipeline, out io.Writer) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	start := time.Now()

	if err := checkConfig(p); err != nil {
		return res, err
	}
	mode, err := storage.ParseWriteMode(p.Storage.DB.Mode)
	if err != nil {
		return res, err
	}
	log := slog.Default().With("run_id", res.RunID, "job", p.Job)

	fmt.Fprintln(out, "ETL Process Started")

	var tb *table.Table
	err = step(p.Job, "extract", func() error {
		t, fp, err := extract(ctx, p)
		if err != nil {
			return err
		}
		tb = t
		res.RowsExtracted = tb.Len()
		if fp != nil {
			res.Fingerprint, res.Bytes = fp.Fingerprint(), fp.BytesRead()
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("extract: %w", err)
	}
	fmt.Fprintf(out, "Rows extracted: %d\n", res.RowsExtracted)
	metrics.RecordRow(p.Job, "extracted", int64(res.RowsExtracted))
	log.Info("extracted",
		"path", p.Source.File.Path,
		"rows", res.RowsExtracted,
		"columns", len(tb.Columns),
		"size", humanize.Bytes(uint64(res.Bytes)),
		"xxh3", fmt.Sprintf("%016x", res.Fingerprint),
	)

	spec := coerceSpec(p.Transform)
	err = step(p.Job, "transform", func() error {
		transformer.NormalizeColumns(tb)
		return transformer.Coerce(tb, spec)
	})
	if err != nil {
		return res, fmt.Errorf("transform: %w", err)
	}
	log.Debug("transformed", "columns", tb.Columns)

	err = step(p.Job, "quality", func() error {
		counts, err := quality.NullCounts(tb, spec.Columns())
		res.Missing = counts
		return err
	})
	if err != nil {
		return res, err
	}
	if _, err := res.Missing.WriteTo(out); err != nil {
		return res, fmt.Errorf("write report: %w", err)
	}
	for _, c := range res.Missing {
		metrics.RecordMissing(p.Job, c.Column, c.Missing)
	}

	db := p.Storage.DB
	err = step(p.Job, "load", func() error {
		lr, err := storage.Load(ctx, storage.Config{Kind: p.Storage.Kind, DSN: db.DSN, Table: db.Table}, tb, mode, p.Runtime.BatchSize)
		res.RowsLoaded = lr.Inserted
		metrics.RecordBatches(p.Job, lr.Batches)
		return err
	})
	if err != nil {
		return res, fmt.Errorf("load: %w", err)
	}
	metrics.RecordRow(p.Job, "loaded", res.RowsLoaded)

	fmt.Fprintln(out, "ETL Completed Successfully")
	fmt.Fprintf(out, "Data loaded into %s DB: %s\n", StoreName(p.Storage.Kind), RedactDSN(db.DSN))
	fmt.Fprintf(out, "Table name: %s\n", db.Table)

	res.Duration = time.Since(start)
	log.Info("run complete",
		"rows_extracted", res.RowsExtracted,
		"rows_loaded", res.RowsLoaded,
		"missing", res.Missing.Total(),
		"mode", mode,
		"elapsed", res.Duration.Truncate(time.Millisecond),
	)
	return res, nil
}

// step runs fn and records its duration and outcome.
func step(job, name string, fn func() error) error {
	t0 := time.Now()
	err := fn()
	metrics.RecordStep(job, name, err, time.Since(t0))
	return err
}

func checkConfig(p config.Pipeline) error {
	var errs []error
	for _, iss := range config.ValidatePipeline(p) {
		if iss.Severity == config.SeverityError {
			errs = append(errs, iss)
		} else {
			slog.Warn("config", "path", iss.Path, "issue", iss.Message)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func extract(ctx context.Context, p config.Pipeline) (*table.Table, datasource.Fingerprinter, error) {
	var src datasource.Source = file.NewLocal(p.Source.File.Path, p.Source.File.Encoding)
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	tb, err := csv.ReadTable(rc, parserOptions(p.Parser.Options))
	if err != nil {
		return nil, nil, err
	}
	fp, _ := rc.(datasource.Fingerprinter)
	return tb, fp, nil
}

func parserOptions(o config.Options) csv.Options {
	return csv.Options{
		Comma:         o.Rune("comma", ','),
		NAValues:      o.StringSlice("na_values"),
		KeepDefaultNA: o.Bool("keep_default_na", true),
		InferTypes:    o.Bool("infer_types", true),
	}
}

func coerceSpec(t config.Transform) transformer.CoerceSpec {
	return transformer.CoerceSpec{
		Dates:    t.Dates,
		Numbers:  t.Numbers,
		Layout:   t.DateLayout,
		DayFirst: t.DayFirst,
	}
}
