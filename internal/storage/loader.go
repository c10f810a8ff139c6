package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"salesetl/internal/table"
)

// CopyFn abstracts a backend's bulk insert capability. Implementations insert
// the provided rows (aligned to columns) and return the number of rows
// written.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// LoadBatches slices rows into batches of batchSize and calls copyFn for each
// batch in order. It returns the total reported by copyFn, the number of
// successful batches, and the first error encountered.
//
// A progress line with running totals and rows/sec since the previous flush is
// logged after every successful batch.
func LoadBatches(
	ctx context.Context,
	columns []string,
	rows [][]any,
	batchSize int,
	copyFn CopyFn,
) (int64, int64, error) {
	if batchSize <= 0 {
		return 0, 0, fmt.Errorf("batchSize must be > 0")
	}
	if copyFn == nil {
		return 0, 0, fmt.Errorf("copyFn must not be nil")
	}

	var (
		total       int64
		batches     int64
		start       = time.Now()
		lastFlushTS = start
	)

	for lo := 0; lo < len(rows); lo += batchSize {
		if err := ctx.Err(); err != nil {
			return total, batches, err
		}
		hi := min(lo+batchSize, len(rows))

		n, err := copyFn(ctx, columns, rows[lo:hi])
		total += n
		if err != nil {
			slog.Error("loader: copy failed", "batch", batches+1, "after", n, "total", total, "err", err)
			return total, batches, err
		}

		batches++
		now := time.Now()
		sinceLast := now.Sub(lastFlushTS)
		rps := float64(0)
		if sinceLast > 0 {
			rps = float64(n) / sinceLast.Seconds()
		}
		slog.Info("batch loaded",
			"batch", batches,
			"rps", int64(rps),
			"inserted", n,
			"total_inserted", total,
			"elapsed", now.Sub(start).Truncate(time.Millisecond),
			"since_last", sinceLast.Truncate(time.Millisecond),
		)
		lastFlushTS = now
	}
	return total, batches, nil
}

// LoadResult summarizes a completed load.
type LoadResult struct {
	Inserted int64
	Batches  int64
	// Counted is the table's row count read back after the write.
	Counted int64
}

// newRepositoryFn is a test seam for Load.
var newRepositoryFn = New

// Load writes t to cfg.Table: it opens the backend, prepares the table for
// mode, bulk-inserts in batches and reads the row count back. The connection
// is closed before Load returns, on success and on failure.
func Load(ctx context.Context, cfg Config, t *table.Table, mode WriteMode, batchSize int) (res LoadResult, err error) {
	repo, err := newRepositoryFn(ctx, cfg)
	if err != nil {
		return res, fmt.Errorf("open %s: %w", cfg.Kind, err)
	}
	defer repo.Close()

	if err := PrepareTable(ctx, cfg, repo, t, mode); err != nil {
		return res, err
	}

	res.Inserted, res.Batches, err = LoadBatches(ctx, t.Columns, t.Rows, batchSize, repo.CopyFrom)
	if err != nil {
		return res, fmt.Errorf("insert into %s: %w", cfg.Table, err)
	}

	res.Counted, err = repo.CountRows(ctx)
	if err != nil {
		return res, fmt.Errorf("count rows in %s: %w", cfg.Table, err)
	}

	want := int64(t.Len())
	if mode == Append {
		// Prior rows are unknown; only a shortfall is detectable.
		if res.Counted < want {
			logMismatch(want, res.Counted)
		}
	} else if res.Counted != want || res.Inserted != want {
		logMismatch(want, res.Counted)
	}
	return res, nil
}

func logMismatch(want, got int64) {
	slog.Warn(fmt.Sprintf(
		"WARNING: row accounting mismatch: total=%d accounted=%d (delta=%d)",
		want, got, want-got,
	))
}
