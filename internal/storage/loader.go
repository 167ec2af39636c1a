package storage

// This file implements a generic, batched loader that drains rows from a
// channel and invokes a bulk-insert function (CopyFn) per batch. Every
// successful flush logs a progress line with running totals and the
// instantaneous rows/sec since the previous flush.

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"playeretl/internal/metrics"
)

// CopyFn abstracts a backend's bulk insert. It inserts rows aligned to
// columns and returns the number of rows reported as inserted.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// LoadOptions tunes LoadBatches and Replace.
type LoadOptions struct {
	// BatchSize is the number of rows per CopyFn call. Must be > 0.
	BatchSize int

	// Job labels the batch metric. Empty disables it.
	Job string

	// Logger receives progress lines. Nil means no logging.
	Logger *zap.Logger
}

// LoadBatches drains rows from in, groups them into batches of
// opts.BatchSize and calls copyFn for each non-empty batch. It returns the
// total reported by copyFn and the first error encountered, or ctx.Err()
// when canceled.
func LoadBatches(
	ctx context.Context,
	columns []string,
	in <-chan []any,
	opts LoadOptions,
	copyFn CopyFn,
) (int64, error) {
	if opts.BatchSize <= 0 {
		return 0, fmt.Errorf("batchSize must be > 0")
	}
	if copyFn == nil {
		return 0, fmt.Errorf("copyFn must not be nil")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var (
		total       int64
		batches     int64
		batch       = make([][]any, 0, opts.BatchSize)
		start       = time.Now()
		lastFlushTS = start
		lastTotal   int64
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := copyFn(ctx, columns, batch)
		total += n

		// Keep capacity; the backend must not retain the slice.
		batch = batch[:0]

		if err != nil {
			log.Error("loader: copy failed",
				zap.Int64("inserted", n),
				zap.Int64("total_inserted", total),
				zap.Error(err),
			)
			return err
		}

		batches++
		if opts.Job != "" {
			metrics.RecordBatches(opts.Job, 1)
		}
		now := time.Now()
		sinceLast := now.Sub(lastFlushTS)
		rps := float64(0)
		if sinceLast > 0 {
			rps = float64(total-lastTotal) / sinceLast.Seconds()
		}
		log.Debug("loader: batch flushed",
			zap.Int64("batch", batches),
			zap.Float64("rps", rps),
			zap.Int64("inserted", n),
			zap.Int64("total_inserted", total),
			zap.Duration("elapsed", now.Sub(start).Truncate(time.Millisecond)),
			zap.Duration("since_last", sinceLast.Truncate(time.Millisecond)),
		)
		lastFlushTS = now
		lastTotal = total
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return total, ctx.Err()

		case row, ok := <-in:
			if !ok {
				if err := flush(); err != nil {
					return total, err
				}
				log.Debug("loader: input closed",
					zap.Int64("batches", batches),
					zap.Int64("total_inserted", total),
				)
				return total, nil
			}
			batch = append(batch, row)
			if len(batch) >= opts.BatchSize {
				if err := flush(); err != nil {
					return total, err
				}
			}
		}
	}
}
