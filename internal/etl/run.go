package etl

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"playeretl/internal/config"
	"playeretl/internal/datasource"
	"playeretl/internal/frame"
	"playeretl/internal/logging"
	"playeretl/internal/metrics"
	"playeretl/internal/parser/csv"
	"playeretl/internal/parser/xlsx"
	"playeretl/internal/schema"
	"playeretl/internal/storage"
	"playeretl/internal/transformer/builtin"
	"playeretl/internal/value"
)

// Result summarizes one Run.
type Result struct {
	RunID     string
	Table     string
	Extracted int
	Loaded    int64
	Columns   int
}

// Run executes the job described by p: it reads the source export, runs
// Transform and replaces the destination table. The storage backend for
// p.Storage.Kind must be registered (see storage/all).
func Run(ctx context.Context, p config.Pipeline, log *zap.Logger) (Result, error) {
	res := Result{RunID: uuid.NewString(), Table: p.Storage.DB.Table}
	log = logging.OrNop(log).With(
		zap.String("run_id", res.RunID),
		zap.String("job", p.Job),
	)

	ref, err := referenceDate(p.Transform.ReferenceDate)
	if err != nil {
		return res, err
	}

	raw, err := timed(p.Job, "extract", func() (*frame.Frame, error) { return Extract(ctx, p) })
	if err != nil {
		return res, err
	}
	res.Extracted = raw.Len()
	metrics.RecordRow(p.Job, metrics.KindExtracted, int64(raw.Len()))
	log.Info("extracted",
		zap.String("source", p.Source.File.Path),
		zap.Int("rows", raw.Len()),
		zap.Int("columns", len(raw.Columns)),
	)

	table := Transform(raw,
		WithJob(p.Job),
		WithReferenceDate(ref),
		WithDropColumns(p.Transform.DropColumns),
		WithDedupPolicy(p.Transform.DedupPolicy),
	)
	res.Columns = len(table.Columns)
	log.Info("transformed",
		zap.Int("rows", table.Len()),
		zap.Int("columns", len(table.Columns)),
	)

	res.Loaded, err = timed(p.Job, "load", func() (int64, error) { return load(ctx, p, table, log) })
	if err != nil {
		return res, err
	}
	metrics.RecordRow(p.Job, metrics.KindLoaded, res.Loaded)
	log.Info("loaded",
		zap.String("storage", p.Storage.Kind),
		zap.String("table", res.Table),
		zap.Int64("rows", res.Loaded),
	)
	return res, nil
}

// Extract opens the configured source and parses it into a raw frame.
func Extract(ctx context.Context, p config.Pipeline) (*frame.Frame, error) {
	src, err := datasource.New(p.Source.Kind, p.Source.File.Path)
	if err != nil {
		return nil, err
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	defer rc.Close()

	f, err := parse(rc, p.Parser)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", src.Name(), err)
	}
	return f, nil
}

func parse(r io.Reader, p config.Parser) (*frame.Frame, error) {
	opt := p.Options
	infer := opt.Bool("infer_types", true)
	trim := opt.Bool("trim_space", false)
	na := opt.Bool("na_markers", true)
	switch p.Kind {
	case "", "csv":
		return csv.Read(r, csv.Options{
			Comma:      opt.Rune("comma", ','),
			Charset:    opt.String("charset", ""),
			TrimSpace:  trim,
			LazyQuotes: opt.Bool("lazy_quotes", false),
			NAMarkers:  na,
			InferTypes: infer,
			KeepText:   builtin.TextColumns,
		})
	case "xlsx":
		return xlsx.Read(r, xlsx.Options{
			Sheet:      opt.String("sheet", ""),
			TrimSpace:  trim,
			NAMarkers:  na,
			InferTypes: infer,
			KeepText:   builtin.TextColumns,
		})
	default:
		return nil, fmt.Errorf("unsupported parser.kind=%s", p.Kind)
	}
}

func load(ctx context.Context, p config.Pipeline, t *schema.Table, log *zap.Logger) (int64, error) {
	repo, err := storage.New(ctx, storage.Config{Kind: p.Storage.Kind, DSN: p.Storage.DB.DSN})
	if err != nil {
		return 0, fmt.Errorf("load: %w", err)
	}
	defer repo.Close()

	return storage.Replace(ctx, repo, p.Storage.DB.Table, t, storage.LoadOptions{
		BatchSize: p.Storage.DB.BatchSize,
		Job:       p.Job,
		Logger:    log,
	})
}

func referenceDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(value.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("transform.reference_date: %w", err)
	}
	return t, nil
}

// timed runs fn and reports its duration and outcome as a pipeline step.
func timed[T any](job, step string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	metrics.RecordStep(job, step, err, time.Since(start))
	return v, err
}
