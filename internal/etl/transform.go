// Package etl assembles the player pipeline: Transform runs the fixed chain
// of transform steps over a raw frame and groups the result by category, and
// Run drives a whole configured job from source file to database table.
package etl

import (
	"time"

	"playeretl/internal/frame"
	"playeretl/internal/schema"
	"playeretl/internal/transformer"
	"playeretl/internal/transformer/builtin"
)

type options struct {
	job         string
	ref         time.Time
	drop        []string
	dedupPolicy string
	schema      schema.Categorized
}

// Option tunes Transform.
type Option func(*options)

// WithJob labels the step timings and the duplicates_dropped count. Without
// it duplicates are not counted.
func WithJob(job string) Option { return func(o *options) { o.job = job } }

// WithReferenceDate sets the date ages are computed against. The zero time
// keeps builtin.ReferenceDate.
func WithReferenceDate(t time.Time) Option { return func(o *options) { o.ref = t } }

// WithDropColumns replaces builtin.PrunedColumns.
func WithDropColumns(cols []string) Option { return func(o *options) { o.drop = cols } }

// WithDedupPolicy selects the DeDup winner policy (builtin.KeepFirst by
// default).
func WithDedupPolicy(p string) Option { return func(o *options) { o.dedupPolicy = p } }

// WithSchema groups the output with c instead of schema.Players.
func WithSchema(c schema.Categorized) Option { return func(o *options) { o.schema = c } }

func newOptions(opts []Option) options {
	o := options{ref: builtin.ReferenceDate, schema: schema.Players}
	for _, fn := range opts {
		fn(&o)
	}
	if o.ref.IsZero() {
		o.ref = builtin.ReferenceDate
	}
	return o
}

// Steps returns the transform chain in the order Transform runs it.
func Steps(opts ...Option) transformer.Chain {
	return steps(newOptions(opts))
}

func steps(o options) transformer.Chain {
	return transformer.Chain{
		builtin.StripHeader{},
		builtin.Sentinel{},
		builtin.DOB{},
		builtin.Age{Ref: o.ref},
		builtin.TransferValue(),
		builtin.Weight(),
		builtin.Height(),
		builtin.Prune{Columns: o.drop},
		builtin.DeDup{Policy: o.dedupPolicy, Job: o.job},
	}
}

// Transform cleans raw and groups it into the categorized player table. raw
// is not modified. Transform never fails: unparsable cells become Missing
// and unknown columns are dropped.
func Transform(raw *frame.Frame, opts ...Option) *schema.Table {
	o := newOptions(opts)
	f := steps(o).Apply(o.job, raw.Clone())
	return schema.Group(f, o.schema)
}
