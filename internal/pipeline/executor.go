// Package pipeline runs cleaning stages over a table in independent chunks.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/sweep/internal/common"
	"github.com/Veraticus/sweep/internal/config"
	"github.com/Veraticus/sweep/internal/extract"
	"github.com/Veraticus/sweep/internal/geo"
	"github.com/Veraticus/sweep/internal/model"
	"github.com/Veraticus/sweep/internal/observability"
	"github.com/Veraticus/sweep/internal/period"
)

// ErrTimestampFormat is returned when a created timestamp does not match
// the configured layout.
var ErrTimestampFormat = errors.New("invalid timestamp format")

// PeriodPlan says which periods the registry is built from. Sources are
// admitted in field order: defaults, then manual, then bulk.
type PeriodPlan struct {
	Manual   []model.Period
	Bulk     []period.ImportRow
	Defaults bool
}

// Options configures an Executor.
type Options struct {
	Rules    *config.Rules
	Resolver geo.Resolver // nil disables translation
	Lookup   *geo.Lookup  // nil passes cleaned names through
	OnChunk  func(done, total int)
	Stages   []Stage // empty runs every stage
	Periods  PeriodPlan
}

// Stats describes a completed run.
type Stats struct {
	MinCreated time.Time
	MaxCreated time.Time
	Import     *period.ImportReport
	RunID      string
	Defaults   []period.Decision
	Manual     []period.Decision
	Stages     []Stage
	Rows       int
	Chunks     int
	Duration   time.Duration
}

// Result is the output of a run.
type Result struct {
	Table    *model.Table
	Registry *period.Registry
	Stats    Stats
}

// Executor applies a stage plan to tables. It holds no per-run state and
// may be reused.
type Executor struct {
	rules     *config.Rules
	extractor *extract.Extractor
	cleaner   *geo.Cleaner
	onChunk   func(done, total int)
	plan      []Stage
	periods   PeriodPlan
}

// New validates the options and compiles the rules.
func New(opts Options) (*Executor, error) {
	if opts.Rules == nil {
		return nil, fmt.Errorf("%w: rules are required", common.ErrMissingConfig)
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, err
	}

	plan, err := Plan(opts.Stages)
	if err != nil {
		return nil, err
	}

	var resolver geo.Resolver
	if opts.Rules.Translation.Enabled {
		resolver = opts.Resolver
	}

	return &Executor{
		rules:     opts.Rules,
		plan:      plan,
		periods:   opts.Periods,
		onChunk:   opts.OnChunk,
		extractor: extract.New(opts.Rules.ExtractOptions()),
		cleaner:   geo.NewCleaner(geo.NewNormalizer(opts.Rules.NormalizerConfig()), resolver, opts.Lookup),
	}, nil
}

// Plan returns the stages the executor runs, in order.
func (e *Executor) Plan() []Stage {
	return append([]Stage(nil), e.plan...)
}

// Run cleans a table. The input is never modified. Output rows keep the
// input order regardless of chunk size or worker count.
func (e *Executor) Run(ctx context.Context, table *model.Table) (*Result, error) {
	started := time.Now()
	runID := uuid.New().String()
	logger := slog.With("run_id", runID)

	if table == nil {
		table = &model.Table{}
	}
	if err := e.checkColumns(table); err != nil {
		return nil, err
	}

	stats := Stats{RunID: runID, Rows: table.Len(), Stages: e.Plan()}

	var created []time.Time
	if hasStage(e.plan, StageDatetime) || hasStage(e.plan, StagePeriod) {
		var err error
		created, stats.MinCreated, stats.MaxCreated, err = e.parseCreated(table.Records)
		if err != nil {
			return nil, err
		}
	}

	var registry *period.Registry
	if hasStage(e.plan, StagePeriod) {
		registry = e.buildRegistry(logger, &stats)
	}

	env := &runEnv{
		rules:     e.rules,
		extractor: e.extractor,
		cleaner:   e.cleaner,
		registry:  registry,
		numeric:   presentColumns(table, e.rules.Columns.Numeric),
	}

	chunks := Split(table.Records, e.rules.ChunkSize)
	stats.Chunks = len(chunks)
	logger.Info("Starting cleaning run",
		"rows", stats.Rows,
		"chunks", stats.Chunks,
		"workers", e.rules.Workers,
		"stages", len(e.plan))

	offsets := make([]int, len(chunks))
	for i := 1; i < len(chunks); i++ {
		offsets[i] = offsets[i-1] + len(chunks[i-1])
	}

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.rules.Workers)

	for i := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			chunkStart := time.Now()
			if created != nil {
				for j := range chunks[i] {
					chunks[i][j].CreatedTime = created[offsets[i]+j]
				}
			}
			if err := e.processChunk(gctx, env, chunks[i]); err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}

			observability.ChunksProcessed.Inc()
			observability.ChunkDuration.Observe(time.Since(chunkStart).Seconds())

			n := int(done.Add(1))
			logger.Debug("Chunk processed", "chunk", i, "rows", len(chunks[i]), "done", n, "total", len(chunks))
			if e.onChunk != nil {
				e.onChunk(n, len(chunks))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, stats.Rows)
	for _, chunk := range chunks {
		records = append(records, chunk...)
	}

	stats.Duration = time.Since(started)
	observability.RunDuration.Observe(stats.Duration.Seconds())
	logger.Info("Cleaning run complete", "rows", len(records), "duration", stats.Duration)

	return &Result{
		Table: &model.Table{
			Columns: append([]string(nil), table.Columns...),
			Derived: DerivedColumns(e.plan),
			Records: records,
		},
		Registry: registry,
		Stats:    stats,
	}, nil
}

func (e *Executor) processChunk(ctx context.Context, env *runEnv, chunk []model.Record) error {
	for _, stage := range e.plan {
		if err := ctx.Err(); err != nil {
			return err
		}

		apply := transforms[stage]
		for i := range chunk {
			apply(ctx, env, &chunk[i])
		}
		observability.RowsProcessed.WithLabelValues(string(stage)).Add(float64(len(chunk)))
	}
	return nil
}

// checkColumns fails when a planned stage reads a column the input lacks.
// Tables without a header are not checked.
func (e *Executor) checkColumns(table *model.Table) error {
	if len(table.Columns) == 0 {
		return nil
	}

	cols := e.rules.Columns
	required := map[Stage]string{
		StageGeography: cols.Location,
		StageBrand:     cols.Product,
		StageSize:      cols.Product,
		StageKOL:       cols.Product,
		StageGift:      cols.Product,
		StageRegion:    cols.Warehouse,
		StageDatetime:  cols.Created,
		StagePeriod:    cols.Created,
	}

	for _, stage := range e.plan {
		col, ok := required[stage]
		if !ok || table.HasColumn(col) {
			continue
		}
		return common.NewUserError(
			fmt.Sprintf("The %s stage needs a %q column", stage, col),
			fmt.Errorf("%w: %s", common.ErrMissingColumn, col),
		)
	}
	return nil
}

// parseCreated parses every created timestamp up front so that a bad value
// fails the run before any chunk is processed. Blank values stay zero.
func (e *Executor) parseCreated(records []model.Record) ([]time.Time, time.Time, time.Time, error) {
	layout := e.rules.TimestampLayout
	out := make([]time.Time, len(records))
	var lo, hi time.Time

	for i, rec := range records {
		raw := strings.TrimSpace(rec.CreatedRaw)
		if raw == "" {
			continue
		}

		t, err := time.Parse(layout, raw)
		if err != nil {
			return nil, time.Time{}, time.Time{}, common.NewUserError(
				fmt.Sprintf("Row %d: %s %q must use the format %s", rec.Row, e.rules.Columns.Created, raw, HumanLayout(layout)),
				fmt.Errorf("%w: %w", ErrTimestampFormat, err),
			)
		}

		out[i] = t
		if lo.IsZero() || t.Before(lo) {
			lo = t
		}
		if hi.IsZero() || t.After(hi) {
			hi = t
		}
	}

	return out, lo, hi, nil
}

func (e *Executor) buildRegistry(logger *slog.Logger, stats *Stats) *period.Registry {
	registry := period.NewRegistry()

	if e.periods.Defaults {
		if stats.MinCreated.IsZero() {
			logger.Warn("No created timestamps, skipping default periods")
		} else {
			stats.Defaults = registry.AddDefaults(stats.MinCreated, stats.MaxCreated)
		}
	}

	for _, p := range e.periods.Manual {
		a := registry.AddManual(p.Name, p.Start, p.End)
		stats.Manual = append(stats.Manual, period.Decision{Period: p, Admission: a})
	}

	if len(e.periods.Bulk) > 0 {
		report := registry.Import(e.periods.Bulk)
		stats.Import = &report
	}

	logger.Info("Period registry built", "periods", registry.Len())
	return registry
}

// HumanLayout renders a Go time layout in the DD/MM/YYYY form operators
// know.
func HumanLayout(layout string) string {
	return strings.NewReplacer(
		"2006", "YYYY",
		"15", "HH",
		"04", "MM",
		"05", "SS",
		"02", "DD",
		"01", "MM",
	).Replace(layout)
}

func presentColumns(table *model.Table, columns []string) []string {
	if len(table.Columns) == 0 {
		return columns
	}

	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if table.HasColumn(c) {
			out = append(out, c)
		} else {
			slog.Debug("Numeric column not in input", "column", c)
		}
	}
	return out
}
