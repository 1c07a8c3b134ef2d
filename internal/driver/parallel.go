package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"shiftscan/internal/classify"
	"shiftscan/internal/csp"
	"shiftscan/internal/peaklist"
	"shiftscan/internal/refmodel"
	"shiftscan/internal/report"
	"shiftscan/internal/trace"
)

// ScoreOptions tunes the parallel scoring pass.
type ScoreOptions struct {
	Assign bool
	Jobs   int
	Tracer trace.Tracer
	Events chan<- Event
}

// ScoreRows computes the perturbation of every titration row in parallel.
// Row order in the result matches the input order regardless of scheduling.
func ScoreRows(ctx context.Context, table *refmodel.Table, peaks []peaklist.TitrationPeak, w csp.Weights, opts ScoreOptions) ([]report.TitrationRow, error) {
	if len(peaks) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	rows := make([]report.TitrationRow, len(peaks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(peaks)))

	for i, pk := range peaks {
		g.Go(func(i int, pk peaklist.TitrationPeak) func() error {
			return func() error {
				// Проверка отмены
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				sendEvent(opts.Events, Event{Row: pk.ID, Stage: StageScore, Status: StatusWorking})

				dH, dC := csp.Deltas(pk.Free.H, pk.Free.C, pk.Bound.H, pk.Bound.C)
				row := report.TitrationRow{
					ID:   pk.ID,
					DH:   dH,
					DC:   dC,
					Comb: csp.Compute(dH, dC, w),
				}
				trace.Point(opts.Tracer, trace.ScopeCSP, "combined", pk.ID)

				if opts.Assign {
					sp := trace.Begin(opts.Tracer, trace.ScopeClassify, "score", 0)
					free := classify.Score(table, pk.Free)
					bound := classify.Score(table, pk.Bound)
					sp.End(pk.ID)
					row.Free = &free
					row.Bound = &bound
				}

				rows[i] = row
				sendEvent(opts.Events, Event{Row: pk.ID, Stage: StageScore, Status: StatusDone})
				return nil
			}
		}(i, pk))
	}

	if err := g.Wait(); err != nil {
		return rows, err
	}
	return rows, nil
}

// AssignRow pairs one input peak with its ranked classification.
type AssignRow struct {
	ID     string
	Result classify.Result
}

// ScoreAssignments classifies every assignment peak in parallel.
// Result order matches the input order.
func ScoreAssignments(ctx context.Context, table *refmodel.Table, peaks []peaklist.AssignmentPeak, opts ScoreOptions) ([]AssignRow, error) {
	if len(peaks) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	rows := make([]AssignRow, len(peaks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(peaks)))

	for i, pk := range peaks {
		g.Go(func(i int, pk peaklist.AssignmentPeak) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				sendEvent(opts.Events, Event{Row: pk.ID, Stage: StageScore, Status: StatusWorking})

				sp := trace.Begin(opts.Tracer, trace.ScopeClassify, "score", 0)
				res := classify.Score(table, pk.Point)
				sp.End(pk.ID)

				rows[i] = AssignRow{ID: pk.ID, Result: res}
				sendEvent(opts.Events, Event{Row: pk.ID, Stage: StageScore, Status: StatusDone})
				return nil
			}
		}(i, pk))
	}

	if err := g.Wait(); err != nil {
		return rows, err
	}
	return rows, nil
}
