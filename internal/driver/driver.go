// Package driver orchestrates batch titration runs: it reads a five-column
// peak list, computes shift perturbations, optionally classifies both states
// of every residue, and caches finished runs keyed by input digest.
package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"shiftscan/internal/csp"
	"shiftscan/internal/diag"
	"shiftscan/internal/observ"
	"shiftscan/internal/peaklist"
	"shiftscan/internal/project"
	"shiftscan/internal/refmodel"
	"shiftscan/internal/report"
	"shiftscan/internal/trace"
)

// defaultMaxDiagnostics bounds the bag when the caller does not care.
const defaultMaxDiagnostics = 256

// BatchOptions configures a single batch run.
type BatchOptions struct {
	Table   *refmodel.Table // nil selects the built-in reference table
	Region  csp.Region      // spectral region for carbon weighting
	Weights csp.Weights     // zero value selects DefaultWeights(Region)
	Assign  bool            // also classify the free and bound state of each row
	Jobs    int             // parallel workers; <=0 selects GOMAXPROCS

	MaxDiagnostics int
	NoCache        bool
	Cache          *DiskCache // nil disables the persistent cache

	Tracer trace.Tracer
	Timer  *observ.Timer
	Events chan<- Event // optional progress stream for interactive renderers
}

// BatchResult is the outcome of one batch run.
type BatchResult struct {
	Source    string
	Rows      []report.TitrationRow
	Bag       *diag.Bag
	InputHash project.Digest
	CacheHit  bool
}

// RunBatch processes the titration file at path according to opts.
// Parse problems do not fail the run: bad rows are skipped and reported in
// the returned bag, and the caller decides whether diagnostics are fatal.
func RunBatch(ctx context.Context, path string, opts BatchOptions) (*BatchResult, error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	span := trace.Begin(tracer, trace.ScopeBatch, "batch", 0)
	defer span.End(path)

	table := opts.Table
	if table == nil {
		table = refmodel.Default()
	}

	weights := opts.Weights
	if weights == (csp.Weights{}) {
		w, err := csp.DefaultWeights(opts.Region)
		if err != nil {
			return nil, err
		}
		weights = w
	}

	maxDiags := opts.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = defaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiags)
	rep := diag.BagReporter{Bag: bag}

	res := &BatchResult{Source: path, Bag: bag}

	stageStart(opts.Events, StageRead)
	readIdx := beginPhase(opts.Timer, "read")
	data, err := os.ReadFile(path)
	if err != nil {
		stageFail(opts.Events, StageRead)
		diag.ReportError(rep, diag.IOReadFailed, diag.Span{File: path}, err.Error()).Emit()
		return res, fmt.Errorf("failed to read %s: %w", path, err)
	}
	endPhase(opts.Timer, readIdx, fmt.Sprintf("%d bytes", len(data)))
	stageDone(opts.Events, StageRead)

	res.InputHash = project.HashBytes(data)
	key := CacheKey(res.InputHash, opts.Region, weights, opts.Assign)

	if opts.Cache != nil && !opts.NoCache {
		var payload DiskPayload
		ok, err := opts.Cache.Get(key, &payload)
		if err != nil {
			// повреждённый кеш не должен валить запуск
			trace.Point(tracer, trace.ScopeCache, "error", err.Error())
		}
		if ok && payload.Schema == diskCacheSchemaVersion {
			trace.Point(tracer, trace.ScopeCache, "hit", path)
			res.Rows = payload.Rows
			res.CacheHit = true
			return res, nil
		}
		trace.Point(tracer, trace.ScopeCache, "miss", path)
	}

	stageStart(opts.Events, StageParse)
	parseIdx := beginPhase(opts.Timer, "parse")
	peaks, err := peaklist.ParseTitration(bytes.NewReader(data), path, rep)
	if err != nil {
		stageFail(opts.Events, StageParse)
		return res, err
	}
	endPhase(opts.Timer, parseIdx, fmt.Sprintf("%d rows", len(peaks)))
	stageDone(opts.Events, StageParse)

	announceRows(opts.Events, peaks)

	scoreIdx := beginPhase(opts.Timer, "score")
	rows, err := ScoreRows(ctx, table, peaks, weights, ScoreOptions{
		Assign: opts.Assign,
		Jobs:   opts.Jobs,
		Tracer: tracer,
		Events: opts.Events,
	})
	if err != nil {
		return res, err
	}
	endPhase(opts.Timer, scoreIdx, "")

	res.Rows = rows

	if opts.Cache != nil && !opts.NoCache {
		payload := DiskPayload{
			Schema:    diskCacheSchemaVersion,
			Source:    path,
			InputHash: res.InputHash,
			Region:    uint8(opts.Region),
			WeightH:   weights.H,
			WeightC:   weights.C,
			Assign:    opts.Assign,
			Rows:      rows,
		}
		if err := opts.Cache.Put(key, &payload); err != nil {
			// кеш записывается по возможности
			trace.Point(tracer, trace.ScopeCache, "put-error", err.Error())
		} else {
			trace.Point(tracer, trace.ScopeCache, "put", path)
		}
	}

	return res, nil
}

func beginPhase(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func endPhase(t *observ.Timer, idx int, note string) {
	if t == nil {
		return
	}
	t.End(idx, note)
}
