package driver

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"shiftscan/internal/classify"
	"shiftscan/internal/csp"
	"shiftscan/internal/diag"
	"shiftscan/internal/observ"
	"shiftscan/internal/peaklist"
	"shiftscan/internal/refmodel"
)

func pointAt(h, c float64) classify.Point {
	return classify.Point{H: h, C: c}
}

const sampleTitration = "" +
	"# residue H_free C_free H_bound C_bound\n" +
	"A45 7.04 131.2 7.09 131.5\n" +
	"G12\t8.10\t45.10\t8.10\t45.10\n"

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "titration.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write sample: %v", err)
	}
	return path
}

func aliphaticWeights(t *testing.T) csp.Weights {
	t.Helper()
	w, err := csp.DefaultWeights(csp.RegionAliphatic)
	if err != nil {
		t.Fatalf("DefaultWeights failed: %v", err)
	}
	return w
}

func TestRunBatchComputesRows(t *testing.T) {
	path := writeSample(t, sampleTitration)

	res, err := RunBatch(context.Background(), path, BatchOptions{
		Region: csp.RegionAliphatic,
	})
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("RunBatch produced %d rows, want 2", len(res.Rows))
	}
	if res.CacheHit {
		t.Error("CacheHit reported without a cache")
	}

	a45 := res.Rows[0]
	if a45.ID != "A45" {
		t.Fatalf("rows[0].ID = %q, want A45", a45.ID)
	}
	// sqrt(0.05^2 + 0.34*0.3^2) for the aliphatic region
	if math.Abs(a45.Comb-0.18193405398660253) > 1e-9 {
		t.Errorf("A45 combined shift = %v, want ~0.18193", a45.Comb)
	}
	if a45.Free != nil || a45.Bound != nil {
		t.Error("assignment results present without Assign option")
	}

	g12 := res.Rows[1]
	if g12.Comb != 0 {
		t.Errorf("identical states give combined shift %v, want 0", g12.Comb)
	}
}

func TestRunBatchAssign(t *testing.T) {
	path := writeSample(t, sampleTitration)

	res, err := RunBatch(context.Background(), path, BatchOptions{
		Region: csp.RegionAromatic,
		Assign: true,
	})
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}

	a45 := res.Rows[0]
	if a45.Free == nil || a45.Bound == nil {
		t.Fatal("assignment results missing with Assign option")
	}
	// (7.04, 131.2) sits in the aromatic CH region
	if got := a45.Free.Top().AminoAcid; got != "Phe" {
		t.Errorf("free state top type = %q, want Phe", got)
	}
	if got := a45.Free.Top().Probability; math.Abs(got-0.396395) > 1e-4 {
		t.Errorf("free state top probability = %v, want ~0.396395", got)
	}
}

func TestRunBatchMissingFile(t *testing.T) {
	res, err := RunBatch(context.Background(), filepath.Join(t.TempDir(), "absent.txt"), BatchOptions{
		Region: csp.RegionAliphatic,
	})
	if err == nil {
		t.Fatal("RunBatch on a missing file returned nil error")
	}
	if res == nil || res.Bag.Len() == 0 {
		t.Fatal("missing file produced no diagnostics")
	}
	if res.Bag.Items()[0].Code != diag.IOReadFailed {
		t.Errorf("diagnostic code = %v, want IOReadFailed", res.Bag.Items()[0].Code)
	}
}

func TestRunBatchSkipsBadRows(t *testing.T) {
	path := writeSample(t, "A45 7.04 131.2 7.09 131.5\nbroken line\nG12 8.1 45.1 8.2 45.3\n")

	res, err := RunBatch(context.Background(), path, BatchOptions{
		Region: csp.RegionAliphatic,
	})
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Errorf("RunBatch produced %d rows, want 2 good ones", len(res.Rows))
	}
	if !res.Bag.HasErrors() {
		t.Error("skipped row left no error diagnostic")
	}
}

func TestRunBatchCacheRoundTrip(t *testing.T) {
	path := writeSample(t, sampleTitration)
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt failed: %v", err)
	}

	opts := BatchOptions{Region: csp.RegionAliphatic, Assign: true, Cache: cache}

	first, err := RunBatch(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("first RunBatch failed: %v", err)
	}
	if first.CacheHit {
		t.Fatal("first run reported a cache hit")
	}

	second, err := RunBatch(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("second RunBatch failed: %v", err)
	}
	if !second.CacheHit {
		t.Fatal("second run missed the cache")
	}
	if !reflect.DeepEqual(first.Rows, second.Rows) {
		t.Error("cached rows differ from computed rows")
	}

	// other options must not reuse the entry
	aromatic, err := RunBatch(context.Background(), path, BatchOptions{
		Region: csp.RegionAromatic, Assign: true, Cache: cache,
	})
	if err != nil {
		t.Fatalf("aromatic RunBatch failed: %v", err)
	}
	if aromatic.CacheHit {
		t.Error("different region reused the cache entry")
	}

	// NoCache bypasses lookups entirely
	bypass, err := RunBatch(context.Background(), path, BatchOptions{
		Region: csp.RegionAliphatic, Assign: true, Cache: cache, NoCache: true,
	})
	if err != nil {
		t.Fatalf("NoCache RunBatch failed: %v", err)
	}
	if bypass.CacheHit {
		t.Error("NoCache run reported a cache hit")
	}
}

func TestRunBatchTimerPhases(t *testing.T) {
	path := writeSample(t, sampleTitration)
	timer := observ.NewTimer()

	if _, err := RunBatch(context.Background(), path, BatchOptions{
		Region: csp.RegionAliphatic,
		Timer:  timer,
	}); err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}

	report := timer.Report()
	want := []string{"read", "parse", "score"}
	if len(report.Phases) != len(want) {
		t.Fatalf("timer recorded %d phases, want %d", len(report.Phases), len(want))
	}
	for i, name := range want {
		if report.Phases[i].Name != name {
			t.Errorf("phase[%d] = %q, want %q", i, report.Phases[i].Name, name)
		}
	}
}

func TestRunBatchEvents(t *testing.T) {
	path := writeSample(t, sampleTitration)
	events := make(chan Event, 64)

	if _, err := RunBatch(context.Background(), path, BatchOptions{
		Region: csp.RegionAliphatic,
		Events: events,
	}); err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}
	close(events)

	var queued, done int
	for ev := range events {
		if ev.Row == "" {
			continue
		}
		switch ev.Status {
		case StatusQueued:
			queued++
		case StatusDone:
			done++
		}
	}
	if queued != 2 || done != 2 {
		t.Errorf("row events queued=%d done=%d, want 2 and 2", queued, done)
	}
}

func TestScoreRowsOrderAndJobsEquivalence(t *testing.T) {
	peaks := make([]peaklist.TitrationPeak, 0, 16)
	for i := 0; i < 16; i++ {
		peaks = append(peaks, peaklist.TitrationPeak{
			ID:   string(rune('A'+i)) + "1",
			Free: pointAt(1.0+float64(i)*0.1, 20.0+float64(i)),
			Bound: pointAt(
				1.0+float64(i)*0.1+0.02,
				20.0+float64(i)+0.4,
			),
		})
	}

	w := aliphaticWeights(t)

	serial, err := ScoreRows(context.Background(), refmodel.Default(), peaks, w, ScoreOptions{Jobs: 1, Assign: true})
	if err != nil {
		t.Fatalf("serial ScoreRows failed: %v", err)
	}
	parallel, err := ScoreRows(context.Background(), refmodel.Default(), peaks, w, ScoreOptions{Jobs: 8, Assign: true})
	if err != nil {
		t.Fatalf("parallel ScoreRows failed: %v", err)
	}

	if len(serial) != len(peaks) {
		t.Fatalf("serial produced %d rows, want %d", len(serial), len(peaks))
	}
	for i := range peaks {
		if serial[i].ID != peaks[i].ID {
			t.Fatalf("row %d out of order: got %q, want %q", i, serial[i].ID, peaks[i].ID)
		}
	}
	if !reflect.DeepEqual(serial, parallel) {
		t.Error("parallel rows differ from serial rows")
	}
}

func TestScoreRowsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	peaks := []peaklist.TitrationPeak{
		{ID: "A45", Free: pointAt(7.04, 131.2), Bound: pointAt(7.09, 131.5)},
	}
	if _, err := ScoreRows(ctx, refmodel.Default(), peaks, aliphaticWeights(t), ScoreOptions{}); err == nil {
		t.Error("cancelled context did not abort scoring")
	}
}

func TestScoreRowsEmpty(t *testing.T) {
	rows, err := ScoreRows(context.Background(), refmodel.Default(), nil, aliphaticWeights(t), ScoreOptions{})
	if err != nil {
		t.Fatalf("ScoreRows on empty input failed: %v", err)
	}
	if rows != nil {
		t.Errorf("ScoreRows on empty input = %v, want nil", rows)
	}
}

func TestScoreAssignmentsOrder(t *testing.T) {
	peaks := []peaklist.AssignmentPeak{
		{ID: "F52", Point: pointAt(7.04, 131.2)},
		{ID: "T33", Point: pointAt(1.2, 20.0)},
	}
	rows, err := ScoreAssignments(context.Background(), refmodel.Default(), peaks, ScoreOptions{Jobs: 2})
	if err != nil {
		t.Fatalf("ScoreAssignments failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].ID != "F52" || rows[1].ID != "T33" {
		t.Fatalf("row order = %s, %s; want input order", rows[0].ID, rows[1].ID)
	}
	if top := rows[0].Result.Top(); top.AminoAcid != "Phe" {
		t.Errorf("F52 top type = %s, want Phe", top.AminoAcid)
	}
	if top := rows[1].Result.Top(); top.AminoAcid != "Thr" {
		t.Errorf("T33 top type = %s, want Thr", top.AminoAcid)
	}
}
