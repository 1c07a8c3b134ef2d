package report

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"shiftscan/internal/classify"
)

// DefaultResultsFile is where interactive computations are archived unless a
// manifest overrides it.
const DefaultResultsFile = "nmr_results.txt"

const (
	saveRule      = 50
	saveTimestamp = "2006-01-02 15:04:05"
)

// Saver appends timestamped result blocks to a text archive. The file is
// created on first use and never truncated; each block is fenced by a
// 50-character rule so sessions stay readable after months of appends.
type Saver struct {
	Path string

	// Now is swappable for tests.
	Now func() time.Time
}

func NewSaver(path string) *Saver {
	return &Saver{Path: path, Now: time.Now}
}

// AppendCSP archives one perturbation computation.
func (s *Saver) AppendCSP(rec CSPRecord) error {
	return s.appendBlock(func(w *bufio.Writer) {
		fmt.Fprintf(w, "State 1: 1H=%g ppm, 13C=%g ppm\n", rec.H1, rec.C1)
		fmt.Fprintf(w, "State 2: 1H=%g ppm, 13C=%g ppm\n", rec.H2, rec.C2)
		fmt.Fprintf(w, "Region: %s\n", rec.Region)
		fmt.Fprintf(w, "Δδ_H = %.4f ppm\n", rec.Breakdown.DH)
		fmt.Fprintf(w, "Δδ_C = %.4f ppm\n", rec.Breakdown.DC)
		fmt.Fprintf(w, "Δδ_comb = %.4f ppm\n", rec.Breakdown.Combined)
	})
}

// AppendRanked archives one classification, top types first.
func (s *Saver) AppendRanked(res classify.Result, top int) error {
	return s.appendBlock(func(w *bufio.Writer) {
		fmt.Fprintf(w, "Peak: H=%g ppm, C=%g ppm\n", res.Observed.H, res.Observed.C)
		limit := len(res.Ranked)
		if top > 0 && top < limit {
			limit = top
		}
		for _, ts := range res.Ranked[:limit] {
			fmt.Fprintf(w, "%s\t%.6f\t%s\n", ts.AminoAcid, ts.Probability, ts.Best.Position)
		}
		if res.Degenerate {
			fmt.Fprintln(w, "All densities underflowed; probabilities are zero.")
			return
		}
		topScore := res.Top()
		fmt.Fprintf(w, "Most likely amino acid type: %s (P = %.4f)\n", topScore.AminoAcid, topScore.Probability)
	})
}

func (s *Saver) appendBlock(body func(w *bufio.Writer)) error {
	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open results file %s: %w", s.Path, err)
	}
	defer f.Close()

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	w := bufio.NewWriter(f)
	rule := strings.Repeat("=", saveRule)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Computed: %s\n", now().Format(saveTimestamp))
	body(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write results file %s: %w", s.Path, err)
	}
	return nil
}
