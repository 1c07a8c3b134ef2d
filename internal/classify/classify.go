// Package classify scores an observed chemical-shift coordinate against the
// reference model and turns per-entry Gaussian densities into a ranked
// posterior over amino-acid types.
//
// The scoring pipeline is fixed: per-entry bivariate density, per-type
// aggregation by maximum, normalization over the per-type scores, ranking by
// descending probability. Aggregating by maximum rather than summing is the
// modeling contract here: a type is plausible when any one of its known
// conformers matches, and changing this to a mixture sum changes results.
package classify

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"shiftscan/internal/refmodel"
)

// ErrNonFiniteShift reports a NaN or infinite coordinate. Score itself is
// total over finite inputs; callers reject non-finite values at the boundary
// with ValidatePoint before scoring.
var ErrNonFiniteShift = errors.New("classify: chemical shift must be finite")

// ValidatePoint rejects NaN and infinite coordinates.
func ValidatePoint(p Point) error {
	if math.IsNaN(p.H) || math.IsInf(p.H, 0) {
		return fmt.Errorf("%w: H = %v", ErrNonFiniteShift, p.H)
	}
	if math.IsNaN(p.C) || math.IsInf(p.C, 0) {
		return fmt.Errorf("%w: C = %v", ErrNonFiniteShift, p.C)
	}
	return nil
}

// Density evaluates the diagonal-covariance bivariate Gaussian density of
// entry e at point p. Underflow to zero for far-away points is legitimate.
func Density(p Point, e refmodel.Entry) float64 {
	dh := (p.H - e.MeanH) / e.SigmaH
	dc := (p.C - e.MeanC) / e.SigmaC
	z := dh*dh + dc*dc
	return math.Exp(-0.5*z) / (2 * math.Pi * e.SigmaH * e.SigmaC)
}

// Score classifies one observed point against the table. It is a pure
// function: no I/O, no retained state, identical output for identical input,
// safe to call concurrently from any number of goroutines.
func Score(table *refmodel.Table, p Point) Result {
	types := table.Types()
	index := make(map[string]int, len(types))
	ranked := make([]TypeScore, len(types))
	for i, label := range types {
		index[label] = i
		// -1 so the type's first entry always becomes Best, even at density 0
		ranked[i] = TypeScore{AminoAcid: label, Density: -1}
	}

	// максимум по конформерам типа, не сумма и не среднее
	for _, e := range table.Entries() {
		d := Density(p, e)
		ts := &ranked[index[e.AminoAcid]]
		if d > ts.Density {
			ts.Density = d
			ts.Best = e
		}
	}

	var total float64
	for i := range ranked {
		total += ranked[i].Density
	}
	if total > 0 {
		for i := range ranked {
			ranked[i].Probability = ranked[i].Density / total
		}
	}
	// при total == 0 вероятности остаются нулями: вырожденный, но валидный результат

	sortByProbability(ranked)
	return Result{
		Observed:   p,
		Ranked:     ranked,
		Degenerate: total == 0,
	}
}

// sortByProbability orders scores by descending probability. The sort is
// stable, so equal probabilities keep the table's first-seen type order and
// repeated runs produce identical rankings.
func sortByProbability(scores []TypeScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Probability > scores[j].Probability
	})
}
