package classify

import "shiftscan/internal/refmodel"

// Point is one observed coordinate: proton shift and heavy-atom shift, ppm.
type Point struct {
	H float64
	C float64
}

// TypeScore is the outcome for a single amino-acid type: its posterior
// probability, the raw aggregated density behind it, and the reference entry
// that produced that density (reporting only, never used for ranking).
type TypeScore struct {
	AminoAcid   string
	Probability float64
	Density     float64
	Best        refmodel.Entry
}

// Result is the full classification of one observed point. Ranked covers
// every type present in the reference table, sorted by probability
// descending; equal probabilities keep the table's type order.
type Result struct {
	Observed   Point
	Ranked     []TypeScore
	Degenerate bool
}

// Top returns the best-ranked type. Valid only for a non-empty table.
func (r Result) Top() TypeScore {
	return r.Ranked[0]
}

// ByType returns the score for the given amino-acid label.
func (r Result) ByType(aminoAcid string) (TypeScore, bool) {
	for _, ts := range r.Ranked {
		if ts.AminoAcid == aminoAcid {
			return ts, true
		}
	}
	return TypeScore{}, false
}

// ProbabilitySum returns the total posterior mass. It is 1 within
// floating-point tolerance for informative results and exactly 0 for
// degenerate ones.
func (r Result) ProbabilitySum() float64 {
	var sum float64
	for _, ts := range r.Ranked {
		sum += ts.Probability
	}
	return sum
}
