package testkit

import (
	"fmt"
	"math"

	"shiftscan/internal/classify"
	"shiftscan/internal/refmodel"
)

// probTolerance bounds the allowed drift of the posterior mass from 1.
const probTolerance = 1e-9

// CheckResultInvariants runs the structural invariants every classification
// result must satisfy, regardless of input:
// 1) the ranking covers each table type exactly once
// 2) probabilities and densities are finite and non-negative
// 3) the ranking is sorted by descending probability
// 4) posterior mass sums to 1, or to exactly 0 for a degenerate result
// 5) each type's best entry belongs to that type
func CheckResultInvariants(res classify.Result, table *refmodel.Table) error {
	types := table.Types()
	if len(res.Ranked) != len(types) {
		return fmt.Errorf("ranking has %d types, table has %d", len(res.Ranked), len(types))
	}

	// 1) каждый тип ровно один раз
	seen := make(map[string]bool, len(types))
	for _, ts := range res.Ranked {
		if seen[ts.AminoAcid] {
			return fmt.Errorf("type %q appears twice in ranking", ts.AminoAcid)
		}
		seen[ts.AminoAcid] = true
	}
	for _, label := range types {
		if !seen[label] {
			return fmt.Errorf("type %q missing from ranking", label)
		}
	}

	// 2) finite, non-negative scores
	for _, ts := range res.Ranked {
		if math.IsNaN(ts.Probability) || math.IsInf(ts.Probability, 0) {
			return fmt.Errorf("%s: probability is not finite: %v", ts.AminoAcid, ts.Probability)
		}
		if ts.Probability < 0 || ts.Probability > 1 {
			return fmt.Errorf("%s: probability out of [0,1]: %v", ts.AminoAcid, ts.Probability)
		}
		if math.IsNaN(ts.Density) || math.IsInf(ts.Density, 0) || ts.Density < 0 {
			return fmt.Errorf("%s: bad aggregated density: %v", ts.AminoAcid, ts.Density)
		}
	}

	// 3) descending order
	for i := 1; i < len(res.Ranked); i++ {
		if res.Ranked[i].Probability > res.Ranked[i-1].Probability {
			return fmt.Errorf("ranking not sorted: %s(%v) after %s(%v)",
				res.Ranked[i].AminoAcid, res.Ranked[i].Probability,
				res.Ranked[i-1].AminoAcid, res.Ranked[i-1].Probability)
		}
	}

	// 4) posterior mass
	sum := res.ProbabilitySum()
	if res.Degenerate {
		if sum != 0 {
			return fmt.Errorf("degenerate result with non-zero mass %v", sum)
		}
	} else if math.Abs(sum-1) > probTolerance {
		return fmt.Errorf("posterior mass = %v, want 1", sum)
	}

	// 5) best entry belongs to the type
	for _, ts := range res.Ranked {
		if ts.Best.AminoAcid != ts.AminoAcid {
			return fmt.Errorf("%s: best entry belongs to %q", ts.AminoAcid, ts.Best.AminoAcid)
		}
	}
	return nil
}
