// Package csp computes combined chemical-shift perturbations for titration
// experiments: two per-dimension shift differences folded into one weighted
// Euclidean distance in ppm.
package csp

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownRegion reports a spectral region outside the supported set.
var ErrUnknownRegion = errors.New("csp: unknown spectral region")

// Spectral region of the observed side-chain signal. The region selects the
// carbon scaling weight; proton weight is 1 in both.
type Region int

const (
	RegionAliphatic Region = iota
	RegionAromatic
)

// Published scaling factors for the combined-shift formula.
const (
	ProtonWeight          = 1.00
	AliphaticCarbonWeight = 0.34
	AromaticCarbonWeight  = 0.07
)

func (r Region) String() string {
	switch r {
	case RegionAliphatic:
		return "aliphatic"
	case RegionAromatic:
		return "aromatic"
	}
	return "unknown"
}

// ParseRegion accepts the region names used on the command line and in
// manifests, case-insensitively.
func ParseRegion(s string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aliphatic":
		return RegionAliphatic, nil
	case "aromatic":
		return RegionAromatic, nil
	}
	return 0, fmt.Errorf("%w: %q (use aliphatic or aromatic)", ErrUnknownRegion, s)
}

// Weights holds the per-dimension scaling factors applied inside the root.
type Weights struct {
	H float64
	C float64
}

// DefaultWeights returns the published weights for the region.
func DefaultWeights(r Region) (Weights, error) {
	switch r {
	case RegionAliphatic:
		return Weights{H: ProtonWeight, C: AliphaticCarbonWeight}, nil
	case RegionAromatic:
		return Weights{H: ProtonWeight, C: AromaticCarbonWeight}, nil
	}
	return Weights{}, fmt.Errorf("%w: %d", ErrUnknownRegion, int(r))
}

// Deltas returns the magnitudes of the titration shift differences between
// the two states. Signs never enter the combined formula or any report, so
// only absolute values are exposed.
func Deltas(h1, c1, h2, c2 float64) (dH, dC float64) {
	return math.Abs(h2 - h1), math.Abs(c2 - c1)
}

// Compute folds the two shift differences into the combined perturbation:
//
//	Δδ_comb = sqrt(wH·ΔδH² + wC·ΔδC²)
func Compute(dH, dC float64, w Weights) float64 {
	return math.Sqrt(w.H*dH*dH + w.C*dC*dC)
}

// Breakdown carries every intermediate of one Compute call, for the
// step-by-step explanation output.
type Breakdown struct {
	DH       float64
	DC       float64
	DH2      float64
	DC2      float64
	Weighted float64
	Combined float64
	Weights  Weights
}

// Explain computes the perturbation while recording each intermediate step.
// Combined is identical to what Compute returns for the same arguments.
func Explain(dH, dC float64, w Weights) Breakdown {
	b := Breakdown{
		DH:      dH,
		DC:      dC,
		DH2:     dH * dH,
		DC2:     dC * dC,
		Weights: w,
	}
	b.Weighted = w.H*b.DH2 + w.C*b.DC2
	b.Combined = math.Sqrt(b.Weighted)
	return b
}
