package refmodel

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSigma reports a reference entry with a non-positive standard
	// deviation. Raised once at table construction, never per query.
	ErrInvalidSigma = errors.New("refmodel: standard deviation must be positive")

	// ErrDuplicateEntry reports two entries sharing the same
	// (amino acid, position) pair.
	ErrDuplicateEntry = errors.New("refmodel: duplicate amino acid position")
)

// Entry is one characterized side-chain reference point: the mean and
// standard deviation of its chemical shift in the proton and heavy-atom
// dimensions, in ppm. A single amino-acid type may contribute several
// entries, one per side-chain position or conformer.
type Entry struct {
	AminoAcid string
	Position  string

	MeanH  float64
	SigmaH float64
	MeanC  float64
	SigmaC float64
}

// Validate checks the construction-time invariants for a single entry.
func (e Entry) Validate() error {
	if e.SigmaH <= 0 {
		return fmt.Errorf("%w: %s/%s: sigma(H) = %g", ErrInvalidSigma, e.AminoAcid, e.Position, e.SigmaH)
	}
	if e.SigmaC <= 0 {
		return fmt.Errorf("%w: %s/%s: sigma(C) = %g", ErrInvalidSigma, e.AminoAcid, e.Position, e.SigmaC)
	}
	return nil
}

// Label returns the conventional "Type/position" form used in reports.
func (e Entry) Label() string {
	return e.AminoAcid + "/" + e.Position
}
