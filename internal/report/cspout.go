package report

import (
	"fmt"
	"io"

	"shiftscan/internal/csp"
)

// CSPRecord carries one perturbation computation with its inputs, for
// console output and the results file.
type CSPRecord struct {
	H1, C1 float64
	H2, C2 float64
	Region csp.Region

	Breakdown csp.Breakdown
}

// WriteCSP prints the computed perturbation values.
func WriteCSP(w io.Writer, rec CSPRecord, colored bool) error {
	title := "Results:"
	if colored {
		title = headerStyle.Sprint(title)
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	b := rec.Breakdown
	fmt.Fprintf(w, "Δδ_H = %.4f ppm\n", b.DH)
	fmt.Fprintf(w, "Δδ_C = %.4f ppm\n", b.DC)
	_, err := fmt.Fprintf(w, "Δδ_comb = %.4f ppm\n", b.Combined)
	return err
}

// WriteCSPVerification prints the step-by-step arithmetic behind one
// perturbation value, in the teaching layout: deltas with their sources,
// then the root expanded term by term.
func WriteCSPVerification(w io.Writer, rec CSPRecord) error {
	b := rec.Breakdown
	wts := b.Weights
	fmt.Fprintln(w, "Verification:")
	fmt.Fprintf(w, "Δδ_H = |%g - %g| = %.4f ppm\n", rec.H2, rec.H1, b.DH)
	fmt.Fprintf(w, "Δδ_C = |%g - %g| = %.4f ppm\n", rec.C2, rec.C1, b.DC)
	fmt.Fprintf(w, "Δδ_comb = √(%.2f × (%.4f)² + %.2f × (%.4f)²)\n", wts.H, b.DH, wts.C, b.DC)
	fmt.Fprintf(w, "        = √(%.2f × %.4f + %.2f × %.4f)\n", wts.H, b.DH2, wts.C, b.DC2)
	fmt.Fprintf(w, "        = √(%.4f + %.4f)\n", wts.H*b.DH2, wts.C*b.DC2)
	fmt.Fprintf(w, "        = √(%.4f)\n", b.Weighted)
	_, err := fmt.Fprintf(w, "        = %.4f ppm\n", b.Combined)
	return err
}
