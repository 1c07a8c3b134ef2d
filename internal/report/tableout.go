package report

import (
	"fmt"
	"io"
	"strings"

	"shiftscan/internal/refmodel"
)

// ReferenceTSVHeader is the column header matching ReferenceTSV rows.
const ReferenceTSVHeader = "Type\tPosition\tmean_H\tsigma_H\tmean_C\tsigma_C"

// WriteReferenceTable pretty-prints the reference model. Position labels are
// Greek letters, so alignment goes through display width, not byte length.
func WriteReferenceTable(w io.Writer, entries []refmodel.Entry, colored bool) error {
	header := fmt.Sprintf("%s %s %s %s %s %s",
		pad("Type", 6), pad("Pos", 5),
		pad("mean(H)", 9), pad("sigma(H)", 9),
		pad("mean(C)", 9), pad("sigma(C)", 9))
	if colored {
		header = headerStyle.Sprint(header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	rule := strings.Repeat("-", 50)
	if _, err := fmt.Fprintln(w, rule); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s %s %s %s %s %s\n",
			pad(e.AminoAcid, 6), pad(e.Position, 5),
			pad(fmt.Sprintf("%8.3f", e.MeanH), 9), pad(fmt.Sprintf("%8.3f", e.SigmaH), 9),
			pad(fmt.Sprintf("%8.3f", e.MeanC), 9), pad(fmt.Sprintf("%8.3f", e.SigmaC), 9)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d reference entries\n", len(entries))
	return err
}

// ReferenceTSV writes the reference model as tab-separated rows. Values are
// printed with %g so the export round-trips digit for digit.
func ReferenceTSV(w io.Writer, entries []refmodel.Entry) error {
	if _, err := fmt.Fprintln(w, ReferenceTSVHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\n",
			e.AminoAcid, e.Position, e.MeanH, e.SigmaH, e.MeanC, e.SigmaC); err != nil {
			return err
		}
	}
	return nil
}
