package report

import (
	"fmt"
	"io"

	"shiftscan/internal/classify"
)

// TitrationRow is one rendered batch result: the perturbation magnitudes for
// a residue plus, when assignment was requested, the classification of both
// titration states.
type TitrationRow struct {
	ID   string
	DH   float64
	DC   float64
	Comb float64

	Free  *classify.Result
	Bound *classify.Result
}

// Column headers follow the classic export format.
const (
	TitrationTSVHeader       = "Residue\tΔδ_H(ppm)\tΔδ_C(ppm)\tΔδ_comb(ppm)"
	TitrationAssignTSVHeader = TitrationTSVHeader + "\tType_free\tP_free\tType_bound\tP_bound"
)

// WriteTitrationTSV writes the batch results as tab-separated rows with a
// header line. With withAssign the most likely type of each state and its
// probability are appended to every row.
func WriteTitrationTSV(w io.Writer, rows []TitrationRow, withAssign bool) error {
	header := TitrationTSVHeader
	if withAssign {
		header = TitrationAssignTSVHeader
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f", row.ID, row.DH, row.DC, row.Comb); err != nil {
			return err
		}
		if withAssign {
			if err := writeAssignCols(w, row.Free); err != nil {
				return err
			}
			if err := writeAssignCols(w, row.Bound); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func writeAssignCols(w io.Writer, res *classify.Result) error {
	if res == nil || len(res.Ranked) == 0 {
		_, err := fmt.Fprint(w, "\t-\t-")
		return err
	}
	top := res.Top()
	_, err := fmt.Fprintf(w, "\t%s\t%.4f", top.AminoAcid, top.Probability)
	return err
}
