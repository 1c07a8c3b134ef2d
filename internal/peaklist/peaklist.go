// Package peaklist reads the whitespace-separated peak lists consumed by the
// batch commands: assignment lists (id, H, C) and titration lists
// (id, H_free, C_free, H_bound, C_bound).
//
// Lines starting with '#' and blank lines are skipped. Rows with extra
// trailing fields are accepted; the extras are ignored. Malformed rows are
// reported through diag.Reporter with file/line/column spans and skipped, so
// one bad row never aborts a whole run unless the caller opts into strict
// mode by checking the bag afterwards.
package peaklist

import (
	"math"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"shiftscan/internal/classify"
	"shiftscan/internal/diag"
)

// AssignmentPeak is one row of an assignment list: a residue identifier and
// its observed coordinate.
type AssignmentPeak struct {
	ID    string
	Point classify.Point
}

// TitrationPeak is one row of a titration list: a residue identifier plus
// the observed coordinate in both titration states.
type TitrationPeak struct {
	ID    string
	Free  classify.Point
	Bound classify.Point
}

// field is one whitespace-separated token with its 1-based byte column.
type field struct {
	text string
	col  uint32
}

// splitFields splits on spaces and tabs, keeping the column of each token so
// diagnostics can point inside the line.
func splitFields(line string) []field {
	var out []field
	i := 0
	for i < len(line) {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t' || line[i] == '\r') {
			i++
		}
		if i >= len(line) {
			break
		}
		start := i
		for i < len(line) && line[i] != ' ' && line[i] != '\t' && line[i] != '\r' {
			i++
		}
		var col uint32
		if c, err := safecast.Conv[uint32](start + 1); err == nil {
			col = c
		}
		out = append(out, field{text: line[start:i], col: col})
	}
	return out
}

// parseShift parses one chemical-shift field. On failure it reports a
// diagnostic at the field's position and returns ok=false.
func parseShift(f field, sp diag.Span, rep diag.Reporter) (float64, bool) {
	sp.Col = f.col
	v, err := strconv.ParseFloat(f.text, 64)
	if err != nil {
		diag.ReportError(rep, diag.ParseBadNumber, sp,
			"chemical shift "+strconv.Quote(f.text)+" is not a number").Emit()
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		diag.ReportError(rep, diag.ParseNonFinite, sp,
			"chemical shift "+strconv.Quote(f.text)+" is not finite").Emit()
		return 0, false
	}
	return v, true
}

// normalizeID brings the residue identifier to NFC so that composed and
// decomposed Greek position letters compare equal.
func normalizeID(id string) string {
	return norm.NFC.String(id)
}

func isSkippable(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}
