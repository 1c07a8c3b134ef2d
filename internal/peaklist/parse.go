package peaklist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"fortio.org/safecast"

	"shiftscan/internal/classify"
	"shiftscan/internal/diag"
)

// assignmentFields and titrationFields are the minimum field counts per row;
// anything beyond them is ignored.
const (
	assignmentFields = 3
	titrationFields  = 5
)

// ParseAssignments reads an assignment list (id, H, C). Malformed rows are
// reported and skipped; the returned rows keep input order.
func ParseAssignments(r io.Reader, name string, rep diag.Reporter) ([]AssignmentPeak, error) {
	var peaks []AssignmentPeak
	err := scanLines(r, name, rep, func(fields []field, sp diag.Span) {
		if len(fields) < assignmentFields {
			diag.ReportError(rep, diag.ParseShortLine, sp,
				fmt.Sprintf("expected %d fields (id H C), got %d", assignmentFields, len(fields))).Emit()
			return
		}
		if len(fields) > assignmentFields {
			diag.ReportInfo(rep, diag.ParseExtraIgnored, sp,
				fmt.Sprintf("%d extra fields ignored", len(fields)-assignmentFields)).Emit()
		}
		h, ok := parseShift(fields[1], sp, rep)
		if !ok {
			return
		}
		c, ok := parseShift(fields[2], sp, rep)
		if !ok {
			return
		}
		peaks = append(peaks, AssignmentPeak{
			ID:    normalizeID(fields[0].text),
			Point: classify.Point{H: h, C: c},
		})
	})
	if err != nil {
		return nil, err
	}
	warnDuplicates(assignmentIDs(peaks), name, rep)
	return peaks, nil
}

// ParseTitration reads a titration list (id, H1, C1, H2, C2). Malformed rows
// are reported and skipped; the returned rows keep input order.
func ParseTitration(r io.Reader, name string, rep diag.Reporter) ([]TitrationPeak, error) {
	var peaks []TitrationPeak
	err := scanLines(r, name, rep, func(fields []field, sp diag.Span) {
		if len(fields) < titrationFields {
			diag.ReportError(rep, diag.ParseShortLine, sp,
				fmt.Sprintf("expected %d fields (id H1 C1 H2 C2), got %d", titrationFields, len(fields))).Emit()
			return
		}
		if len(fields) > titrationFields {
			diag.ReportInfo(rep, diag.ParseExtraIgnored, sp,
				fmt.Sprintf("%d extra fields ignored", len(fields)-titrationFields)).Emit()
		}
		vals := make([]float64, 0, 4)
		for _, f := range fields[1:titrationFields] {
			v, ok := parseShift(f, sp, rep)
			if !ok {
				return
			}
			vals = append(vals, v)
		}
		peaks = append(peaks, TitrationPeak{
			ID:    normalizeID(fields[0].text),
			Free:  classify.Point{H: vals[0], C: vals[1]},
			Bound: classify.Point{H: vals[2], C: vals[3]},
		})
	})
	if err != nil {
		return nil, err
	}
	warnDuplicates(titrationIDs(peaks), name, rep)
	return peaks, nil
}

// ReadAssignmentFile is the file-path convenience wrapper over ParseAssignments.
func ReadAssignmentFile(path string, rep diag.Reporter) ([]AssignmentPeak, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ParseAssignments(f, path, rep)
}

// ReadTitrationFile is the file-path convenience wrapper over ParseTitration.
func ReadTitrationFile(path string, rep diag.Reporter) ([]TitrationPeak, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ParseTitration(f, path, rep)
}

// scanLines walks the input line by line, skipping comments and blanks, and
// hands each data row to fn together with its whole-line span.
func scanLines(r io.Reader, name string, rep diag.Reporter, fn func([]field, diag.Span)) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	rows := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if isSkippable(line) {
			continue
		}
		rows++
		var ln uint32
		if v, err := safecast.Conv[uint32](lineNo); err == nil {
			ln = v
		}
		fn(splitFields(line), diag.Span{File: name, Line: ln})
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if rows == 0 {
		diag.ReportWarning(rep, diag.ParseNoDataRows, diag.Span{File: name, Line: 1},
			"no data rows after comments and blanks").Emit()
	}
	return nil
}

func assignmentIDs(peaks []AssignmentPeak) []string {
	ids := make([]string, len(peaks))
	for i, p := range peaks {
		ids[i] = p.ID
	}
	return ids
}

func titrationIDs(peaks []TitrationPeak) []string {
	ids := make([]string, len(peaks))
	for i, p := range peaks {
		ids[i] = p.ID
	}
	return ids
}

// warnDuplicates flags repeated residue identifiers. Duplicates are kept in
// the row set (the caller decides policy), the warning just makes them
// visible.
func warnDuplicates(ids []string, name string, rep diag.Reporter) {
	seen := make(map[string]int, len(ids))
	for i, id := range ids {
		if first, dup := seen[id]; dup {
			diag.ReportWarning(rep, diag.ParseDuplicateID, diag.Span{File: name},
				"residue "+strconv.Quote(id)+" repeats").
				WithNote(diag.Span{File: name}, fmt.Sprintf("rows %d and %d", first+1, i+1)).
				Emit()
			continue
		}
		seen[id] = i
	}
}
