package diagfmt

import (
	"encoding/json"
	"io"

	"shiftscan/internal/diag"
)

type jsonNote struct {
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	File     string     `json:"file,omitempty"`
	Line     uint32     `json:"line,omitempty"`
	Col      uint32     `json:"col,omitempty"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

type jsonReport struct {
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Truncated   bool             `json:"truncated,omitempty"`
}

// JSON пишет диагностики одним JSON-документом для машинной обработки.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	report := jsonReport{Diagnostics: []jsonDiagnostic{}}
	if bag == nil {
		return encodeReport(w, report)
	}

	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			report.Errors++
		case diag.SevWarning:
			report.Warnings++
		}

		if opts.Max > 0 && len(report.Diagnostics) >= opts.Max {
			report.Truncated = true
			continue
		}

		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			File:     d.Primary.File,
			Line:     d.Primary.Line,
			Col:      d.Primary.Col,
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				jd.Notes = append(jd.Notes, jsonNote{
					Message:  n.Msg,
					Location: n.Span.String(),
				})
			}
		}
		report.Diagnostics = append(report.Diagnostics, jd)
	}

	return encodeReport(w, report)
}

func encodeReport(w io.Writer, report jsonReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
