package driver

import (
	"encoding/json"
	"fmt"

	"shiftscan/internal/diag"
	"shiftscan/internal/observ"
)

// TimingPayload is the JSON shape embedded into a timings diagnostic note.
type TimingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// AppendTimingDiagnostic attaches a phase timing report to the bag as an
// info diagnostic so it travels with the rest of the run's output.
func AppendTimingDiagnostic(bag *diag.Bag, payload TimingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "batch"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  diag.Span{},
		Notes: []diag.Note{
			{Span: diag.Span{}, Msg: string(data)},
		},
	}

	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(bag.Len() + 1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
