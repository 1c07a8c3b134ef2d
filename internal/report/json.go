package report

import (
	"encoding/json"
	"io"

	"shiftscan/internal/classify"
	"shiftscan/internal/refmodel"
)

type rankedJSONRow struct {
	AminoAcid   string  `json:"amino_acid"`
	Position    string  `json:"position"`
	Probability float64 `json:"probability"`
	Density     float64 `json:"density"`
}

type rankedJSONDoc struct {
	ID         string          `json:"id,omitempty"`
	HPPM       float64         `json:"h_ppm"`
	CPPM       float64         `json:"c_ppm"`
	Degenerate bool            `json:"degenerate,omitempty"`
	Ranking    []rankedJSONRow `json:"ranking"`
}

func buildRankedDoc(id string, res classify.Result, top int) rankedJSONDoc {
	limit := len(res.Ranked)
	if top > 0 && top < limit {
		limit = top
	}
	doc := rankedJSONDoc{
		ID:         id,
		HPPM:       res.Observed.H,
		CPPM:       res.Observed.C,
		Degenerate: res.Degenerate,
		Ranking:    make([]rankedJSONRow, 0, limit),
	}
	for _, ts := range res.Ranked[:limit] {
		doc.Ranking = append(doc.Ranking, rankedJSONRow{
			AminoAcid:   ts.AminoAcid,
			Position:    ts.Best.Position,
			Probability: ts.Probability,
			Density:     ts.Density,
		})
	}
	return doc
}

// RankedJSON writes one classification as an indented JSON document.
// top limits the ranking length; 0 keeps every type.
func RankedJSON(w io.Writer, res classify.Result, top int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildRankedDoc("", res, top))
}

// RankedListJSON writes classifications for a whole input list, one document
// per row, preserving input order.
func RankedListJSON(w io.Writer, ids []string, results []classify.Result, top int) error {
	docs := make([]rankedJSONDoc, 0, len(results))
	for i, res := range results {
		id := ""
		if i < len(ids) {
			id = ids[i]
		}
		docs = append(docs, buildRankedDoc(id, res, top))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

type referenceJSONRow struct {
	AminoAcid string  `json:"amino_acid"`
	Position  string  `json:"position"`
	MeanH     float64 `json:"mean_h"`
	SigmaH    float64 `json:"sigma_h"`
	MeanC     float64 `json:"mean_c"`
	SigmaC    float64 `json:"sigma_c"`
}

// ReferenceJSON writes the reference model as an indented JSON array.
func ReferenceJSON(w io.Writer, entries []refmodel.Entry) error {
	rows := make([]referenceJSONRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, referenceJSONRow{
			AminoAcid: e.AminoAcid,
			Position:  e.Position,
			MeanH:     e.MeanH,
			SigmaH:    e.SigmaH,
			MeanC:     e.MeanC,
			SigmaC:    e.SigmaC,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
