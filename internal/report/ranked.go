// Package report renders classification and perturbation results: console
// tables, TSV exports, and the append-only results file with timestamped
// blocks.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"shiftscan/internal/classify"
)

// RankedOptions controls the console rendering of one classification.
type RankedOptions struct {
	// Verbose adds the raw density and best-position columns.
	Verbose bool
	// Top limits the number of printed types; 0 prints all.
	Top int
	// Color enables ANSI styling of the header and the winner line.
	Color bool
}

var (
	headerStyle = color.New(color.Bold)
	winnerStyle = color.New(color.FgGreen, color.Bold)
	mutedStyle  = color.New(color.Faint)
)

const rankedRule = 70

// WriteRanked prints the ranked classification table for one observed point.
// Layout follows the classic console report: type, probability, and in
// verbose mode the aggregated density with the best-matching position.
func WriteRanked(w io.Writer, res classify.Result, opts RankedOptions) error {
	title := fmt.Sprintf("Amino acid type probabilities for peak (H=%g, C=%g):", res.Observed.H, res.Observed.C)
	if opts.Color {
		title = headerStyle.Sprint(title)
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}

	rule := strings.Repeat("-", rankedRule)
	if _, err := fmt.Fprintln(w, rule); err != nil {
		return err
	}
	if opts.Verbose {
		fmt.Fprintf(w, "%s | %s | %s | %s\n",
			pad("Type", 10), pad("P", 12), pad("Density (f)", 20), pad("Position", 10))
	} else {
		fmt.Fprintf(w, "%s | %s\n", pad("Type", 10), pad("P", 12))
	}
	if _, err := fmt.Fprintln(w, rule); err != nil {
		return err
	}

	limit := len(res.Ranked)
	if opts.Top > 0 && opts.Top < limit {
		limit = opts.Top
	}
	for _, ts := range res.Ranked[:limit] {
		if opts.Verbose {
			fmt.Fprintf(w, "%s | %s | %s | %s\n",
				pad(ts.AminoAcid, 10),
				pad(fmt.Sprintf("%.6f", ts.Probability), 12),
				pad(fmt.Sprintf("%.6e", ts.Density), 20),
				pad(ts.Best.Position, 10))
		} else {
			fmt.Fprintf(w, "%s | %s\n",
				pad(ts.AminoAcid, 10),
				pad(fmt.Sprintf("%.6f", ts.Probability), 12))
		}
	}
	if _, err := fmt.Fprintln(w, rule); err != nil {
		return err
	}

	if res.Degenerate {
		note := "All reference densities underflowed to zero; probabilities are uninformative."
		if opts.Color {
			note = mutedStyle.Sprint(note)
		}
		_, err := fmt.Fprintln(w, note)
		return err
	}

	top := res.Top()
	summary := fmt.Sprintf("Most likely amino acid type: %s (P = %.4f)", top.AminoAcid, top.Probability)
	if opts.Color {
		summary = winnerStyle.Sprint(summary)
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

// RankedTSV writes one classification as TSV rows, one row per type:
// id, type, probability, density, best position.
func RankedTSV(w io.Writer, id string, res classify.Result, top int) error {
	limit := len(res.Ranked)
	if top > 0 && top < limit {
		limit = top
	}
	for _, ts := range res.Ranked[:limit] {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%.6f\t%.6e\t%s\n",
			id, ts.AminoAcid, ts.Probability, ts.Density, ts.Best.Position); err != nil {
			return err
		}
	}
	return nil
}

// RankedTSVHeader is the column header matching RankedTSV rows.
const RankedTSVHeader = "Residue\tType\tP\tDensity\tPosition"

// pad right-pads s to the given display width. Greek position labels are
// wider than their byte length, so plain %-*s misaligns them.
func pad(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
