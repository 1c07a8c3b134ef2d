// Package diagfmt renders collected diagnostics for terminals and machines.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"shiftscan/internal/diag"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgYellow, color.Bold)
	infoStyle    = color.New(color.FgCyan)
	codeStyle    = color.New(color.Faint)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> [<CODE>]: <Message>
// затем Notes с отступом. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, opts PrettyOpts) {
	var line string
	if loc := d.Primary.String(); loc != "" {
		line = loc + ": "
	}

	sev := d.Severity.String()
	code := "[" + d.Code.ID() + "]"
	if opts.Color {
		sev = severityStyle(d.Severity).Sprint(sev)
		code = codeStyle.Sprint(code)
	}
	line += sev + " " + code + ": " + d.Message

	if opts.Color {
		// escape-последовательности ломают подсчёт ширины, цветной вывод не режем
		fmt.Fprintln(w, line)
	} else {
		fmt.Fprintln(w, clip(line, opts.Width))
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		note := "  note: " + n.Msg
		if loc := n.Span.String(); loc != "" {
			note += " (" + loc + ")"
		}
		fmt.Fprintln(w, clip(note, opts.Width))
	}
}

func severityStyle(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorStyle
	case diag.SevWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// clip обрезает строку по ширине терминала с учётом широких рун.
func clip(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width-3, "...")
}
