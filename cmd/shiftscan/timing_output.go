package main

import (
	"fmt"
	"io"

	"shiftscan/internal/observ"
)

func printPhaseTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	report := timer.Report()
	if len(report.Phases) == 0 {
		return
	}
	var printErr error
	for _, phase := range report.Phases {
		if phase.Note != "" {
			_, printErr = fmt.Fprintf(out, "%s %.1f ms (%s)\n", phase.Name, phase.DurationMS, phase.Note)
		} else {
			_, printErr = fmt.Fprintf(out, "%s %.1f ms\n", phase.Name, phase.DurationMS)
		}
		if printErr != nil {
			panic(printErr)
		}
	}
	_, printErr = fmt.Fprintf(out, "total %.1f ms\n", report.TotalMS)
	if printErr != nil {
		panic(printErr)
	}
}
