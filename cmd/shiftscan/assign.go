package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"shiftscan/internal/classify"
	"shiftscan/internal/diag"
	"shiftscan/internal/diagfmt"
	"shiftscan/internal/driver"
	"shiftscan/internal/observ"
	"shiftscan/internal/peaklist"
	"shiftscan/internal/refmodel"
	"shiftscan/internal/report"
	"shiftscan/internal/trace"
)

var assignCmd = &cobra.Command{
	Use:   "assign [flags] [H C]",
	Short: "Rank amino acid types for observed CH chemical shifts",
	Long: `Assign ranks amino acid types for an observed 1H/13C cross peak against
the built-in reference model. Pass the two shifts directly, or --file with a
three-column peak list (id H C) to classify a whole list`,
	Args: cobra.MaximumNArgs(2),
	RunE: runAssign,
}

func init() {
	assignCmd.Flags().String("file", "", "three-column peak list to classify")
	assignCmd.Flags().String("format", "pretty", "output format (pretty|tsv|json)")
	assignCmd.Flags().Bool("verbose", false, "include densities and reference positions")
	assignCmd.Flags().Int("top", 0, "print only the N most probable types (0=all)")
	assignCmd.Flags().Bool("save", false, "append results to the results file")
	assignCmd.Flags().Int("jobs", 0, "max parallel workers for --file mode (0=auto)")
}

func runAssign(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	top, err := cmd.Flags().GetInt("top")
	if err != nil {
		return fmt.Errorf("failed to get top flag: %w", err)
	}
	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return fmt.Errorf("failed to get save flag: %w", err)
	}

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("format") {
		format = manifest.defaultFormat()
	}
	switch format {
	case "pretty", "tsv", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if file == "" {
		if len(args) != 2 {
			return fmt.Errorf("expected two shifts (H C) or --file")
		}
		return assignPoint(cmd, args, format, verbose, top, save, manifest)
	}
	if len(args) != 0 {
		return fmt.Errorf("positional shifts and --file are mutually exclusive")
	}
	return assignFile(cmd, file, format, verbose, top, save, manifest)
}

func assignPoint(cmd *cobra.Command, args []string, format string, verbose bool, top int, save bool, manifest *projectManifest) error {
	h, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid 1H shift %q: %w", args[0], err)
	}
	c, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid 13C shift %q: %w", args[1], err)
	}
	p := classify.Point{H: h, C: c}
	if err := classify.ValidatePoint(p); err != nil {
		return err
	}

	res := classify.Score(refmodel.Default(), p)

	switch format {
	case "pretty":
		colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return err
		}
		useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
		opts := report.RankedOptions{Verbose: verbose, Top: top, Color: useColor}
		if err := report.WriteRanked(os.Stdout, res, opts); err != nil {
			return err
		}
	case "tsv":
		if _, err := fmt.Fprintln(os.Stdout, report.RankedTSVHeader); err != nil {
			return err
		}
		if err := report.RankedTSV(os.Stdout, "-", res, top); err != nil {
			return err
		}
	case "json":
		if err := report.RankedJSON(os.Stdout, res, top); err != nil {
			return err
		}
	}

	if save {
		if err := saveRanked(cmd, manifest, []classify.Result{res}, top); err != nil {
			return err
		}
	}
	return nil
}

func assignFile(cmd *cobra.Command, path, format string, verbose bool, top int, save bool, manifest *projectManifest) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	timer := observ.NewTimer()
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}

	phase := timer.Begin("parse")
	peaks, err := peaklist.ReadAssignmentFile(path, rep)
	timer.End(phase, path)
	if err != nil {
		return err
	}

	tracer := trace.FromContext(cmd.Context())
	phase = timer.Begin("score")
	rows, err := driver.ScoreAssignments(cmd.Context(), refmodel.Default(), peaks, driver.ScoreOptions{
		Jobs:   jobs,
		Tracer: tracer,
	})
	timer.End(phase, fmt.Sprintf("%d peaks", len(peaks)))
	if err != nil {
		return err
	}

	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
	if bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, bag, diagfmt.PrettyOpts{Color: useColor, ShowNotes: true})
	}

	phase = timer.Begin("render")
	err = renderAssignRows(cmd, rows, format, verbose, top)
	timer.End(phase, "")
	if err != nil {
		return err
	}

	if save {
		results := make([]classify.Result, len(rows))
		for i, row := range rows {
			results[i] = row.Result
		}
		if err := saveRanked(cmd, manifest, results, top); err != nil {
			return err
		}
	}

	if showTimings {
		printPhaseTimings(os.Stdout, timer)
	}

	if len(rows) == 0 && bag.HasErrors() {
		exitWithDiagnostics(cmd)
		return fmt.Errorf("")
	}
	return nil
}

func renderAssignRows(cmd *cobra.Command, rows []driver.AssignRow, format string, verbose bool, top int) error {
	switch format {
	case "pretty":
		colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return err
		}
		useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
		opts := report.RankedOptions{Verbose: verbose, Top: top, Color: useColor}
		for idx, row := range rows {
			if idx > 0 {
				fmt.Fprintln(os.Stdout)
			}
			fmt.Fprintf(os.Stdout, "== %s ==\n", row.ID)
			if err := report.WriteRanked(os.Stdout, row.Result, opts); err != nil {
				return err
			}
		}
	case "tsv":
		if _, err := fmt.Fprintln(os.Stdout, report.RankedTSVHeader); err != nil {
			return err
		}
		for _, row := range rows {
			if err := report.RankedTSV(os.Stdout, row.ID, row.Result, top); err != nil {
				return err
			}
		}
	case "json":
		ids := make([]string, len(rows))
		results := make([]classify.Result, len(rows))
		for i, row := range rows {
			ids[i] = row.ID
			results[i] = row.Result
		}
		return report.RankedListJSON(os.Stdout, ids, results, top)
	}
	return nil
}

func saveRanked(cmd *cobra.Command, manifest *projectManifest, results []classify.Result, top int) error {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	saver := report.NewSaver(manifest.resultsPath())
	for _, res := range results {
		if err := saver.AppendRanked(res, top); err != nil {
			return fmt.Errorf("failed to save results: %w", err)
		}
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "results appended to %s\n", saver.Path)
	}
	return nil
}
