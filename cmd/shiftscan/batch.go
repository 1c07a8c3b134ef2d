package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shiftscan/internal/csp"
	"shiftscan/internal/diagfmt"
	"shiftscan/internal/driver"
	"shiftscan/internal/observ"
	"shiftscan/internal/report"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] <titration.txt>",
	Short: "Score a five-column titration list",
	Long: `Batch reads a titration peak list (id H1 C1 H2 C2), computes the combined
chemical shift perturbation of every row in parallel, and writes a TSV table.
Bad rows are skipped and reported; --strict turns them into a failure`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Bool("assign", false, "add most-likely type columns for both states")
	batchCmd.Flags().String("region", "aliphatic", "spectral region (aliphatic|aromatic)")
	batchCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	batchCmd.Flags().Bool("strict", false, "treat parse diagnostics as failure")
	batchCmd.Flags().Bool("no-cache", false, "bypass the persistent result cache")
	batchCmd.Flags().String("output", "", "write the TSV to a file instead of stdout")
	batchCmd.Flags().String("ui", "auto", "progress interface (auto|on|off)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	path := args[0]

	assign, err := cmd.Flags().GetBool("assign")
	if err != nil {
		return fmt.Errorf("failed to get assign flag: %w", err)
	}
	regionStr, err := cmd.Flags().GetString("region")
	if err != nil {
		return fmt.Errorf("failed to get region flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return fmt.Errorf("failed to get strict flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}

	region, err := csp.ParseRegion(regionStr)
	if err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	weights, err := manifest.weightsFor(region)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("jobs") {
		jobs = manifest.defaultJobs()
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if !noCache {
		cache, err = driver.OpenDiskCache("shiftscan")
		if err != nil {
			// Без кеша просто медленнее.
			fmt.Fprintf(os.Stderr, "warning: result cache unavailable: %v\n", err)
			cache = nil
		}
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	opts := driver.BatchOptions{
		Region:         region,
		Weights:        weights,
		Assign:         assign,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		NoCache:        noCache,
		Cache:          cache,
		Timer:          timer,
	}

	var result *driver.BatchResult
	var runErr error
	if shouldUseTUI(uiModeValue) {
		result, runErr = runBatchWithUI(cmd.Context(), "shiftscan batch", path, opts)
	} else {
		result, runErr = driver.RunBatch(cmd.Context(), path, opts)
	}

	// Always cleanup profiler
	cleanup()

	if result != nil && showTimings && timer != nil {
		rep := timer.Report()
		driver.AppendTimingDiagnostic(result.Bag, driver.TimingPayload{
			Kind:    "batch",
			Path:    path,
			TotalMS: rep.TotalMS,
			Phases:  rep.Phases,
		})
	}

	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
	if result != nil && result.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, result.Bag, diagfmt.PrettyOpts{Color: useColor, ShowNotes: true})
	}

	if runErr != nil {
		if result != nil && result.Bag.Len() > 0 {
			// Детали уже напечатаны выше.
			exitWithDiagnostics(cmd)
			return fmt.Errorf("")
		}
		flushTracerOnError(cmd)
		return runErr
	}

	if strict && (result.Bag.HasErrors() || result.Bag.HasWarnings()) {
		exitWithDiagnostics(cmd)
		return fmt.Errorf("")
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer f.Close()
		out = f
	}
	if err := report.WriteTitrationTSV(out, result.Rows, assign); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if showTimings {
		printPhaseTimings(os.Stdout, timer)
	}
	if output != "" && !quiet {
		fmt.Fprintf(os.Stdout, "wrote %d rows to %s\n", len(result.Rows), output)
	}
	return nil
}
