package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"shiftscan/internal/csp"
	"shiftscan/internal/report"
	"shiftscan/internal/trace"
)

var cspCmd = &cobra.Command{
	Use:   "csp [flags] H1 C1 H2 C2",
	Short: "Compute the combined chemical shift perturbation between two states",
	Long: `Csp computes the combined 1H/13C chemical shift perturbation between a
free and a bound state, weighting the carbon delta by the spectral region`,
	Args: cobra.ExactArgs(4),
	RunE: runCsp,
}

func init() {
	cspCmd.Flags().String("region", "aliphatic", "spectral region (aliphatic|aromatic)")
	cspCmd.Flags().Bool("explain", false, "print the step-by-step arithmetic")
	cspCmd.Flags().Bool("save", false, "append the result to the results file")
}

func runCsp(cmd *cobra.Command, args []string) error {
	regionStr, err := cmd.Flags().GetString("region")
	if err != nil {
		return fmt.Errorf("failed to get region flag: %w", err)
	}
	explain, err := cmd.Flags().GetBool("explain")
	if err != nil {
		return fmt.Errorf("failed to get explain flag: %w", err)
	}
	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return fmt.Errorf("failed to get save flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	region, err := csp.ParseRegion(regionStr)
	if err != nil {
		return err
	}

	shifts := make([]float64, 4)
	names := [4]string{"1H (state 1)", "13C (state 1)", "1H (state 2)", "13C (state 2)"}
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid %s shift %q: %w", names[i], arg, err)
		}
		shifts[i] = v
	}

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	weights, err := manifest.weightsFor(region)
	if err != nil {
		return err
	}

	dH, dC := csp.Deltas(shifts[0], shifts[1], shifts[2], shifts[3])
	rec := report.CSPRecord{
		H1: shifts[0], C1: shifts[1],
		H2: shifts[2], C2: shifts[3],
		Region:    region,
		Breakdown: csp.Explain(dH, dC, weights),
	}
	trace.Point(trace.FromContext(cmd.Context()), trace.ScopeCSP, "combined", region.String())

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	if err := report.WriteCSP(os.Stdout, rec, useColor); err != nil {
		return err
	}
	if explain {
		fmt.Fprintln(os.Stdout)
		if err := report.WriteCSPVerification(os.Stdout, rec); err != nil {
			return err
		}
	}

	if save {
		saver := report.NewSaver(manifest.resultsPath())
		if err := saver.AppendCSP(rec); err != nil {
			return fmt.Errorf("failed to save results: %w", err)
		}
		if !quiet {
			fmt.Fprintf(os.Stdout, "results appended to %s\n", saver.Path)
		}
	}
	return nil
}
