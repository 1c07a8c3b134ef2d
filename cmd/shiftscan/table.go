package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"shiftscan/internal/refmodel"
	"shiftscan/internal/report"
)

var tableCmd = &cobra.Command{
	Use:   "table [flags]",
	Short: "Print the built-in reference chemical shift model",
	Long: `Table prints the reference distributions the classifier scores against:
one row per characterized side-chain position, with per-dimension means and
standard deviations in ppm`,
	Args: cobra.NoArgs,
	RunE: runTable,
}

func init() {
	tableCmd.Flags().String("format", "pretty", "output format (pretty|tsv|json)")
	tableCmd.Flags().String("type", "", "show only one amino acid type (e.g. Phe)")
}

func runTable(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	typeFilter, err := cmd.Flags().GetString("type")
	if err != nil {
		return fmt.Errorf("failed to get type flag: %w", err)
	}

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("format") {
		format = manifest.defaultFormat()
	}

	entries := refmodel.Default().Entries()
	if typeFilter != "" {
		filtered := entries[:0:0]
		for _, e := range entries {
			if strings.EqualFold(e.AminoAcid, typeFilter) {
				filtered = append(filtered, e)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("unknown amino acid type: %s", typeFilter)
		}
		entries = filtered
	}

	switch format {
	case "pretty":
		colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return err
		}
		useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
		return report.WriteReferenceTable(os.Stdout, entries, useColor)
	case "tsv":
		return report.ReferenceTSV(os.Stdout, entries)
	case "json":
		return report.ReferenceJSON(os.Stdout, entries)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
