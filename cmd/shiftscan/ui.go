package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"shiftscan/internal/refmodel"
	"shiftscan/internal/report"
	"shiftscan/internal/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Interactive analysis session",
	Long: `Ui starts a menu-driven session: amino acid type assignment and chemical
shift perturbation with inline results. Perturbation results are appended to
the results file`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func runUI(cmd *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("interactive session requires a terminal")
	}

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	saver := report.NewSaver(manifest.resultsPath())

	model := ui.NewSessionModel(refmodel.Default(), saver)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}
	return nil
}
