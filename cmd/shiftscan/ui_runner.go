package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"shiftscan/internal/driver"
	"shiftscan/internal/ui"
)

type batchOutcome struct {
	result *driver.BatchResult
	err    error
}

func runBatchWithUI(ctx context.Context, title, path string, opts driver.BatchOptions) (*driver.BatchResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		res, err := driver.RunBatch(ctx, path, optsCopy)
		outcomeCh <- batchOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
