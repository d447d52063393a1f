package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"typograph/internal/driver"
	"typograph/internal/source"
	"typograph/internal/ui"
)

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.CheckDirResult
	err     error
}

// runCheckDirWithUI runs a directory check behind a Bubble Tea progress view.
func runCheckDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.CheckOptions) (*source.FileSet, []driver.CheckDirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.CheckDir(ctx, dir, optsCopy)
		outcomeCh <- checkOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
