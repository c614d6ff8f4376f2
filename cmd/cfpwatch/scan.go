package main

import (
	"fmt"

	"github.com/fwojciec/cfpwatch"
	"github.com/fwojciec/cfpwatch/watch"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	_, err := scan(deps)
	return err
}

func scan(deps *Dependencies) (*watch.ScanResult, error) {
	if len(deps.Venues) == 0 {
		fmt.Fprintln(deps.Stdout, "No enabled venues configured.")
		return &watch.ScanResult{}, nil
	}

	progress := func(event watch.ProgressEvent) {
		switch event.Type {
		case watch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scanning %d venues\n", event.Total)
		case watch.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s: %d new\n", event.Completed, event.Total, event.Venue, event.Links)
		case watch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s: %s\n", event.Completed, event.Total, event.Venue, errorText(event.Error))
		}
	}

	result, err := deps.Watcher.Scan(deps.Ctx, deps.Venues, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scanning: %v\n", err)
		return nil, err
	}

	fmt.Fprintf(deps.Stdout, "Scanned %d venues (%d first run, %d changed, %d failed); saved %d of %d links (%d duplicate, %d failed)\n",
		result.Scanned+result.Failed, result.FirstRun, result.Changed, result.Failed,
		result.Saved, result.Links, result.Duplicates, result.LinkErrors)
	return result, nil
}

// errorText prefers the message of an application error.
func errorText(err error) string {
	if cfpwatch.ErrorCode(err) == cfpwatch.EINTERNAL {
		return err.Error()
	}
	return cfpwatch.ErrorMessage(err)
}
