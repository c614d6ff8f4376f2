package main

import (
	"fmt"

	"github.com/fwojciec/cfpwatch/watch"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	return analyze(deps)
}

func analyze(deps *Dependencies) error {
	result, err := deps.Analyzer.Analyze(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error analyzing: %s\n", errorText(err))
		return err
	}

	if len(result.Candidates) == 0 {
		fmt.Fprintln(deps.Stdout, "No candidates to analyze.")
	}
	for _, c := range result.Candidates {
		title := c.Title
		if title == "" {
			title = watch.TruncateURL(c.Link, 60)
		}
		fmt.Fprintf(deps.Stdout, "%4s  %-30s %s\n", watch.FormatScore(c.Score), c.Venue, title)
	}
	if result.Skipped > 0 || result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d over budget, %d failed\n", result.Skipped, result.Failed)
	}
	if result.Emailed {
		fmt.Fprintf(deps.Stdout, "Emailed report to %s\n", deps.Analyzer.To)
	}
	return nil
}
