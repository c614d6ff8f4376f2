package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/cfpwatch"
)

// Run executes the diff command.
func (c *DiffCmd) Run(deps *Dependencies) error {
	sel, err := cfpwatch.ParseSelector(c.Element)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cfpwatch.ErrorMessage(err))
		return err
	}

	oldBody, err := os.ReadFile(c.Old)
	if err != nil {
		return err
	}
	newBody, err := os.ReadFile(c.New)
	if err != nil {
		return err
	}

	if c.Unified {
		if err := c.printDiff(deps, string(oldBody), string(newBody), sel); err != nil {
			return err
		}
	}

	links, err := deps.Detector.DetectLinks(string(oldBody), string(newBody), c.Base, sel)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if len(links) == 0 {
		fmt.Fprintln(deps.Stdout, "No new links.")
		return nil
	}
	for _, l := range links {
		href := "(no href)"
		if l.Href != nil {
			href = *l.Href
		}
		if l.Text != "" {
			fmt.Fprintf(deps.Stdout, "%s\t%s\n", href, l.Text)
		} else {
			fmt.Fprintln(deps.Stdout, href)
		}
	}
	return nil
}

func (c *DiffCmd) printDiff(deps *Dependencies, oldBody, newBody string, sel *cfpwatch.Selector) error {
	oldScoped, err := deps.Scoper.Scope(oldBody, sel)
	if err != nil {
		return err
	}
	newScoped, err := deps.Scoper.Scope(newBody, sel)
	if err != nil {
		return err
	}
	fmt.Fprint(deps.Stdout, cfpwatch.FormatDiff(deps.Differ.Diff(oldScoped, newScoped)))
	return nil
}
