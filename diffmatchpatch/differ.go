// Package diffmatchpatch implements cfpwatch.Differ with the Myers diff
// from github.com/sergi/go-diff, run at line granularity.
package diffmatchpatch

import (
	"strings"

	"github.com/fwojciec/cfpwatch"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// File labels used in header lines.
const (
	FromFile = "old"
	ToFile   = "new"
)

// Ensure Differ implements cfpwatch.Differ at compile time.
var _ cfpwatch.Differ = (*Differ)(nil)

// Differ computes minimal full-context line diffs.
type Differ struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffer creates a new Differ.
func NewDiffer() *Differ {
	dmp := diffmatchpatch.New()
	// A zero timeout disables the half-match speedup, which can return a
	// non-minimal diff, and lets the bisection run to completion.
	dmp.DiffTimeout = 0
	return &Differ{dmp: dmp}
}

// Diff compares the texts line by line. Every line of both inputs appears
// exactly once in the output: lines of a longest common subsequence as
// DiffEqual, the rest as DiffDelete or DiffInsert. Within a changed region
// deletions precede insertions.
func (d *Differ) Diff(oldText, newText string) []cfpwatch.DiffLine {
	if oldText == newText {
		return equalLines(oldText)
	}

	// Each line is mapped to one rune so the character diff is a line diff.
	a, b, lineArray := d.dmp.DiffLinesToRunes(oldText, newText)
	diffs := d.dmp.DiffCharsToLines(d.dmp.DiffMainRunes(a, b, false), lineArray)

	lines := []cfpwatch.DiffLine{
		{Op: cfpwatch.DiffHeader, Text: "--- " + FromFile + "\n"},
		{Op: cfpwatch.DiffHeader, Text: "+++ " + ToFile + "\n"},
	}
	for _, diff := range diffs {
		var op cfpwatch.DiffOp
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			op = cfpwatch.DiffInsert
		case diffmatchpatch.DiffDelete:
			op = cfpwatch.DiffDelete
		default:
			op = cfpwatch.DiffEqual
		}
		for _, l := range SplitLines(diff.Text) {
			lines = append(lines, cfpwatch.DiffLine{Op: op, Text: l})
		}
	}
	return lines
}

// SplitLines splits s after each newline, keeping terminators, so that
// joining the result reproduces s. The last line has no terminator when s
// does not end with one. An empty s has no lines.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func equalLines(s string) []cfpwatch.DiffLine {
	split := SplitLines(s)
	lines := make([]cfpwatch.DiffLine, 0, len(split))
	for _, l := range split {
		lines = append(lines, cfpwatch.DiffLine{Op: cfpwatch.DiffEqual, Text: l})
	}
	return lines
}
