package cfpwatch

import "strings"

// DiffOp classifies a line of a unified diff.
type DiffOp int

// Diff line classifications.
const (
	DiffEqual DiffOp = iota
	DiffInsert
	DiffDelete
	DiffHeader
)

// String returns the unified diff marker for the op.
func (op DiffOp) String() string {
	switch op {
	case DiffInsert:
		return "+"
	case DiffDelete:
		return "-"
	case DiffHeader:
		return "header"
	default:
		return " "
	}
}

// DiffLine is one classified line. Text excludes the diff marker and keeps
// the line terminator, if the source line had one.
type DiffLine struct {
	Op   DiffOp
	Text string
}

// Differ computes line-oriented diffs.
type Differ interface {
	// Diff compares oldText and newText line by line. Header lines are
	// emitted only when the inputs differ.
	Diff(oldText, newText string) []DiffLine
}

// Inserted returns the text of every inserted line, in diff order.
func Inserted(lines []DiffLine) []string {
	var out []string
	for _, l := range lines {
		if l.Op == DiffInsert {
			out = append(out, l.Text)
		}
	}
	return out
}

// CountOps returns the number of inserted and deleted lines.
func CountOps(lines []DiffLine) (inserted, deleted int) {
	for _, l := range lines {
		switch l.Op {
		case DiffInsert:
			inserted++
		case DiffDelete:
			deleted++
		}
	}
	return inserted, deleted
}

// FormatDiff renders lines with unified diff markers. Lines without a
// terminator are followed by a newline.
func FormatDiff(lines []DiffLine) string {
	var b strings.Builder
	for _, l := range lines {
		if l.Op != DiffHeader {
			b.WriteString(l.Op.String())
		}
		b.WriteString(l.Text)
		if !strings.HasSuffix(l.Text, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
