package diffmatchpatch_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/cfpwatch"
	"github.com/fwojciec/cfpwatch/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Differ implements cfpwatch.Differ at compile time.
var _ cfpwatch.Differ = (*diffmatchpatch.Differ)(nil)

func TestDiffer_Diff(t *testing.T) {
	t.Parallel()

	t.Run("identical texts have no changes and no headers", func(t *testing.T) {
		t.Parallel()

		text := "<ul>\n<li>a</li>\n</ul>\n"

		lines := diffmatchpatch.NewDiffer().Diff(text, text)

		require.Len(t, lines, 3)
		for _, l := range lines {
			assert.Equal(t, cfpwatch.DiffEqual, l.Op)
		}
	})

	t.Run("both empty yields nothing", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, diffmatchpatch.NewDiffer().Diff("", ""))
	})

	t.Run("empty old text inserts every new line", func(t *testing.T) {
		t.Parallel()

		lines := diffmatchpatch.NewDiffer().Diff("", "a\nb\nc")

		assert.Equal(t, []string{"a\n", "b\n", "c"}, cfpwatch.Inserted(lines))
		_, del := cfpwatch.CountOps(lines)
		assert.Zero(t, del)
	})

	t.Run("empty new text deletes every old line", func(t *testing.T) {
		t.Parallel()

		lines := diffmatchpatch.NewDiffer().Diff("a\nb\n", "")

		ins, del := cfpwatch.CountOps(lines)
		assert.Zero(t, ins)
		assert.Equal(t, 2, del)
	})

	t.Run("headers precede content and are not changes", func(t *testing.T) {
		t.Parallel()

		lines := diffmatchpatch.NewDiffer().Diff("a\n", "a\nb\n")

		assert.Equal(t, []cfpwatch.DiffLine{
			{Op: cfpwatch.DiffHeader, Text: "--- old\n"},
			{Op: cfpwatch.DiffHeader, Text: "+++ new\n"},
			{Op: cfpwatch.DiffEqual, Text: "a\n"},
			{Op: cfpwatch.DiffInsert, Text: "b\n"},
		}, lines)
	})

	t.Run("added lines that look like headers are still inserts", func(t *testing.T) {
		t.Parallel()

		lines := diffmatchpatch.NewDiffer().Diff("x\n", "x\n+++ y\n")

		assert.Equal(t, []string{"+++ y\n"}, cfpwatch.Inserted(lines))
	})

	t.Run("replacement lists deletions before insertions", func(t *testing.T) {
		t.Parallel()

		lines := diffmatchpatch.NewDiffer().Diff("a\nold\nc\n", "a\nnew\nc\n")

		assert.Equal(t, []cfpwatch.DiffLine{
			{Op: cfpwatch.DiffHeader, Text: "--- old\n"},
			{Op: cfpwatch.DiffHeader, Text: "+++ new\n"},
			{Op: cfpwatch.DiffEqual, Text: "a\n"},
			{Op: cfpwatch.DiffDelete, Text: "old\n"},
			{Op: cfpwatch.DiffInsert, Text: "new\n"},
			{Op: cfpwatch.DiffEqual, Text: "c\n"},
		}, lines)
	})

	t.Run("line terminators are kept so output reassembles both inputs", func(t *testing.T) {
		t.Parallel()

		oldText := "<div>\r\n<a>1</a>\r\n</div>"
		newText := "<div>\r\n<a>0</a>\r\n<a>1</a>\r\n</div>"

		lines := diffmatchpatch.NewDiffer().Diff(oldText, newText)

		var gotOld, gotNew strings.Builder
		for _, l := range lines {
			switch l.Op {
			case cfpwatch.DiffEqual:
				gotOld.WriteString(l.Text)
				gotNew.WriteString(l.Text)
			case cfpwatch.DiffDelete:
				gotOld.WriteString(l.Text)
			case cfpwatch.DiffInsert:
				gotNew.WriteString(l.Text)
			}
		}
		assert.Equal(t, oldText, gotOld.String())
		assert.Equal(t, newText, gotNew.String())
		assert.Equal(t, []string{"<a>0</a>\r\n"}, cfpwatch.Inserted(lines))
	})

	t.Run("repeated markup only reports the real insertions", func(t *testing.T) {
		t.Parallel()

		oldText := strings.Repeat("<div>\n<a>x</a>\n</div>\n", 300)
		newText := strings.Replace(oldText, "<a>x</a>\n", "<a>x</a>\n<a>y</a>\n", 7)

		d := diffmatchpatch.NewDiffer()
		first := d.Diff(oldText, newText)

		assert.Equal(t, []string{
			"<a>y</a>\n", "<a>y</a>\n", "<a>y</a>\n", "<a>y</a>\n",
			"<a>y</a>\n", "<a>y</a>\n", "<a>y</a>\n",
		}, cfpwatch.Inserted(first))
		_, del := cfpwatch.CountOps(first)
		assert.Zero(t, del)

		for i := 0; i < 3; i++ {
			assert.Equal(t, first, d.Diff(oldText, newText), "output must be stable across runs")
		}
	})
}

func TestDiffer_Diff_EqualLinesAreLongestCommonSubsequence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
	}{
		{"insertion", "x\ny\nz\n", "x\nq\ny\nz\n"},
		{"rotation", "a\nb\nc\nd\n", "b\nc\nd\na\n"},
		{"repeated markup", "<div>\n<a>1</a>\n</div>\n<div>\n<a>2</a>\n</div>\n",
			"<div>\n<a>1</a>\n</div>\n<div>\n<a>new</a>\n</div>\n<div>\n<a>2</a>\n</div>\n"},
		{"disjoint", "a\nb\n", "c\nd\n"},
		{"deletion and insertion", "h\n1\n2\n3\nf\n", "h\n2\n3\n4\nf\n"},
		{"crossing moves", "a\nb\nc\na\nb\nb\na\n", "c\nb\na\nb\na\nc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines := diffmatchpatch.NewDiffer().Diff(tt.a, tt.b)

			var equal []string
			for _, l := range lines {
				if l.Op == cfpwatch.DiffEqual {
					equal = append(equal, l.Text)
				}
			}
			a := diffmatchpatch.SplitLines(tt.a)
			b := diffmatchpatch.SplitLines(tt.b)
			assert.Len(t, equal, lcsLen(a, b))
			assert.True(t, isSubsequence(equal, a))
			assert.True(t, isSubsequence(equal, b))
		})
	}
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	assert.Nil(t, diffmatchpatch.SplitLines(""))
	assert.Equal(t, []string{"a\n", "b"}, diffmatchpatch.SplitLines("a\nb"))
	assert.Equal(t, []string{"a\n", "b\n"}, diffmatchpatch.SplitLines("a\nb\n"))
	assert.Equal(t, []string{"\n", "\n"}, diffmatchpatch.SplitLines("\n\n"))
}

func lcsLen(a, b []string) int {
	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}
	return dp[0][0]
}

func isSubsequence(sub, seq []string) bool {
	i := 0
	for _, s := range seq {
		if i < len(sub) && sub[i] == s {
			i++
		}
	}
	return i == len(sub)
}
