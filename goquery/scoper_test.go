package goquery_test

import (
	"testing"

	"github.com/fwojciec/cfpwatch"
	"github.com/fwojciec/cfpwatch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Scoper implements cfpwatch.Scoper at compile time.
var _ cfpwatch.Scoper = (*goquery.Scoper)(nil)

func mustSelector(t *testing.T, markup string) *cfpwatch.Selector {
	t.Helper()
	sel, err := cfpwatch.ParseSelector(markup)
	require.NoError(t, err)
	return sel
}

func TestScoper_Scope(t *testing.T) {
	t.Parallel()

	t.Run("nil selector returns input unchanged", func(t *testing.T) {
		t.Parallel()

		html := "<p>not even <b>closed"

		got, err := goquery.NewScoper().Scope(html, nil)

		require.NoError(t, err)
		assert.Equal(t, html, got)
	})

	t.Run("returns outer HTML of matching element", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="header"><a href="/home">Home</a></div>
<div class="main-content main-content--with-sidebar"><a href="/cfp">CFP</a></div>
</body></html>`

		got, err := goquery.NewScoper().Scope(html, mustSelector(t, `<div  class="main-content main-content--with-sidebar">`))

		require.NoError(t, err)
		assert.Equal(t, `<div class="main-content main-content--with-sidebar"><a href="/cfp">CFP</a></div>`, got)
	})

	t.Run("class list may be a subset in any order", func(t *testing.T) {
		t.Parallel()

		html := `<div class="z c y"><span>in</span></div>`

		got, err := goquery.NewScoper().Scope(html, mustSelector(t, `<div class="y c">`))

		require.NoError(t, err)
		assert.Equal(t, `<div class="z c y"><span>in</span></div>`, got)
	})

	t.Run("matches by id", func(t *testing.T) {
		t.Parallel()

		html := `<section id="news">a</section><section id="cfp">b</section>`

		got, err := goquery.NewScoper().Scope(html, mustSelector(t, `<section id="cfp">`))

		require.NoError(t, err)
		assert.Equal(t, `<section id="cfp">b</section>`, got)
	})

	t.Run("returns first match in document order", func(t *testing.T) {
		t.Parallel()

		html := `<div class="c"><div class="c">inner</div></div><div class="c">second</div>`

		got, err := goquery.NewScoper().Scope(html, mustSelector(t, `<div class="c">`))

		require.NoError(t, err)
		assert.Equal(t, `<div class="c"><div class="c">inner</div></div>`, got)
	})

	t.Run("no match returns empty string", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewScoper().Scope(`<div class="other">x</div>`, mustSelector(t, `<div class="c">`))

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("missing class means no match", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewScoper().Scope(`<div class="main">x</div>`, mustSelector(t, `<div class="main c">`))

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("recovers from malformed markup", func(t *testing.T) {
		t.Parallel()

		html := `<div class="c"><p>unclosed <a href="/x">link`

		got, err := goquery.NewScoper().Scope(html, mustSelector(t, `<div class="c">`))

		require.NoError(t, err)
		assert.Equal(t, `<div class="c"><p>unclosed <a href="/x">link</a></p></div>`, got)
	})

	t.Run("preserves line structure inside element", func(t *testing.T) {
		t.Parallel()

		html := "<div class=\"c\">\n<a href=\"/a\">A</a>\n<a href=\"/b\">B</a>\n</div>"

		got, err := goquery.NewScoper().Scope(html, mustSelector(t, `<div class="c">`))

		require.NoError(t, err)
		assert.Equal(t, "<div class=\"c\">\n<a href=\"/a\">A</a>\n<a href=\"/b\">B</a>\n</div>", got)
	})
}

func TestTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Call for Papers", goquery.Title("<html><head><title> Call for Papers </title></head></html>"))
	assert.Empty(t, goquery.Title("<p>no title</p>"))
}
