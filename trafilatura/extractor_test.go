package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/cfpwatch"
	"github.com/fwojciec/cfpwatch/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements cfpwatch.Extractor at compile time.
var _ cfpwatch.Extractor = (*trafilatura.Extractor)(nil)

const cfpPage = `<!DOCTYPE html>
<html>
<head>
<title>Special Issue on Integrated Sensing | IEEE ComSoc</title>
<meta property="og:title" content="Special Issue on Integrated Sensing and Communication">
</head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home Nav Link</a></li>
<li><a href="/publications">Publications Nav Link</a></li>
</ul>
</nav>
<article>
<h1>Special Issue on Integrated Sensing and Communication</h1>
<p>Integrated sensing and communication is expected to be a key enabler of sixth generation networks,
allowing the radio access network to perceive its environment while it serves users.</p>
<p>This special issue solicits original contributions on waveform design, resource allocation,
and learning-based receivers for joint sensing and communication systems.</p>
<p>Manuscripts must be submitted through <a href="https://mc.manuscriptcentral.com/net">ScholarOne Manuscripts</a>
by the submission deadline of 1 March 2026.</p>
</article>
<footer class="site-footer">
<p>Copyright Footer Text</p>
</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(cfpPage, "https://www.comsoc.org/cfp/isac")

		require.NoError(t, err)
		assert.Contains(t, result.Title, "Integrated Sensing")
	})

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(cfpPage, "https://www.comsoc.org/cfp/isac")

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "waveform design")
		assert.Contains(t, result.ContentHTML, "1 March 2026")
	})

	t.Run("removes navigation boilerplate", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(cfpPage, "https://www.comsoc.org/cfp/isac")

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "Home Nav Link")
		assert.NotContains(t, result.ContentHTML, "Publications Nav Link")
	})

	t.Run("removes footer boilerplate", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(cfpPage, "https://www.comsoc.org/cfp/isac")

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "Copyright Footer Text")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("", "")

		require.Error(t, err)
		assert.Equal(t, cfpwatch.EINVALID, cfpwatch.ErrorCode(err))
	})

	t.Run("returns error for relative page URL", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract(cfpPage, "cfp/isac")

		require.Error(t, err)
		assert.Equal(t, cfpwatch.EINVALID, cfpwatch.ErrorCode(err))
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Simple call for papers content</p></body></html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html, "")

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Simple call for papers content")
	})
}
