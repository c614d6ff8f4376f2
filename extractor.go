package cfpwatch

// ExtractResult is the main content region found on a linked page.
type ExtractResult struct {
	// Title comes from the page metadata and may be empty.
	Title string

	// ContentHTML is the article body with navigation, footers and
	// sidebars removed.
	ContentHTML string
}

// Extractor finds the main content of a linked page whose venue has no
// content selector, or whose selector matched nothing. pageURL, when
// non-empty, is used to resolve relative links inside the content.
// Implementations return ENOTFOUND when the page has no usable region so the
// caller can try the next extractor.
type Extractor interface {
	Extract(html, pageURL string) (*ExtractResult, error)
}
