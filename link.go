package cfpwatch

// RawLink is an anchor as it appears in markup, before href resolution.
// A nil Href or Hreflang means the attribute was absent.
type RawLink struct {
	Href     *string
	Hreflang *string
	Text     string
}

// Link is an anchor introduced by a change to a venue page.
// Href is absolute, or nil when the anchor had no href attribute.
type Link struct {
	Href     *string `json:"href"`
	Hreflang *string `json:"hreflang"`
	Text     string  `json:"text"`
}

// Scoper narrows an HTML document to a single element.
type Scoper interface {
	// Scope returns the outer HTML of the first element matched by sel.
	// A nil sel returns html unchanged. No match returns "".
	// Malformed markup is recovered from, never reported.
	Scope(html string, sel *Selector) (string, error)
}

// LinkExtractor parses anchors out of a fragment of HTML.
type LinkExtractor interface {
	// ExtractLinks returns one RawLink per anchor in document order.
	// Text is the anchor's concatenated descendant text, trimmed.
	ExtractLinks(fragment string) ([]RawLink, error)
}

// ChangeDetector finds links introduced between two versions of a page.
type ChangeDetector interface {
	// DetectLinks scopes both bodies with sel, diffs them line by line and
	// returns links found on added lines, resolved against base.
	// An empty result means no changes were detected.
	DetectLinks(oldBody, newBody, base string, sel *Selector) ([]Link, error)
}
