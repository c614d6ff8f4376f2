package cfpwatch

import (
	"net/url"
	"strings"
)

// Venue is a publication whose call-for-papers page is watched.
type Venue struct {
	// Name identifies the venue and keys its snapshot.
	Name string

	// Base is the URL that relative links on the page resolve against.
	Base string

	// URL is the page to watch.
	URL string

	// Element scopes change detection to one element of the page.
	// Nil compares the whole page.
	Element *Selector

	// Content selects the main region of linked pages.
	// Nil falls back to boilerplate removal.
	Content *Selector
}

// Validate returns an error if the venue contains invalid fields.
func (v *Venue) Validate() error {
	if v.Name == "" {
		return Errorf(EINVALID, "venue name required")
	}
	if v.URL == "" {
		return Errorf(EINVALID, "venue %q URL required", v.Name)
	}
	if !isAbsoluteURL(v.URL) {
		return Errorf(EINVALID, "venue %q URL must be absolute: %q", v.Name, v.URL)
	}
	if v.Base != "" && !isAbsoluteURL(v.Base) {
		return Errorf(EINVALID, "venue %q base must be absolute: %q", v.Name, v.Base)
	}
	return nil
}

// BaseURL returns Base, falling back to the scheme and host of URL.
func (v *Venue) BaseURL() string {
	if v.Base != "" {
		return v.Base
	}
	u, err := url.Parse(v.URL)
	if err != nil {
		return v.URL
	}
	return u.Scheme + "://" + u.Host
}

// SnapshotFilename derives the file name a page is stored under from its URL.
// The last path segment is used, defaulting to downloaded_file.html, and an
// .html suffix is enforced.
func SnapshotFilename(rawURL string) string {
	name := "downloaded_file.html"
	if u, err := url.Parse(rawURL); err == nil {
		if base := u.Path[strings.LastIndex(u.Path, "/")+1:]; base != "" {
			name = base
		}
	}
	if !strings.HasSuffix(name, ".html") {
		name += ".html"
	}
	return name
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
