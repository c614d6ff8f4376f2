// Package toml loads the watched venue table from a TOML file.
package toml

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/cfpwatch"
)

// File is the decoded venue file.
type File struct {
	Venues []VenueConfig `toml:"venues"`
}

// VenueConfig is one [[venues]] entry. Element and Content hold an opening
// tag such as <div class="main-content">.
type VenueConfig struct {
	Name    string `toml:"name"`
	Base    string `toml:"base"`
	URL     string `toml:"url"`
	Element string `toml:"element"`
	Content string `toml:"content"`
	Enabled *bool  `toml:"enabled"` // defaults to true if not set
}

// IsEnabled returns true if the venue is enabled (defaults to true if not explicitly set).
func (c VenueConfig) IsEnabled() bool {
	if c.Enabled == nil {
		return true
	}
	return *c.Enabled
}

// LoadVenues reads and decodes the venue file at path.
// See DecodeVenues for the returned values.
func LoadVenues(path string) ([]*cfpwatch.Venue, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	venues, warnings, err := DecodeVenues(string(data))
	if err != nil {
		return nil, nil, fmt.Errorf("venue file %s: %w", path, err)
	}
	return venues, warnings, nil
}

// DecodeVenues parses a venue table. Entries without a name or URL are
// placeholders: they are skipped and reported in warnings. Disabled entries
// are dropped silently. Selectors are parsed once here, so a malformed one
// fails loading with EINVALID.
func DecodeVenues(data string) ([]*cfpwatch.Venue, []string, error) {
	var file File
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, nil, cfpwatch.Errorf(cfpwatch.EINVALID, "decode venues: %v", err)
	}

	var warnings []string
	venues := make([]*cfpwatch.Venue, 0, len(file.Venues))
	seen := make(map[string]bool, len(file.Venues))

	for i, c := range file.Venues {
		if c.Name == "" || c.URL == "" {
			warnings = append(warnings, fmt.Sprintf("venue #%d skipped: name and url are required", i+1))
			continue
		}
		if !c.IsEnabled() {
			continue
		}
		if seen[c.Name] {
			return nil, nil, cfpwatch.Errorf(cfpwatch.EINVALID, "duplicate venue name %q", c.Name)
		}
		seen[c.Name] = true

		v, err := c.venue()
		if err != nil {
			return nil, nil, err
		}
		venues = append(venues, v)
	}

	return venues, warnings, nil
}

func (c VenueConfig) venue() (*cfpwatch.Venue, error) {
	element, err := cfpwatch.ParseSelector(c.Element)
	if err != nil {
		return nil, cfpwatch.Errorf(cfpwatch.EINVALID, "venue %q element: %s", c.Name, cfpwatch.ErrorMessage(err))
	}
	content, err := cfpwatch.ParseSelector(c.Content)
	if err != nil {
		return nil, cfpwatch.Errorf(cfpwatch.EINVALID, "venue %q content: %s", c.Name, cfpwatch.ErrorMessage(err))
	}

	v := &cfpwatch.Venue{
		Name:    c.Name,
		Base:    c.Base,
		URL:     c.URL,
		Element: element,
		Content: content,
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}
