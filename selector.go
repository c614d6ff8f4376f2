package cfpwatch

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Selector identifies a single HTML element by tag name, class set and id.
// A Selector is immutable once constructed.
type Selector struct {
	tag     string
	classes []string
	id      string
}

// NewSelector returns a Selector for the given tag. Classes and id are optional;
// duplicate and empty class names are dropped.
func NewSelector(tag string, classes []string, id string) (*Selector, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return nil, Errorf(EINVALID, "selector tag required")
	}
	if strings.ContainsAny(tag, " \t\n<>/=\"'") {
		return nil, Errorf(EINVALID, "invalid selector tag %q", tag)
	}

	var set []string
	for _, c := range classes {
		for _, f := range strings.Fields(c) {
			if !slices.Contains(set, f) {
				set = append(set, f)
			}
		}
	}

	return &Selector{tag: tag, classes: set, id: strings.TrimSpace(id)}, nil
}

// ParseSelector builds a Selector from the opening tag of an element,
// e.g. `<div class="main-content main-content--with-sidebar">`.
// Only the tag name and the class and id attributes are used.
// An empty string yields a nil Selector, meaning "no scoping".
func ParseSelector(markup string) (*Selector, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, nil
	}

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return nil, Errorf(EINVALID, "selector %q has no opening tag", markup)
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			var classes []string
			var id string
			for _, attr := range tok.Attr {
				switch attr.Key {
				case "class":
					classes = append(classes, attr.Val)
				case "id":
					id = attr.Val
				}
			}
			return NewSelector(tok.Data, classes, id)
		}
	}
}

// Tag returns the lower-cased element name.
func (s *Selector) Tag() string { return s.tag }

// Classes returns a copy of the required class names.
func (s *Selector) Classes() []string { return slices.Clone(s.classes) }

// ID returns the required id, or "" if any id matches.
func (s *Selector) ID() string { return s.id }

// Match reports whether an element with the given tag name, class attribute
// and id attribute is selected. The class attribute must contain every
// selector class, in any order.
func (s *Selector) Match(tag, classAttr, id string) bool {
	if !strings.EqualFold(tag, s.tag) {
		return false
	}
	if s.id != "" && id != s.id {
		return false
	}
	have := strings.Fields(classAttr)
	for _, c := range s.classes {
		if !slices.Contains(have, c) {
			return false
		}
	}
	return true
}

// String renders the selector as an opening tag.
func (s *Selector) String() string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(s.tag)
	if len(s.classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(strings.Join(s.classes, " "))
		b.WriteString(`"`)
	}
	if s.id != "" {
		b.WriteString(` id="`)
		b.WriteString(s.id)
		b.WriteString(`"`)
	}
	b.WriteString(">")
	return b.String()
}
