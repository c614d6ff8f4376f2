// Package change finds the links a venue page gained between two snapshots.
// It composes a Scoper, a Differ and a LinkExtractor; it performs no I/O
// and holds no state between calls, so a Detector is safe for concurrent use.
package change

import (
	"net/url"
	"strings"

	"github.com/fwojciec/cfpwatch"
)

// MismatchPolicy decides what happens when a selector matches on only one
// side of the comparison.
type MismatchPolicy int

const (
	// MismatchDiff diffs the matching side against an empty document, so a
	// page whose element appeared reports all of its links as new.
	MismatchDiff MismatchPolicy = iota

	// MismatchSkip returns an ECONFLICT error instead of diffing, so the
	// caller can report that the page structure changed.
	MismatchSkip
)

// ParseMismatchPolicy maps "diff" and "skip" to a MismatchPolicy.
func ParseMismatchPolicy(s string) (MismatchPolicy, error) {
	switch s {
	case "", "diff":
		return MismatchDiff, nil
	case "skip":
		return MismatchSkip, nil
	}
	return MismatchDiff, cfpwatch.Errorf(cfpwatch.EINVALID, "unknown mismatch policy %q", s)
}

// Ensure Detector implements cfpwatch.ChangeDetector at compile time.
var _ cfpwatch.ChangeDetector = (*Detector)(nil)

// Detector finds links on lines added between two versions of a page.
type Detector struct {
	Scoper    cfpwatch.Scoper
	Differ    cfpwatch.Differ
	Extractor cfpwatch.LinkExtractor
	Mismatch  MismatchPolicy
}

// DetectLinks scopes both bodies to sel, diffs them, and returns the links
// on inserted lines in order, with hrefs resolved against base.
// No inserted lines means no changes and returns an empty result.
// Anchors whose opening and closing tags fall on different lines are not
// recognized.
func (d *Detector) DetectLinks(oldBody, newBody, base string, sel *cfpwatch.Selector) ([]cfpwatch.Link, error) {
	baseURL, err := url.Parse(base)
	if err != nil || !baseURL.IsAbs() {
		return nil, cfpwatch.Errorf(cfpwatch.EINVALID, "base URL must be absolute: %q", base)
	}

	oldScoped, err := d.Scoper.Scope(oldBody, sel)
	if err != nil {
		return nil, err
	}
	newScoped, err := d.Scoper.Scope(newBody, sel)
	if err != nil {
		return nil, err
	}

	if sel != nil && d.Mismatch == MismatchSkip && (oldScoped == "") != (newScoped == "") {
		side := "new"
		if oldScoped != "" {
			side = "old"
		}
		return nil, cfpwatch.Errorf(cfpwatch.ECONFLICT, "selector %s matched only the %s page", sel, side)
	}

	var links []cfpwatch.Link
	for _, block := range changeBlocks(d.Differ.Diff(oldScoped, newScoped)) {
		found, err := d.blockLinks(block, baseURL)
		if err != nil {
			return nil, err
		}
		links = append(links, found...)
	}

	return links, nil
}

// blockLinks returns the links on the inserted lines of one change block.
// An anchor that also appears on a deleted line of the same block was only
// moved or re-serialized with its neighbours, so each deleted occurrence
// cancels one inserted occurrence.
func (d *Detector) blockLinks(block []cfpwatch.DiffLine, base *url.URL) ([]cfpwatch.Link, error) {
	removed := make(map[linkKey]int)
	for _, line := range block {
		if line.Op != cfpwatch.DiffDelete {
			continue
		}
		raw, err := d.Extractor.ExtractLinks(line.Text)
		if err != nil {
			return nil, err
		}
		for _, r := range raw {
			removed[keyOf(r)]++
		}
	}

	var links []cfpwatch.Link
	for _, line := range block {
		if line.Op != cfpwatch.DiffInsert {
			continue
		}
		raw, err := d.Extractor.ExtractLinks(line.Text)
		if err != nil {
			return nil, err
		}
		for _, r := range raw {
			if k := keyOf(r); removed[k] > 0 {
				removed[k]--
				continue
			}
			links = append(links, cfpwatch.Link{
				Href:     resolve(base, r.Href),
				Hreflang: r.Hreflang,
				Text:     r.Text,
			})
		}
	}
	return links, nil
}

// changeBlocks splits a diff into maximal runs of inserted and deleted lines.
func changeBlocks(lines []cfpwatch.DiffLine) [][]cfpwatch.DiffLine {
	var blocks [][]cfpwatch.DiffLine
	start := -1
	for i, l := range lines {
		changed := l.Op == cfpwatch.DiffInsert || l.Op == cfpwatch.DiffDelete
		switch {
		case changed && start < 0:
			start = i
		case !changed && start >= 0:
			blocks = append(blocks, lines[start:i])
			start = -1
		}
	}
	if start >= 0 {
		blocks = append(blocks, lines[start:])
	}
	return blocks
}

type linkKey struct {
	href, hreflang       string
	hasHref, hasHreflang bool
	text                 string
}

func keyOf(r cfpwatch.RawLink) linkKey {
	k := linkKey{text: r.Text}
	if r.Href != nil {
		k.href, k.hasHref = *r.Href, true
	}
	if r.Hreflang != nil {
		k.hreflang, k.hasHreflang = *r.Hreflang, true
	}
	return k
}

// resolve joins href onto base using RFC 3986 reference resolution, after
// trimming the surrounding whitespace browsers ignore.
// An href that does not parse is returned as is.
func resolve(base *url.URL, href *string) *string {
	if href == nil {
		return nil
	}
	ref, err := url.Parse(strings.TrimSpace(*href))
	if err != nil {
		return href
	}
	s := base.ResolveReference(ref).String()
	return &s
}
