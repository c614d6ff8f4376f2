package watch

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the hex xxhash of a page body. Snapshots carry it so
// an unchanged page can skip diffing.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// TruncateURL shortens a URL to maxLen for terminal output. The tail is kept
// since that is where CFP slugs live.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatScore renders a fit score as N/4, or "-" when the response had none.
func FormatScore(score int) string {
	if score < 0 {
		return "-"
	}
	return fmt.Sprintf("%d/4", score)
}
