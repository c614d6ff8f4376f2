package sqlite

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// parseTimestamp parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseTimestamp(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// formatTimestamp formats t as UTC RFC3339 with sub-second precision.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// hashContent computes a hash of the content using xxhash.
func hashContent(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
