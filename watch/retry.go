package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cfpwatch"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry calls fetch until it succeeds, sleeping delays[i] before
// retry i+1, so at most len(delays)+1 attempts are made. Errors that a retry
// cannot fix, ENOTFOUND and EINVALID, are returned at once. A nil logger
// disables retry logging.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if permanent(err) || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if logger != nil {
			logger.Warn("retrying fetch", "url", url, "attempt", attempt+2, "delay", delays[attempt], "error", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func permanent(err error) bool {
	switch cfpwatch.ErrorCode(err) {
	case cfpwatch.ENOTFOUND, cfpwatch.EINVALID:
		return true
	}
	return false
}
