package mock

import (
	"context"

	"github.com/fwojciec/cfpwatch"
)

var _ cfpwatch.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of cfpwatch.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, prompt string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, prompt string) (int, error) {
	return tc.CountTokensFn(ctx, prompt)
}
