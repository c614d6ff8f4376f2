package cfpwatch

import "context"

// TokenCounter reports how many model tokens a comparison prompt occupies.
// The analyzer uses it to skip candidates that would exceed the context budget.
type TokenCounter interface {
	CountTokens(ctx context.Context, prompt string) (int, error)
}
