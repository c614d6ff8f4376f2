package gemini

import (
	"context"

	"github.com/fwojciec/cfpwatch"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ cfpwatch.TokenCounter = (*TokenCounter)(nil)

// TokenCounter estimates the size of a comparison request offline using the
// local Gemini tokenizer. The count covers the system instructions sent with
// every comparison, so a budget check reflects what the model actually sees.
type TokenCounter struct {
	tok    *tokenizer.LocalTokenizer
	system string
}

// NewTokenCounter returns a counter for model that includes
// cfpwatch.ComparisonInstructions in every count.
func NewTokenCounter(model string) (*TokenCounter, error) {
	return NewTokenCounterWithSystem(model, cfpwatch.ComparisonInstructions)
}

// NewTokenCounterWithSystem returns a counter that adds system to every
// non-empty prompt. An empty system counts the prompt alone.
func NewTokenCounterWithSystem(model, system string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, cfpwatch.Errorf(cfpwatch.EINVALID, "tokenizer for model %q: %v", model, err)
	}
	return &TokenCounter{tok: tok, system: system}, nil
}

// CountTokens returns the token count of prompt plus the system instructions.
// An empty prompt is never sent, so it counts as zero.
func (tc *TokenCounter) CountTokens(ctx context.Context, prompt string) (int, error) {
	if prompt == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	contents := make([]*genai.Content, 0, 2)
	if tc.system != "" {
		contents = append(contents, genai.NewContentFromText(tc.system, genai.RoleUser))
	}
	contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))

	res, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, cfpwatch.Errorf(cfpwatch.EINTERNAL, "count tokens: %v", err)
	}
	return int(res.TotalTokens), nil
}
