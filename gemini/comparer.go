// Package gemini implements cfpwatch LLM services using Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/cfpwatch"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Comparer implements cfpwatch.Comparer at compile time.
var _ cfpwatch.Comparer = (*Comparer)(nil)

// Generator is the part of the genai client the Comparer uses.
// *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Comparer implements cfpwatch.Comparer using Google Gemini.
type Comparer struct {
	gen   Generator
	model string
}

// NewComparer creates a new Comparer. Pass client.Models as gen.
func NewComparer(gen Generator, model string) *Comparer {
	if model == "" {
		model = DefaultModel
	}
	return &Comparer{gen: gen, model: model}
}

// Compare asks the model to rate the candidate against the knowledge base.
func (c *Comparer) Compare(ctx context.Context, kb, candidate string) (string, error) {
	if kb == "" {
		return "", cfpwatch.Errorf(cfpwatch.EINVALID, "knowledge base required")
	}
	if candidate == "" {
		return "", cfpwatch.Errorf(cfpwatch.EINVALID, "candidate text required")
	}

	prompt := cfpwatch.BuildComparisonPrompt(kb, candidate)

	result, err := c.gen.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", cfpwatch.Errorf(cfpwatch.EINTERNAL, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" {
		return "", cfpwatch.Errorf(cfpwatch.EINTERNAL, "gemini returned an empty response")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: cfpwatch.ComparisonInstructions,
			}},
		},
		Temperature: &temp,
	}
}
