// Package ollama implements cfpwatch.Comparer using a local Ollama server.
package ollama

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/cfpwatch"
	"github.com/ollama/ollama/api"
)

const (
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "llama3.1"
	// DefaultURL is the default Ollama API endpoint.
	DefaultURL = "http://localhost:11434"
)

// Ensure Comparer implements cfpwatch.Comparer at compile time.
var _ cfpwatch.Comparer = (*Comparer)(nil)

// Comparer rates calls for papers with a model served by Ollama.
type Comparer struct {
	client *api.Client
	model  string
}

// NewComparer creates a Comparer talking to the Ollama server at rawURL.
// Empty arguments fall back to DefaultURL and DefaultModel.
func NewComparer(rawURL, model string, httpClient *http.Client) (*Comparer, error) {
	if rawURL == "" {
		rawURL = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, cfpwatch.Errorf(cfpwatch.EINVALID, "invalid ollama URL %q: %v", rawURL, err)
	}

	return &Comparer{
		client: api.NewClient(base, httpClient),
		model:  model,
	}, nil
}

// Compare asks the model to rate the candidate against the knowledge base.
func (c *Comparer) Compare(ctx context.Context, kb, candidate string) (string, error) {
	if kb == "" {
		return "", cfpwatch.Errorf(cfpwatch.EINVALID, "knowledge base required")
	}
	if candidate == "" {
		return "", cfpwatch.Errorf(cfpwatch.EINVALID, "candidate text required")
	}

	stream := false
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "system", Content: cfpwatch.ComparisonInstructions},
			{Role: "user", Content: cfpwatch.BuildComparisonPrompt(kb, candidate)},
		},
		Stream:  &stream,
		Options: map[string]any{"temperature": 0.2},
	}

	var sb strings.Builder
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", cfpwatch.Errorf(cfpwatch.EINTERNAL, "ollama returned an empty response")
	}
	return text, nil
}
