package cfpwatch

import "context"

// KnowledgeBase provides the research-interest document candidates are
// scored against.
type KnowledgeBase interface {
	// Load returns the knowledge base flattened to plain text.
	Load(ctx context.Context) (string, error)
}
