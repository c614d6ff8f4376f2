package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/fwojciec/cfpwatch"
)

// Ensure KnowledgeBase implements cfpwatch.KnowledgeBase at compile time.
var _ cfpwatch.KnowledgeBase = (*KnowledgeBase)(nil)

// KnowledgeBase caches a knowledge base in a text file. With a Source it
// loads from the source and refreshes the file; without one it reads the
// file, so analysis can run offline.
type KnowledgeBase struct {
	Path   string
	Source cfpwatch.KnowledgeBase
}

// Load returns the knowledge base text.
func (k *KnowledgeBase) Load(ctx context.Context) (string, error) {
	if k.Source == nil {
		data, err := os.ReadFile(k.Path)
		if errors.Is(err, fs.ErrNotExist) {
			return "", cfpwatch.Errorf(cfpwatch.ENOTFOUND, "knowledge base file %s not found", k.Path)
		}
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	text, err := k.Source.Load(ctx)
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(k.Path, []byte(text)); err != nil {
		return "", err
	}
	return text, nil
}
