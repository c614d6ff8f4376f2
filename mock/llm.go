package mock

import (
	"context"

	"github.com/fwojciec/cfpwatch"
)

var (
	_ cfpwatch.Comparer      = (*Comparer)(nil)
	_ cfpwatch.KnowledgeBase = (*KnowledgeBase)(nil)
	_ cfpwatch.Mailer        = (*Mailer)(nil)
)

// Comparer is a mock implementation of cfpwatch.Comparer.
type Comparer struct {
	CompareFn func(ctx context.Context, kb, candidate string) (string, error)
}

func (c *Comparer) Compare(ctx context.Context, kb, candidate string) (string, error) {
	return c.CompareFn(ctx, kb, candidate)
}

// KnowledgeBase is a mock implementation of cfpwatch.KnowledgeBase.
type KnowledgeBase struct {
	LoadFn func(ctx context.Context) (string, error)
}

func (k *KnowledgeBase) Load(ctx context.Context) (string, error) {
	return k.LoadFn(ctx)
}

// Mailer is a mock implementation of cfpwatch.Mailer.
type Mailer struct {
	SendFn func(ctx context.Context, msg *cfpwatch.Message) error
}

func (m *Mailer) Send(ctx context.Context, msg *cfpwatch.Message) error {
	return m.SendFn(ctx, msg)
}
