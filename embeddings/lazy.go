package embeddings

import (
	"context"
	"fmt"
	"sync"
)

// Lazy defers construction of an Embedder until its first use and guards
// initialization with sync.Once, so concurrent first-use calls share a
// single load. An initialization failure is sticky: every later call
// reports ErrModelUnavailable without retrying.
type Lazy struct {
	build func() (Embedder, error)

	once     sync.Once
	embedder Embedder
	err      error
}

func NewLazy(build func() (Embedder, error)) *Lazy {
	return &Lazy{build: build}
}

func (l *Lazy) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	l.once.Do(func() {
		l.embedder, l.err = l.build()
	})
	if l.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, l.err)
	}
	return l.embedder.Embed(ctx, texts)
}

var _ Embedder = (*Lazy)(nil)
