package embeddings

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

type countingEmbedder struct{}

func (countingEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

func TestLazyInitializesOnce(t *testing.T) {
	var builds atomic.Int32
	lazy := NewLazy(func() (Embedder, error) {
		builds.Add(1)
		return countingEmbedder{}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := lazy.Embed(context.Background(), []string{"hello"}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := builds.Load(); got != 1 {
		t.Fatalf("expected exactly one initialization, got %d", got)
	}
}

func TestLazyInitFailureIsSticky(t *testing.T) {
	var builds atomic.Int32
	lazy := NewLazy(func() (Embedder, error) {
		builds.Add(1)
		return nil, errors.New("model weights missing")
	})

	for i := 0; i < 3; i++ {
		_, err := lazy.Embed(context.Background(), []string{"hello"})
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, ErrModelUnavailable) {
			t.Fatalf("expected ErrModelUnavailable, got %v", err)
		}
	}

	if got := builds.Load(); got != 1 {
		t.Fatalf("expected failed initialization to not retry, got %d builds", got)
	}
}

func TestLazyPreservesBatchOrder(t *testing.T) {
	lazy := NewLazy(func() (Embedder, error) {
		return orderEmbedder{}, nil
	})

	vectors, err := lazy.Embed(context.Background(), []string{"a", "bb", "ccc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vectors))
	}
	for i, vec := range vectors {
		if int(vec[0]) != i+1 {
			t.Fatalf("vector %d out of order: %v", i, vec)
		}
	}
}

type orderEmbedder struct{}

func (orderEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = []float32{float32(len(text))}
	}
	return vectors, nil
}
