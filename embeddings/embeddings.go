// Package embeddings turns text into dense vectors and scores vector
// similarity for retrieval.
package embeddings

import (
	"context"
	"errors"
	"fmt"

	"github.com/acmecommerce/knowledge-agent/config"
)

// ErrModelUnavailable reports that the embedding model could not be loaded
// or failed while producing vectors. Callers must not assume partial
// results when this is returned.
var ErrModelUnavailable = errors.New("embedding model unavailable")

// Embedder maps texts to fixed-length vectors. Embed processes the batch
// sequentially and the output order matches the input order. Vectors are
// L2-normalized by the underlying model; callers do not renormalize.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type Options struct {
	Provider  string
	Model     string
	Dimension int

	OllamaHost    string
	OpenAIAPIKey  string
	OpenAIBaseURL string
}

// NewEmbedder builds the configured provider wrapped in a Lazy so that the
// model is only reached on first use and never initialized twice.
func NewEmbedder(cfg config.Config) (Embedder, error) {
	opts := Options{
		Provider:      cfg.Embeddings.Provider,
		Model:         cfg.Embeddings.Model,
		Dimension:     cfg.Embeddings.Dimension,
		OllamaHost:    cfg.OllamaHost,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
	}

	switch opts.Provider {
	case config.ProviderOllama:
		return NewLazy(func() (Embedder, error) {
			return newOllamaEmbedder(opts), nil
		}), nil
	case config.ProviderOpenAI:
		if opts.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai provider selected but OPENAI_API_KEY not set")
		}
		return NewLazy(func() (Embedder, error) {
			return newOpenAIEmbedder(opts), nil
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", opts.Provider)
	}
}
