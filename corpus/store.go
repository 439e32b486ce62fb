package corpus

import (
	"context"
	"errors"
)

// ErrStorageFailure marks persistence collaborator errors. Ingestion aborts
// with whatever partial state has been written; search treats it as a hard
// failure with no stale fallback.
var ErrStorageFailure = errors.New("storage failure")

// Resource is a persisted document record.
type Resource struct {
	ID       string
	Type     string
	SourceID string
	Title    string
	Content  string
	Metadata map[string]any
}

// Embedding is a persisted chunk embedding owned by a resource.
type Embedding struct {
	ResourceID string
	ChunkIndex int
	ChunkText  string
	Vector     []float32
}

// Store is the persistence collaborator behind the index. Implementations
// need no transactional guarantees across calls; a full re-ingest is
// Clear followed by inserts.
type Store interface {
	InsertResource(ctx context.Context, res Resource) (string, error)
	InsertEmbedding(ctx context.Context, emb Embedding) error
	Clear(ctx context.Context) error
	LoadRecords(ctx context.Context) ([]Record, error)
	ListResources(ctx context.Context) ([]Resource, error)
}
