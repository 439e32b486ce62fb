// Package ingestion rebuilds the corpus from source documents: format,
// chunk, embed, persist, index.
package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/acmecommerce/knowledge-agent/chunking"
	"github.com/acmecommerce/knowledge-agent/corpus"
	"github.com/acmecommerce/knowledge-agent/embeddings"
	"github.com/acmecommerce/knowledge-agent/knowledge"
)

// Stats summarises one ingestion run.
type Stats struct {
	Resources int            `json:"resources"`
	Chunks    int            `json:"chunks"`
	ByType    map[string]int `json:"types"`
}

type Service struct {
	store    corpus.Store
	index    *corpus.Index
	embedder embeddings.Embedder
	logger   *log.Logger
}

func NewService(store corpus.Store, index *corpus.Index, embedder embeddings.Embedder, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}

	return &Service{
		store:    store,
		index:    index,
		embedder: embedder,
		logger:   logger,
	}
}

// Ingest clears the persisted corpus and repopulates it from docs in input
// order, then swaps the rebuilt record set into the in-memory index in one
// step so concurrent queries never see a half-built corpus.
//
// Storage writes are not atomic across the batch: a failure partway leaves
// the tables partially populated and the previous in-memory index still
// serving. Re-running the ingest recovers either way.
func (s *Service) Ingest(ctx context.Context, docs []knowledge.Document) (Stats, error) {
	if s.embedder == nil {
		return Stats{}, fmt.Errorf("embedder not configured")
	}

	stats := Stats{ByType: make(map[string]int)}

	if err := s.store.Clear(ctx); err != nil {
		return stats, fmt.Errorf("clear corpus: %w", err)
	}

	records := make([]corpus.Record, 0)

	for _, doc := range docs {
		docRecords, chunkCount, err := s.ingestDocument(ctx, doc)
		if err != nil {
			return stats, fmt.Errorf("ingest %s: %w", doc.SourceID(), err)
		}
		records = append(records, docRecords...)

		stats.Resources++
		stats.Chunks += chunkCount
		stats.ByType[string(doc.Type())]++
	}

	s.index.ReplaceAll(records)
	s.logger.Printf("ingested %d resources (%d chunks)", stats.Resources, stats.Chunks)

	return stats, nil
}

func (s *Service) ingestDocument(ctx context.Context, doc knowledge.Document) ([]corpus.Record, int, error) {
	content := doc.CanonicalText()

	resourceID, err := s.store.InsertResource(ctx, corpus.Resource{
		Type:     string(doc.Type()),
		SourceID: doc.SourceID(),
		Title:    doc.Title(),
		Content:  content,
		Metadata: doc.Metadata(),
	})
	if err != nil {
		return nil, 0, err
	}

	chunks := chunking.ChunkText(content)
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, 0, fmt.Errorf("generate embeddings: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, 0, fmt.Errorf("embedding count mismatch: have %d chunks, %d vectors", len(chunks), len(vectors))
	}

	records := make([]corpus.Record, 0, len(chunks))
	for i, chunk := range chunks {
		if err := s.store.InsertEmbedding(ctx, corpus.Embedding{
			ResourceID: resourceID,
			ChunkIndex: chunk.Index,
			ChunkText:  chunk.Text,
			Vector:     vectors[i],
		}); err != nil {
			return nil, 0, err
		}

		records = append(records, corpus.Record{
			ResourceID:    resourceID,
			ChunkIndex:    chunk.Index,
			ChunkText:     chunk.Text,
			Vector:        vectors[i],
			ResourceType:  string(doc.Type()),
			ResourceTitle: doc.Title(),
			SourceID:      doc.SourceID(),
			Metadata:      doc.Metadata(),
		})
	}

	return records, len(chunks), nil
}

// Reload rebuilds the in-memory index from persisted storage, replacing
// the current record set atomically. Used at process startup.
func (s *Service) Reload(ctx context.Context) (int, error) {
	records, err := s.store.LoadRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("load records: %w", err)
	}

	s.index.ReplaceAll(records)
	return len(records), nil
}
