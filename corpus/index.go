// Package corpus holds the searchable chunk corpus: an in-memory
// brute-force vector index plus the persistent store it is rebuilt from.
package corpus

import (
	"fmt"
	"sort"
	"sync"

	"github.com/acmecommerce/knowledge-agent/embeddings"
)

const (
	// DefaultLimit is the number of results a search returns when the
	// caller does not ask for a specific count.
	DefaultLimit = 6
	// DefaultThreshold is the minimum cosine similarity a chunk needs to
	// be considered relevant.
	DefaultThreshold = 0.3
)

// Record is one stored (chunk, vector) pair with the owning resource's
// display fields denormalized in.
type Record struct {
	ResourceID    string
	ChunkIndex    int
	ChunkText     string
	Vector        []float32
	ResourceType  string
	ResourceTitle string
	SourceID      string
	Metadata      map[string]any
}

// SearchResult is an ephemeral ranked match from Index.Search.
type SearchResult struct {
	ChunkText     string
	Similarity    float64
	ResourceID    string
	ResourceType  string
	ResourceTitle string
	SourceID      string
	Metadata      map[string]any
}

// Index is a brute-force in-memory vector index. Every query scans all
// records, which is fine for corpora in the low thousands of chunks; swap
// in an ANN structure only if the corpus outgrows that.
//
// ReplaceAll swaps the whole record slice under the write lock, so readers
// either see the complete old corpus or the complete new one, never a
// half-populated state during re-ingestion.
type Index struct {
	mu      sync.RWMutex
	records []Record
}

func NewIndex() *Index { return &Index{} }

// Insert appends one record.
func (ix *Index) Insert(rec Record) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.records = append(ix.records, rec)
}

// ReplaceAll atomically replaces the full corpus with records.
func (ix *Index) ReplaceAll(records []Record) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.records = records
}

// Clear drops every record.
func (ix *Index) Clear() {
	ix.ReplaceAll(nil)
}

// Len reports the number of stored records.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.records)
}

// Search scans every record, scores it against query by cosine similarity,
// and returns at most limit results with similarity >= threshold, best
// first. Ties keep insertion order, so results are deterministic for a
// fixed corpus and query. Zero-magnitude vectors score NaN and are dropped
// by the threshold comparison.
func (ix *Index) Search(query []float32, limit int, threshold float64) ([]SearchResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	scored := make([]SearchResult, 0, len(ix.records))
	for _, rec := range ix.records {
		similarity, err := embeddings.CosineSimilarity(query, rec.Vector)
		if err != nil {
			return nil, fmt.Errorf("score chunk %d of %s: %w", rec.ChunkIndex, rec.SourceID, err)
		}
		if !(similarity >= threshold) {
			continue
		}
		scored = append(scored, SearchResult{
			ChunkText:     rec.ChunkText,
			Similarity:    similarity,
			ResourceID:    rec.ResourceID,
			ResourceType:  rec.ResourceType,
			ResourceTitle: rec.ResourceTitle,
			SourceID:      rec.SourceID,
			Metadata:      rec.Metadata,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	return scored, nil
}
