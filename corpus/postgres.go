package corpus

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// PostgresStore persists resources and chunk embeddings in Postgres. The
// embedding column uses pgvector for compact storage only; similarity is
// always computed by the in-memory index, not in SQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) InsertResource(ctx context.Context, res Resource) (string, error) {
	id := uuid.New()
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO resources (id, type, source_id, title, content, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, id, res.Type, res.SourceID, res.Title, res.Content, res.Metadata); err != nil {
		return "", fmt.Errorf("%w: insert resource %s: %v", ErrStorageFailure, res.SourceID, err)
	}
	return id.String(), nil
}

func (s *PostgresStore) InsertEmbedding(ctx context.Context, emb Embedding) error {
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO embeddings (id, resource_id, chunk_index, chunk_text, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, uuid.New(), emb.ResourceID, emb.ChunkIndex, emb.ChunkText, pgvector.NewVector(emb.Vector)); err != nil {
		return fmt.Errorf("%w: insert embedding chunk %d: %v", ErrStorageFailure, emb.ChunkIndex, err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM embeddings"); err != nil {
		return fmt.Errorf("%w: delete embeddings: %v", ErrStorageFailure, err)
	}
	if _, err := s.pool.Exec(ctx, "DELETE FROM resources"); err != nil {
		return fmt.Errorf("%w: delete resources: %v", ErrStorageFailure, err)
	}
	return nil
}

func (s *PostgresStore) LoadRecords(ctx context.Context) ([]Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT e.resource_id, e.chunk_index, e.chunk_text, e.embedding,
		       r.type, r.title, r.source_id, r.metadata
		FROM embeddings e
		JOIN resources r ON r.id = e.resource_id
		ORDER BY r.source_id, e.chunk_index
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query embeddings: %v", ErrStorageFailure, err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var (
			rec    Record
			resID  uuid.UUID
			vector pgvector.Vector
		)
		if err := rows.Scan(&resID, &rec.ChunkIndex, &rec.ChunkText, &vector,
			&rec.ResourceType, &rec.ResourceTitle, &rec.SourceID, &rec.Metadata); err != nil {
			return nil, fmt.Errorf("%w: scan embedding row: %v", ErrStorageFailure, err)
		}
		rec.ResourceID = resID.String()
		rec.Vector = vector.Slice()
		records = append(records, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%w: read embedding rows: %v", ErrStorageFailure, rows.Err())
	}

	return records, nil
}

func (s *PostgresStore) ListResources(ctx context.Context) ([]Resource, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, type, source_id, title, content, metadata
		FROM resources
		ORDER BY source_id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query resources: %v", ErrStorageFailure, err)
	}
	defer rows.Close()

	resources := make([]Resource, 0)
	for rows.Next() {
		var (
			res Resource
			id  uuid.UUID
		)
		if err := rows.Scan(&id, &res.Type, &res.SourceID, &res.Title, &res.Content, &res.Metadata); err != nil {
			return nil, fmt.Errorf("%w: scan resource row: %v", ErrStorageFailure, err)
		}
		res.ID = id.String()
		resources = append(resources, res)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%w: read resource rows: %v", ErrStorageFailure, rows.Err())
	}

	return resources, nil
}

var _ Store = (*PostgresStore)(nil)
