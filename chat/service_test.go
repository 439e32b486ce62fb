package chat

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/acmecommerce/knowledge-agent/corpus"
	"github.com/acmecommerce/knowledge-agent/embeddings"
	"github.com/acmecommerce/knowledge-agent/llm"
)

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = s.vector
	}
	return vectors, nil
}

var _ embeddings.Embedder = (*stubEmbedder)(nil)

type stubLLM struct {
	answer string
	err    error
}

func (s *stubLLM) Generate(_ context.Context, messages []llm.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if len(messages) == 0 {
		return "", errors.New("no messages provided")
	}
	return s.answer, nil
}

var _ llm.Client = (*stubLLM)(nil)

func populatedIndex() *corpus.Index {
	index := corpus.NewIndex()
	index.Insert(corpus.Record{
		ResourceID:    "res-1",
		ChunkText:     "Refunds settle in 5-10 business days.",
		Vector:        []float32{1, 0, 0},
		ResourceType:  "wiki",
		ResourceTitle: "Refund Processing Runbook",
		SourceID:      "wiki-002",
	})
	return index
}

func TestAskReturnsAnswerWithSources(t *testing.T) {
	svc := NewService(
		populatedIndex(),
		&stubEmbedder{vector: []float32{1, 0, 0}},
		&stubLLM{answer: "Refunds take 5-10 business days."},
		log.New(io.Discard, "", 0),
	)

	answer, err := svc.Ask(context.Background(), "How long do refunds take?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if answer.Text != "Refunds take 5-10 business days." {
		t.Fatalf("unexpected answer: %q", answer.Text)
	}
	if len(answer.Sources) != 1 || answer.Sources[0].SourceID != "wiki-002" {
		t.Fatalf("unexpected sources: %+v", answer.Sources)
	}
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	svc := NewService(corpus.NewIndex(), &stubEmbedder{vector: []float32{1}}, &stubLLM{}, log.New(io.Discard, "", 0))
	if _, err := svc.Ask(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty question")
	}
}

func TestAskPropagatesModelUnavailable(t *testing.T) {
	svc := NewService(
		populatedIndex(),
		&stubEmbedder{err: embeddings.ErrModelUnavailable},
		&stubLLM{answer: "irrelevant"},
		log.New(io.Discard, "", 0),
	)

	_, err := svc.Ask(context.Background(), "question")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, embeddings.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestAskAnswersFromEmptyContextWhenNothingMatches(t *testing.T) {
	svc := NewService(
		populatedIndex(),
		&stubEmbedder{vector: []float32{0, 1, 0}}, // orthogonal to the stored chunk
		&stubLLM{answer: "I don't have enough context to answer that."},
		log.New(io.Discard, "", 0),
	)

	answer, err := svc.Ask(context.Background(), "Something unrelated")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(answer.Sources) != 0 {
		t.Fatalf("expected no sources, got %+v", answer.Sources)
	}
}

func TestAskStreamDeliversChunks(t *testing.T) {
	svc := NewService(
		populatedIndex(),
		&stubEmbedder{vector: []float32{1, 0, 0}},
		&stubLLM{answer: "streamed answer"},
		log.New(io.Discard, "", 0),
	)

	var streamed string
	answer, err := svc.AskStream(context.Background(), "question", func(chunk string) error {
		streamed += chunk
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// stubLLM cannot stream, so the whole answer arrives in one callback.
	if streamed != "streamed answer" {
		t.Fatalf("expected callback to receive full answer, got %q", streamed)
	}
	if answer.Text != "streamed answer" {
		t.Fatalf("unexpected answer: %q", answer.Text)
	}
}
