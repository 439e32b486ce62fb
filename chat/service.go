package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/acmecommerce/knowledge-agent/corpus"
	"github.com/acmecommerce/knowledge-agent/embeddings"
	"github.com/acmecommerce/knowledge-agent/llm"
)

// Service is the query entry point: embed the question, search the corpus,
// assemble context, and hand the prompt to the completion model.
type Service struct {
	index    *corpus.Index
	embedder embeddings.Embedder
	llm      llm.Client
	logger   *log.Logger
}

// Answer is a completed response with its citation list.
type Answer struct {
	Text    string
	Sources []Source
}

func NewService(index *corpus.Index, embedder embeddings.Embedder, llmClient llm.Client, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}

	return &Service{
		index:    index,
		embedder: embedder,
		llm:      llmClient,
		logger:   logger,
	}
}

// Prepare runs retrieval for question and returns the system prompt for
// the completion model plus the citation list, without calling the model.
func (s *Service) Prepare(ctx context.Context, question string) (string, []Source, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", nil, fmt.Errorf("question cannot be empty")
	}

	vectors, err := s.embedder.Embed(ctx, []string{question})
	if err != nil {
		return "", nil, fmt.Errorf("embed question: %w", err)
	}
	if len(vectors) == 0 {
		return "", nil, fmt.Errorf("embedder returned no vectors")
	}

	results, err := s.index.Search(vectors[0], corpus.DefaultLimit, corpus.DefaultThreshold)
	if err != nil {
		return "", nil, fmt.Errorf("search corpus: %w", err)
	}
	if len(results) == 0 {
		s.logger.Printf("no chunks above threshold for question, answering from empty context")
	}

	prompt, sources := BuildPromptContext(results, question)
	return prompt, sources, nil
}

// Ask answers question in one shot.
func (s *Service) Ask(ctx context.Context, question string) (Answer, error) {
	return s.ask(ctx, question, nil)
}

// AskStream answers question while delivering the model output
// incrementally through fn. When the configured client cannot stream, fn
// receives the whole answer once.
func (s *Service) AskStream(ctx context.Context, question string, fn func(string) error) (Answer, error) {
	return s.ask(ctx, question, fn)
}

func (s *Service) ask(ctx context.Context, question string, fn func(string) error) (Answer, error) {
	prompt, sources, err := s.Prepare(ctx, question)
	if err != nil {
		return Answer{}, err
	}

	text, err := s.Complete(ctx, prompt, question, fn)
	if err != nil {
		return Answer{}, err
	}

	return Answer{Text: text, Sources: sources}, nil
}

// Complete sends the prepared system prompt and the raw question to the
// completion model. With a non-nil fn the output is streamed through it;
// clients that cannot stream deliver the whole answer to fn once.
func (s *Service) Complete(ctx context.Context, prompt, question string, fn func(string) error) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: prompt},
		{Role: llm.RoleUser, Content: strings.TrimSpace(question)},
	}

	var text string
	if fn != nil {
		if streamer, ok := s.llm.(llm.StreamClient); ok {
			var builder strings.Builder
			err := streamer.GenerateStream(ctx, messages, func(chunk string) error {
				if chunk == "" {
					return nil
				}
				builder.WriteString(chunk)
				return fn(chunk)
			})
			if err != nil {
				return "", fmt.Errorf("llm stream generate: %w", err)
			}
			text = builder.String()
		} else {
			generated, err := s.llm.Generate(ctx, messages)
			if err != nil {
				return "", fmt.Errorf("llm generate: %w", err)
			}
			text = generated
			if err := fn(text); err != nil {
				return "", err
			}
		}
	} else {
		generated, err := s.llm.Generate(ctx, messages)
		if err != nil {
			return "", fmt.Errorf("llm generate: %w", err)
		}
		text = generated
	}

	return strings.TrimSpace(text), nil
}
