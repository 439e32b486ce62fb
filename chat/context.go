// Package chat assembles retrieval context into a grounded prompt and
// answers questions through the completion model.
package chat

import (
	"fmt"
	"strings"

	"github.com/acmecommerce/knowledge-agent/corpus"
)

// Source is a display-safe citation: one entry per distinct document that
// contributed context, in the order the context blocks were rendered.
type Source struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	SourceID string `json:"sourceId"`
}

const blockSeparator = "\n\n---\n\n"

// BuildPromptContext deduplicates results by resource, renders one labeled
// context block per retained result, and wraps them in the system prompt.
// Results arrive sorted by similarity descending, so keeping the first
// occurrence per resource keeps its best-scoring chunk, and the returned
// sources follow that same order.
func BuildPromptContext(results []corpus.SearchResult, question string) (string, []Source) {
	seen := make(map[string]struct{}, len(results))
	unique := make([]corpus.SearchResult, 0, len(results))
	for _, r := range results {
		if _, ok := seen[r.ResourceID]; ok {
			continue
		}
		seen[r.ResourceID] = struct{}{}
		unique = append(unique, r)
	}

	blocks := make([]string, len(unique))
	sources := make([]Source, len(unique))
	for i, r := range unique {
		blocks[i] = fmt.Sprintf("[Source %d: %s - %s (%s)]\n%s",
			i+1, strings.ToUpper(r.ResourceType), r.ResourceTitle, r.SourceID, r.ChunkText)
		sources[i] = Source{
			ID:       r.ResourceID,
			Type:     r.ResourceType,
			Title:    r.ResourceTitle,
			SourceID: r.SourceID,
		}
	}

	prompt := systemPrompt(strings.Join(blocks, blockSeparator))
	return prompt, sources
}

func systemPrompt(context string) string {
	return `You are a helpful knowledge assistant for an e-commerce payments engineering team. Answer questions based on the provided context from the team's tickets, wiki pages, contracts, chat threads, emails, meeting notes, postmortems, support tickets, and test reports.

Rules:
- Only answer based on the provided context. If the context doesn't contain enough information, say so clearly.
- Cite your sources by referencing the source type and ID (e.g., "According to ticket PAY-103..." or "The Payment Processing Services Agreement states...").
- Be concise but thorough. Use bullet points for lists.
- If the question spans multiple sources, synthesize the information and cite all relevant sources.

Context from the knowledge base:

` + context
}
