package chat

import (
	"fmt"
	"strings"
	"testing"

	"github.com/acmecommerce/knowledge-agent/corpus"
)

func result(resourceID, sourceID, title string, similarity float64) corpus.SearchResult {
	return corpus.SearchResult{
		ChunkText:     "chunk from " + sourceID,
		Similarity:    similarity,
		ResourceID:    resourceID,
		ResourceType:  "wiki",
		ResourceTitle: title,
		SourceID:      sourceID,
	}
}

func TestBuildPromptContextDeduplicatesByResource(t *testing.T) {
	results := []corpus.SearchResult{
		result("res-1", "wiki-001", "Gateway Guide", 0.91),
		result("res-1", "wiki-001", "Gateway Guide", 0.85),
		result("res-2", "wiki-002", "Refund Runbook", 0.72),
	}

	prompt, sources := BuildPromptContext(results, "how do refunds work?")

	if len(sources) != 2 {
		t.Fatalf("expected 2 sources after dedup, got %d", len(sources))
	}
	if sources[0].ID != "res-1" || sources[1].ID != "res-2" {
		t.Fatalf("expected first-seen order, got %s, %s", sources[0].ID, sources[1].ID)
	}
	if got := strings.Count(prompt, "[Source "); got != 2 {
		t.Fatalf("expected 2 context blocks after dedup, got %d in prompt:\n%s", got, prompt)
	}
	if strings.Count(prompt, "(wiki-001)]") != 1 {
		t.Fatalf("expected one context block labeled wiki-001, prompt:\n%s", prompt)
	}
}

func TestBuildPromptContextBlockFormat(t *testing.T) {
	results := []corpus.SearchResult{
		result("res-1", "PAY-101", "Stripe migration", 0.9),
	}

	prompt, sources := BuildPromptContext(results, "stripe?")

	want := "[Source 1: WIKI - Stripe migration (PAY-101)]\nchunk from PAY-101"
	if !strings.Contains(prompt, want) {
		t.Fatalf("expected labeled block %q in prompt:\n%s", want, prompt)
	}
	if sources[0].SourceID != "PAY-101" || sources[0].Type != "wiki" {
		t.Fatalf("unexpected source: %+v", sources[0])
	}
}

func TestBuildPromptContextOrderMatchesBlocks(t *testing.T) {
	results := make([]corpus.SearchResult, 0, 4)
	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("res-%d", i)
		results = append(results, result(id, fmt.Sprintf("DOC-%d", i), "Doc", 0.9-float64(i)*0.1))
	}

	prompt, sources := BuildPromptContext(results, "q")

	for i, source := range sources {
		label := fmt.Sprintf("[Source %d: WIKI - Doc (%s)]", i+1, source.SourceID)
		if !strings.Contains(prompt, label) {
			t.Fatalf("expected label %q in prompt", label)
		}
	}
}

func TestBuildPromptContextEmptyResults(t *testing.T) {
	prompt, sources := BuildPromptContext(nil, "anything?")

	if len(sources) != 0 {
		t.Fatalf("expected no sources, got %d", len(sources))
	}
	if !strings.Contains(prompt, "knowledge assistant") {
		t.Fatalf("expected system prompt even with empty context:\n%s", prompt)
	}
}
