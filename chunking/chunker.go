// Package chunking splits formatted document text into overlapping,
// size-bounded chunks suitable for embedding.
package chunking

import (
	"regexp"
	"strings"
)

const (
	// MaxChunkSize is the soft upper bound on chunk length in bytes.
	MaxChunkSize = 800
	// Overlap is the number of trailing bytes carried from one chunk into
	// the next to preserve context across the boundary.
	Overlap = 200
)

// Chunk is one slice of a document's canonical text. Index is the 0-based
// position within the owning document.
type Chunk struct {
	Text  string
	Index int
}

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	paragraphBreak = regexp.MustCompile(`\n\n+`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// ChunkText splits text into paragraph-aligned chunks of at most
// MaxChunkSize bytes, overlapping consecutive chunks by up to Overlap bytes
// of trailing words. Paragraphs are never split internally, so a single
// paragraph longer than MaxChunkSize comes back as one oversized chunk.
// Text that already fits yields exactly one chunk, even when empty.
func ChunkText(text string) []Chunk {
	cleaned := strings.TrimSpace(excessNewlines.ReplaceAllString(text, "\n\n"))

	if len(cleaned) <= MaxChunkSize {
		return []Chunk{{Text: cleaned, Index: 0}}
	}

	var chunks []Chunk
	paragraphs := paragraphBreak.Split(cleaned, -1)
	current := ""
	index := 0

	for _, paragraph := range paragraphs {
		if len(current)+len(paragraph)+2 > MaxChunkSize && len(current) > 0 {
			chunks = append(chunks, Chunk{Text: strings.TrimSpace(current), Index: index})
			index++
			current = overlapTail(current) + "\n\n" + paragraph
		} else if current == "" {
			current = paragraph
		} else {
			current += "\n\n" + paragraph
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, Chunk{Text: strings.TrimSpace(current), Index: index})
	}

	return chunks
}

// overlapTail returns the trailing words of chunk whose joined length stays
// under Overlap bytes, in original order.
func overlapTail(chunk string) string {
	words := whitespaceRun.Split(chunk, -1)
	overlapLen := 0
	start := len(words)
	for i := len(words) - 1; i >= 0 && overlapLen < Overlap; i-- {
		start = i
		overlapLen += len(words[i]) + 1
	}
	return strings.Join(words[start:], " ")
}
