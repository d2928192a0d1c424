// Package chunk splits Markdown text into token-sized chunks for
// embedding. Uses a whitespace tokenizer (words ≈ tokens); Overlap words
// are repeated at the start of each following chunk for context.
package chunk

import "strings"

// Chunker splits text into fixed-size token chunks.
type Chunker struct {
	ChunkSize int // number of tokens (words) per chunk
	Overlap   int // words shared between consecutive chunks
}

// New creates a Chunker with the given chunk size and no overlap.
// Defaults to 512 words if chunkSize <= 0.
func New(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 512
	}
	return &Chunker{ChunkSize: chunkSize}
}

// Chunk splits the input text into slices of at most ChunkSize words.
// Each chunk is a contiguous block of words joined by spaces.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.ChunkSize - c.Overlap
	if step <= 0 {
		step = c.ChunkSize
	}

	var chunks []string
	for i := 0; i < len(words); i += step {
		end := i + c.ChunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}
