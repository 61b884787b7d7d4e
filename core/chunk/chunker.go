// Package chunk splits clean text into line-aligned pieces for the
// linguistic tokenizer, so a tagger never sees an unbounded input.
// Lines are never split; a single line longer than the limit forms its own chunk.
package chunk

import "strings"

const defaultChunkSize = 2000

// Chunker groups consecutive lines into chunks of at most ChunkSize words.
type Chunker struct {
	ChunkSize int // words per chunk
}

// New creates a Chunker with the given chunk size.
// Defaults to 2000 if chunkSize <= 0.
func New(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Chunker{ChunkSize: chunkSize}
}

// Chunk splits text into newline-joined groups of whole lines.
func (c *Chunker) Chunk(text string) []string {
	var (
		chunks []string
		cur    []string
		words  int
	)
	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, strings.Join(cur, "\n"))
			cur, words = nil, 0
		}
	}

	for _, line := range strings.Split(text, "\n") {
		n := len(strings.Fields(line))
		if n == 0 {
			continue
		}
		if words > 0 && words+n > c.ChunkSize {
			flush()
		}
		cur = append(cur, line)
		words += n
	}
	flush()
	return chunks
}
