// Package chunker provides fixed-size text chunking with forward overlap.
package chunker

import "strings"

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of characters each window extends
// past its nominal end.
const DefaultOverlap = 100

// Chunker splits text into fixed-size windows.
//
// The overlap is forward-only: each window's end is extended by overlap
// characters beyond the nominal boundary, while the next window still
// starts at the nominal boundary. Consecutive windows therefore share
// their first overlap characters with the tail of the previous one, and
// the number of windows depends only on the chunk size.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the window size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the forward overlap in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ChunkSize returns the configured window size.
func (c *Chunker) ChunkSize() int { return c.chunkSize }

// Overlap returns the configured forward overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk splits text into trimmed windows. Sizes and offsets count
// characters, not bytes, so multi-byte text is never split inside a rune.
// The output length is ceil(characters/chunkSize); whitespace-only tails
// produce empty strings, which the caller decides whether to keep. Pure
// function: identical inputs yield identical output.
func (c *Chunker) Chunk(text string) []string {
	runes := []rune(text)
	textLen := len(runes)
	if textLen == 0 {
		return nil
	}

	chunks := make([]string, 0, (textLen+c.chunkSize-1)/c.chunkSize)
	start := 0
	for start < textLen {
		end := start + c.chunkSize
		windowEnd := end + c.overlap
		if windowEnd > textLen {
			windowEnd = textLen
		}
		chunks = append(chunks, strings.TrimSpace(string(runes[start:windowEnd])))
		start += c.chunkSize
	}

	return chunks
}
