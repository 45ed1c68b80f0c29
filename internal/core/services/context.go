package services

import (
	"fmt"
	"strings"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
)

// Section is a labeled block of auxiliary context appended after the
// retrieved chunks, in caller order.
type Section struct {
	// Label is the section heading.
	Label string

	// Content is the section body. Empty sections are skipped.
	Content string
}

// AssembleContext renders retrieved chunks plus auxiliary sections into a
// single grounding string for the chat model.
//
// Each chunk becomes a 1-indexed block annotated with its score to two
// decimals, in the retrieval order. No truncation is applied; bounding the
// context is the caller's concern.
func AssembleContext(retrieved []domain.ScoredChunk, sections ...Section) string {
	var b strings.Builder

	for i, chunk := range retrieved {
		fmt.Fprintf(&b, "\n--- Chunk %d (score: %.2f) ---\n%s\n", i+1, chunk.Score, chunk.Text)
	}

	for _, section := range sections {
		if section.Content == "" {
			continue
		}
		fmt.Fprintf(&b, "\n### %s ###\n%s\n", section.Label, section.Content)
	}

	return b.String()
}

// FormatHistory renders interactions as a transcript suitable for a
// "Previous Interactions" section, oldest first.
func FormatHistory(interactions []domain.Interaction) string {
	if len(interactions) == 0 {
		return ""
	}
	lines := make([]string, 0, len(interactions))
	for _, i := range interactions {
		lines = append(lines, fmt.Sprintf("User: %s\nAI: %s", i.Prompt, i.Answer))
	}
	return strings.Join(lines, "\n")
}
