package domain

import "time"

// ScoredChunk is a retrieved chunk paired with its similarity score.
// Results are ephemeral; they exist only between a query and the prompt
// assembly that consumes them.
type ScoredChunk struct {
	// Text is the stored chunk content.
	Text string

	// Source is the source prefix the chunk was ingested under.
	Source string

	// Score is the cosine similarity against the query vector.
	Score float64
}

// Interaction is one user prompt and the model answer it received.
// Recent interactions are folded back into the grounding context.
type Interaction struct {
	// ID is the unique interaction identifier.
	ID string

	// Namespace is the corpus the interaction was answered against.
	Namespace string

	// Prompt is the user's question.
	Prompt string

	// Answer is the model's response.
	Answer string

	// CreatedAt is when the interaction happened.
	CreatedAt time.Time
}

// Answer is the result of a grounded question.
type Answer struct {
	// Text is the model's answer.
	Text string

	// Retrieved are the chunks used to ground the answer, score descending.
	Retrieved []ScoredChunk

	// Context is the assembled grounding context that was sent to the model.
	Context string
}
