// Package services contains the application core: stateless orchestration
// of chunking, embedding, vector storage, and answer generation over
// injected driven ports.
package services
