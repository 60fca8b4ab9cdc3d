package driving

import (
	"context"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// RetrievalService provides keyword retrieval over records and notes.
type RetrievalService interface {
	// Search ranks corpus entries against query.
	// An empty query yields an empty result, not an error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.Retrieval, error)
}

// ClusterService groups deals with the contacts at the same company.
type ClusterService interface {
	// Clusters returns one cluster per company with a deal and a contact. The
	// cluster's deal is the first deal for that company in store order.
	Clusters(ctx context.Context) ([]domain.Cluster, error)
}

// AnswerService answers questions from retrieved records with an LLM.
type AnswerService interface {
	// Ask retrieves context for question and asks the LLM.
	// Returns domain.ErrLLMUnavailable when no LLM is configured.
	Ask(ctx context.Context, question string, opts domain.AskOptions) (*domain.Answer, error)

	// Available reports whether an LLM is configured.
	Available() bool
}
