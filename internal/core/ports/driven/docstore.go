package driven

import (
	"context"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// DocumentSource provides free-text documents for the retrieval corpus.
// Sources are read-only from the core's point of view.
type DocumentSource interface {
	// Name identifies the source in logs.
	Name() string

	// Documents returns every document the source holds.
	Documents(ctx context.Context) ([]domain.Document, error)
}

// DocumentStore persists notes written through the CLI.
// Backed by SQLite for metadata storage.
type DocumentStore interface {
	DocumentSource

	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// DeleteDocument removes a document.
	DeleteDocument(ctx context.Context, id string) error
}
