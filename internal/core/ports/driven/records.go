package driven

import (
	"context"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// ContactStore persists contacts.
// Iteration order is insertion order; linkage and clustering depend on it.
type ContactStore interface {
	// Insert stores a new contact and returns its ID.
	// Returns domain.ErrAlreadyExists if the name is taken.
	Insert(ctx context.Context, contact *domain.Contact) (string, error)

	// Get retrieves a contact by ID.
	Get(ctx context.Context, id string) (*domain.Contact, error)

	// FindByCompanySubstring returns contacts whose company contains s, case-insensitively.
	FindByCompanySubstring(ctx context.Context, s string) ([]domain.Contact, error)

	// All returns every contact in store order.
	All(ctx context.Context) ([]domain.Contact, error)
}

// DealStore persists deals.
// Iteration order is insertion order; the first matching deal wins linkage.
type DealStore interface {
	// Save stores or updates a deal.
	Save(ctx context.Context, deal *domain.Deal) error

	// Get retrieves a deal by ID.
	Get(ctx context.Context, id string) (*domain.Deal, error)

	// SetStage updates the stage of a deal.
	SetStage(ctx context.Context, id string, stage domain.DealStage) error

	// FindByCompanySubstring returns deals whose company contains s, case-insensitively.
	FindByCompanySubstring(ctx context.Context, s string) ([]domain.Deal, error)

	// All returns every deal in store order.
	All(ctx context.Context) ([]domain.Deal, error)
}
