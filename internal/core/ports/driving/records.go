package driving

import (
	"context"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// RecordService manages contacts, deals and notes entered by hand.
type RecordService interface {
	// AddContact normalises and stores a contact.
	// Returns domain.ErrAlreadyExists if the name is taken.
	AddContact(ctx context.Context, contact *domain.Contact) (string, error)

	// AddDeal stores a deal.
	AddDeal(ctx context.Context, deal *domain.Deal) error

	// SetDealStage moves a deal to a new stage.
	SetDealStage(ctx context.Context, id string, stage domain.DealStage) error

	// AddNote stores a free-text note.
	AddNote(ctx context.Context, doc *domain.Document) error

	// Contacts returns every contact in store order.
	Contacts(ctx context.Context) ([]domain.Contact, error)

	// Deals returns every deal in store order.
	Deals(ctx context.Context) ([]domain.Deal, error)

	// FindContacts returns contacts whose company contains company, ignoring case.
	FindContacts(ctx context.Context, company string) ([]domain.Contact, error)

	// FindDeals returns deals whose company contains company, ignoring case.
	FindDeals(ctx context.Context, company string) ([]domain.Deal, error)

	// Notes returns every note from every document source.
	Notes(ctx context.Context) ([]domain.Document, error)
}
