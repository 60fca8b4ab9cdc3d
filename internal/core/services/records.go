package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driving"
	"github.com/custodia-labs/relay-cli/internal/extraction"
	"github.com/custodia-labs/relay-cli/internal/logger"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// RecordService manages contacts, deals and notes entered by hand.
type RecordService struct {
	contacts driven.ContactStore
	deals    driven.DealStore
	notes    driven.DocumentStore
	sources  []driven.DocumentSource
}

// NewRecordService creates a new record service.
// Notes are written to the notes store; extra sources are read-only.
func NewRecordService(
	contacts driven.ContactStore,
	deals driven.DealStore,
	notes driven.DocumentStore,
	sources ...driven.DocumentSource,
) *RecordService {
	return &RecordService{
		contacts: contacts,
		deals:    deals,
		notes:    notes,
		sources:  sources,
	}
}

// AddContact normalises and stores a contact.
// Company and type are derived from the headline when not given, and the
// contact is linked to the first deal at a matching company.
func (s *RecordService) AddContact(ctx context.Context, c *domain.Contact) (string, error) {
	c.Name = strings.Join(strings.Fields(c.Name), " ")
	if c.Name == "" {
		return "", fmt.Errorf("%w: contact name is required", domain.ErrInvalidInput)
	}
	c.Headline = strings.TrimSpace(c.Headline)
	c.Company = strings.TrimSpace(c.Company)
	if c.Company == "" {
		c.Company = extraction.DeriveCompany(c.Headline, domain.DefaultSeparators())
	}
	if c.ContactType == "" {
		c.ContactType = extraction.ClassifyContact(c.Headline)
	}
	if c.SourceChannel == "" {
		c.SourceChannel = domain.SourceChannelManual
	}

	if c.LinkedDealID == nil && c.Company != "" {
		deals, err := s.deals.FindByCompanySubstring(ctx, c.Company)
		if err != nil {
			return "", fmt.Errorf("%w: find deals: %w", domain.ErrStoreUnavailable, err)
		}
		if len(deals) > 0 {
			id := deals[0].ID
			c.LinkedDealID = &id
			logger.Debug("Linked %q to deal %s", c.Name, id)
		}
	}

	return s.contacts.Insert(ctx, c)
}

// AddDeal stores a deal. An empty stage defaults to saved.
func (s *RecordService) AddDeal(ctx context.Context, d *domain.Deal) error {
	d.Company = strings.TrimSpace(d.Company)
	if d.Company == "" {
		return fmt.Errorf("%w: deal company is required", domain.ErrInvalidInput)
	}
	d.Role = strings.TrimSpace(d.Role)
	if d.Stage == "" {
		d.Stage = domain.DealStageSaved
	}
	if !d.Stage.IsKnown() {
		return fmt.Errorf("%w: unknown stage %q", domain.ErrInvalidInput, d.Stage)
	}
	if d.SourceChannel == "" {
		d.SourceChannel = domain.SourceChannelManual
	}
	return s.deals.Save(ctx, d)
}

// SetDealStage moves a deal to a new stage.
func (s *RecordService) SetDealStage(ctx context.Context, id string, stage domain.DealStage) error {
	if !stage.IsKnown() {
		return fmt.Errorf("%w: unknown stage %q", domain.ErrInvalidInput, stage)
	}
	if err := s.deals.SetStage(ctx, id, stage); err != nil {
		return fmt.Errorf("set stage of deal %s: %w", id, err)
	}
	return nil
}

// AddNote stores a free-text note. A missing title is taken from the first line.
func (s *RecordService) AddNote(ctx context.Context, doc *domain.Document) error {
	doc.Content = strings.TrimSpace(doc.Content)
	if doc.Content == "" {
		return fmt.Errorf("%w: note is empty", domain.ErrInvalidInput)
	}
	if doc.Title == "" {
		first, _, _ := strings.Cut(doc.Content, "\n")
		doc.Title = extraction.Truncate(strings.TrimSpace(first), 80)
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	return s.notes.SaveDocument(ctx, doc)
}

// Contacts returns every contact in store order.
func (s *RecordService) Contacts(ctx context.Context) ([]domain.Contact, error) {
	return s.contacts.All(ctx)
}

// Deals returns every deal in store order.
func (s *RecordService) Deals(ctx context.Context) ([]domain.Deal, error) {
	return s.deals.All(ctx)
}

// FindContacts returns contacts whose company contains company, ignoring case.
func (s *RecordService) FindContacts(ctx context.Context, company string) ([]domain.Contact, error) {
	return s.contacts.FindByCompanySubstring(ctx, company)
}

// FindDeals returns deals whose company contains company, ignoring case.
func (s *RecordService) FindDeals(ctx context.Context, company string) ([]domain.Deal, error) {
	return s.deals.FindByCompanySubstring(ctx, company)
}

// Notes returns stored notes followed by notes from every other source.
func (s *RecordService) Notes(ctx context.Context) ([]domain.Document, error) {
	var notes []domain.Document
	for _, src := range append([]driven.DocumentSource{s.notes}, s.sources...) {
		docs, err := src.Documents(ctx)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src.Name(), err)
		}
		notes = append(notes, docs...)
	}
	return notes, nil
}
