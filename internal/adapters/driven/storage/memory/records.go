package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
)

// Ensure stores implement the interfaces.
var (
	_ driven.ContactStore = (*ContactStore)(nil)
	_ driven.DealStore    = (*DealStore)(nil)
)

// ContactStore is an in-memory implementation of driven.ContactStore.
// Names are unique and compared exactly.
type ContactStore struct {
	mu       sync.RWMutex
	contacts []domain.Contact
	byName   map[string]int
	byID     map[string]int
}

// NewContactStore creates a new in-memory contact store.
func NewContactStore() *ContactStore {
	return &ContactStore{
		byName: make(map[string]int),
		byID:   make(map[string]int),
	}
}

// Insert stores a new contact and returns its ID.
func (s *ContactStore) Insert(_ context.Context, c *domain.Contact) (string, error) {
	if strings.TrimSpace(c.Name) == "" {
		return "", fmt.Errorf("%w: contact name is required", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[c.Name]; ok {
		return "", fmt.Errorf("contact %q: %w", c.Name, domain.ErrAlreadyExists)
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	s.byName[c.Name] = len(s.contacts)
	s.byID[c.ID] = len(s.contacts)
	s.contacts = append(s.contacts, *c)
	return c.ID, nil
}

// Get retrieves a contact by ID.
func (s *ContactStore) Get(_ context.Context, id string) (*domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := s.contacts[i]
	return &c, nil
}

// FindByCompanySubstring returns contacts whose company contains sub, case-insensitively.
func (s *ContactStore) FindByCompanySubstring(_ context.Context, sub string) ([]domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(sub)
	out := make([]domain.Contact, 0)
	for _, c := range s.contacts {
		if strings.Contains(strings.ToLower(c.Company), needle) {
			out = append(out, c)
		}
	}
	return out, nil
}

// All returns every contact in insertion order.
func (s *ContactStore) All(_ context.Context) ([]domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Contact, len(s.contacts))
	copy(out, s.contacts)
	return out, nil
}

// DealStore is an in-memory implementation of driven.DealStore.
type DealStore struct {
	mu    sync.RWMutex
	deals []domain.Deal
	byID  map[string]int
}

// NewDealStore creates a new in-memory deal store.
func NewDealStore() *DealStore {
	return &DealStore{
		byID: make(map[string]int),
	}
}

// Save stores or updates a deal. Updates keep the original position.
func (s *DealStore) Save(_ context.Context, d *domain.Deal) error {
	if strings.TrimSpace(d.Company) == "" {
		return fmt.Errorf("%w: deal company is required", domain.ErrInvalidInput)
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Stage == "" {
		d.Stage = domain.DealStageSaved
	}
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.byID[d.ID]; ok {
		s.deals[i] = *d
		return nil
	}
	s.byID[d.ID] = len(s.deals)
	s.deals = append(s.deals, *d)
	return nil
}

// Get retrieves a deal by ID.
func (s *DealStore) Get(_ context.Context, id string) (*domain.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	d := s.deals[i]
	return &d, nil
}

// SetStage updates the stage of a deal.
func (s *DealStore) SetStage(_ context.Context, id string, stage domain.DealStage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.deals[i].Stage = stage
	s.deals[i].UpdatedAt = time.Now().UTC()
	return nil
}

// FindByCompanySubstring returns deals whose company contains sub, case-insensitively.
func (s *DealStore) FindByCompanySubstring(_ context.Context, sub string) ([]domain.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(sub)
	out := make([]domain.Deal, 0)
	for _, d := range s.deals {
		if strings.Contains(strings.ToLower(d.Company), needle) {
			out = append(out, d)
		}
	}
	return out, nil
}

// All returns every deal in insertion order.
func (s *DealStore) All(_ context.Context) ([]domain.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Deal, len(s.deals))
	copy(out, s.deals)
	return out, nil
}
