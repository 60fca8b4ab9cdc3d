package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driving"
	"github.com/custodia-labs/relay-cli/internal/logger"
	"github.com/custodia-labs/relay-cli/internal/similarity"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs pasted text through the extractor, then deduplicates,
// links and stores the recovered records.
type IngestService struct {
	contacts  driven.ContactStore
	deals     driven.DealStore
	extractor driven.Extractor
	layouts   driven.LayoutStore
	matchers  *similarity.Registry
}

// NewIngestService creates a new ingest service.
// A nil registry falls back to the built-in similarity strategies.
func NewIngestService(
	contacts driven.ContactStore,
	deals driven.DealStore,
	extractor driven.Extractor,
	layouts driven.LayoutStore,
	matchers *similarity.Registry,
) *IngestService {
	if matchers == nil {
		matchers = similarity.DefaultRegistry()
	}
	return &IngestService{
		contacts:  contacts,
		deals:     deals,
		extractor: extractor,
		layouts:   layouts,
		matchers:  matchers,
	}
}

// Ingest extracts records from raw text, skips duplicates and stores the rest.
func (s *IngestService) Ingest(
	ctx context.Context, raw string, opts domain.IngestOptions,
) (*domain.IngestResult, error) {
	logger.Section("Ingest")

	result := &domain.IngestResult{}
	if strings.TrimSpace(raw) == "" {
		logger.Debug("Empty input, nothing to ingest")
		return result, nil
	}

	profile, err := s.resolveProfile(raw, opts.Profile)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		logger.Info("No layout profile matched the input")
		return result, nil
	}
	logger.Info("Using layout profile %s", profile.Name)

	matcher, err := s.matchers.Build(opts.Similarity, map[string]any{"threshold": opts.EditThreshold})
	if err != nil {
		return nil, fmt.Errorf("similarity: %w", err)
	}

	extraction, err := s.extractor.Extract(ctx, raw, profile)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	result.Profile = extraction.Profile
	result.Kind = extraction.Kind
	result.Found = extraction.Found()
	result.Dropped = extraction.Dropped
	result.LowPrecision = extraction.LowPrecision
	result.Contacts = []domain.Contact{}
	result.Deals = []domain.Deal{}

	if result.Found == 0 {
		return result, nil
	}

	idx, err := s.loadIndex(ctx, matcher)
	if err != nil {
		return nil, err
	}

	// Deals go first so contacts in a mixed batch can link to them.
	for i := range extraction.Deals {
		if err := s.ingestDeal(ctx, idx, &extraction.Deals[i], opts, result); err != nil {
			return result, err
		}
	}
	for i := range extraction.Contacts {
		if err := s.ingestContact(ctx, idx, &extraction.Contacts[i], opts, result); err != nil {
			return result, err
		}
	}

	logger.Info("%d found, %d inserted, %d skipped, %d linked",
		result.Found, result.Inserted, result.Skipped, result.Linked)
	return result, nil
}

// Profiles lists the available layout profiles.
func (s *IngestService) Profiles() ([]domain.LayoutProfile, error) {
	return s.layouts.List()
}

// Profile returns a layout profile by name.
func (s *IngestService) Profile(name string) (*domain.LayoutProfile, error) {
	return s.layouts.Get(name)
}

// resolveProfile returns the named profile, or the best detected one for
// ProfileAuto. A nil profile with no error means nothing matched.
func (s *IngestService) resolveProfile(raw, name string) (*domain.LayoutProfile, error) {
	if name != "" && name != domain.ProfileAuto {
		return s.layouts.Get(name)
	}

	profiles, err := s.layouts.List()
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	profile, ok := s.extractor.Detect(raw, profiles)
	if !ok {
		return nil, nil
	}
	return profile, nil
}

func (s *IngestService) loadIndex(ctx context.Context, matcher driven.NameMatcher) (*BatchIndex, error) {
	contacts, err := s.contacts.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load contacts: %w", domain.ErrStoreUnavailable, err)
	}
	deals, err := s.deals.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load deals: %w", domain.ErrStoreUnavailable, err)
	}
	logger.Debug("Batch index: %d contacts, %d deals, strategy %s",
		len(contacts), len(deals), matcher.Name())
	return NewBatchIndex(matcher, contacts, deals), nil
}

func (s *IngestService) ingestContact(
	ctx context.Context,
	idx *BatchIndex,
	c *domain.Contact,
	opts domain.IngestOptions,
	result *domain.IngestResult,
) error {
	if idx.HasName(c.Name) {
		logger.Debug("Skip contact %q: already stored", c.Name)
		result.Skipped++
		return nil
	}
	if opts.SourceChannel != "" {
		c.SourceChannel = opts.SourceChannel
	}
	if id, ok := idx.LinkDeal(c.Company); ok {
		c.LinkedDealID = &id
	}

	if !opts.DryRun {
		id, err := s.contacts.Insert(ctx, c)
		if errors.Is(err, domain.ErrAlreadyExists) {
			logger.Debug("Skip contact %q: store reports duplicate", c.Name)
			result.Skipped++
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: insert contact %q: %w", domain.ErrStoreUnavailable, c.Name, err)
		}
		c.ID = id
	}

	idx.AddContact(c)
	result.Inserted++
	if c.LinkedDealID != nil {
		result.Linked++
	}
	result.Contacts = append(result.Contacts, *c)
	return nil
}

func (s *IngestService) ingestDeal(
	ctx context.Context,
	idx *BatchIndex,
	d *domain.Deal,
	opts domain.IngestOptions,
	result *domain.IngestResult,
) error {
	if idx.HasDeal(d) {
		logger.Debug("Skip deal %q at %q: already stored", d.Role, d.Company)
		result.Skipped++
		return nil
	}
	if opts.SourceChannel != "" {
		d.SourceChannel = opts.SourceChannel
	}

	if opts.DryRun {
		// Provisional ID so contacts later in the batch can link to it.
		d.ID = uuid.NewString()
	} else if err := s.deals.Save(ctx, d); err != nil {
		return fmt.Errorf("%w: save deal %q: %w", domain.ErrStoreUnavailable, d.Company, err)
	}

	idx.AddDeal(d)
	result.Inserted++
	result.Deals = append(result.Deals, *d)
	return nil
}
