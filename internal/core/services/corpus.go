package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/relay-cli/internal/logger"
)

// CorpusBuilder flattens notes, contacts and deals into searchable entries.
// The corpus is rebuilt for every query and never cached.
type CorpusBuilder struct {
	sources  []driven.DocumentSource
	contacts driven.ContactStore
	deals    driven.DealStore
}

// NewCorpusBuilder creates a corpus builder. Sources are read in order.
func NewCorpusBuilder(
	contacts driven.ContactStore,
	deals driven.DealStore,
	sources ...driven.DocumentSource,
) *CorpusBuilder {
	return &CorpusBuilder{
		sources:  sources,
		contacts: contacts,
		deals:    deals,
	}
}

// Build returns documents from every source, then contacts, then deals.
func (b *CorpusBuilder) Build(ctx context.Context) ([]domain.CorpusEntry, error) {
	var entries []domain.CorpusEntry

	for _, src := range b.sources {
		docs, err := src.Documents(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", domain.ErrStoreUnavailable, src.Name(), err)
		}
		for i := range docs {
			entries = append(entries, DocumentEntry(&docs[i]))
		}
		logger.Debug("Corpus: %d documents from %s", len(docs), src.Name())
	}

	contacts, err := b.contacts.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load contacts: %w", domain.ErrStoreUnavailable, err)
	}
	for i := range contacts {
		entries = append(entries, ContactEntry(&contacts[i]))
	}

	deals, err := b.deals.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load deals: %w", domain.ErrStoreUnavailable, err)
	}
	for i := range deals {
		entries = append(entries, DealEntry(&deals[i]))
	}

	logger.Debug("Corpus: %d contacts, %d deals, %d entries total",
		len(contacts), len(deals), len(entries))
	return entries, nil
}

// DocumentEntry builds the corpus entry for a note.
func DocumentEntry(d *domain.Document) domain.CorpusEntry {
	return domain.CorpusEntry{
		SourceLabel: d.Label(),
		Content:     d.Content,
		Display:     d.Content,
		Type:        domain.EntryTypeDocument,
		Document:    d,
	}
}

// noteLabels prefix the lines extraction writes into record notes.
var noteLabels = []string{"Location:", "Connected:", "Note:", "Status:", "Posting:"}

// ContactEntry builds the corpus entry for a contact. Only field values are
// scored; a notes location line is dropped when the Location field is set.
func ContactEntry(c *domain.Contact) domain.CorpusEntry {
	var f fields
	f.add("Name", c.Name)
	f.add("Headline", c.Headline)
	f.add("Company", c.Company)
	f.add("Type", c.ContactType)
	f.add("Location", c.Location)
	f.addNotes(c.Notes, c.Location != "")
	return domain.CorpusEntry{
		SourceLabel: c.Label(),
		Content:     f.content(),
		Display:     f.display(),
		Type:        domain.EntryTypeContact,
		Contact:     c,
	}
}

// DealEntry builds the corpus entry for a deal.
func DealEntry(d *domain.Deal) domain.CorpusEntry {
	var f fields
	f.add("Company", d.Company)
	f.add("Role", d.Role)
	f.add("Stage", d.Stage.String())
	f.addNotes(d.Notes, false)
	return domain.CorpusEntry{
		SourceLabel: d.Label(),
		Content:     f.content(),
		Display:     f.display(),
		Type:        domain.EntryTypeDeal,
		Deal:        d,
	}
}

// fields collects a record's values alongside their labelled lines.
type fields struct {
	values []string
	shown  strings.Builder
}

func (f *fields) add(name, value string) {
	if value == "" {
		return
	}
	f.values = append(f.values, value)
	f.shown.WriteString(name)
	f.shown.WriteString(": ")
	f.shown.WriteString(value)
	f.shown.WriteByte('\n')
}

// addNotes shows notes verbatim but scores each line without its label.
func (f *fields) addNotes(notes string, skipLocation bool) {
	if notes == "" {
		return
	}
	f.shown.WriteString("Notes: ")
	f.shown.WriteString(notes)
	f.shown.WriteByte('\n')

	for _, line := range strings.Split(notes, "\n") {
		line = strings.TrimSpace(line)
		if skipLocation && strings.HasPrefix(line, "Location:") {
			continue
		}
		for _, label := range noteLabels {
			if rest, ok := strings.CutPrefix(line, label); ok {
				line = strings.TrimSpace(rest)
				break
			}
		}
		if line != "" {
			f.values = append(f.values, line)
		}
	}
}

func (f *fields) content() string { return strings.Join(f.values, "\n") }

func (f *fields) display() string { return strings.TrimSpace(f.shown.String()) }
