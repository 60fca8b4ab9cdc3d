package services

import (
	"strings"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
)

// BatchIndex holds the names and deals needed to deduplicate and link one
// ingestion batch. It is loaded once from the stores and discarded after the
// batch; records inserted during the batch are added to it.
type BatchIndex struct {
	matcher driven.NameMatcher

	// names buckets existing contact names by matcher key.
	names map[string][]string

	// dealKeys holds the (company, role) key of every known deal.
	dealKeys map[string]struct{}

	// companies is every deal in store order, company lower-cased.
	companies []indexedDeal
}

type indexedDeal struct {
	company string
	id      string
}

// NewBatchIndex builds an index over existing contacts and deals.
func NewBatchIndex(matcher driven.NameMatcher, contacts []domain.Contact, deals []domain.Deal) *BatchIndex {
	idx := &BatchIndex{
		matcher:   matcher,
		names:     make(map[string][]string, len(contacts)),
		dealKeys:  make(map[string]struct{}, len(deals)),
		companies: make([]indexedDeal, 0, len(deals)),
	}
	for i := range contacts {
		idx.AddContact(&contacts[i])
	}
	for i := range deals {
		idx.AddDeal(&deals[i])
	}
	return idx
}

// HasName reports whether a contact with a matching name is already known.
func (x *BatchIndex) HasName(name string) bool {
	for _, existing := range x.names[x.matcher.Key(name)] {
		if x.matcher.Match(existing, name) {
			return true
		}
	}
	return false
}

// AddContact records a contact name.
func (x *BatchIndex) AddContact(c *domain.Contact) {
	key := x.matcher.Key(c.Name)
	x.names[key] = append(x.names[key], c.Name)
}

// HasDeal reports whether a deal with the same company and role is known.
func (x *BatchIndex) HasDeal(d *domain.Deal) bool {
	_, ok := x.dealKeys[d.DedupKey()]
	return ok
}

// AddDeal records a deal for deduplication and linkage.
func (x *BatchIndex) AddDeal(d *domain.Deal) {
	x.dealKeys[d.DedupKey()] = struct{}{}
	x.companies = append(x.companies, indexedDeal{
		company: strings.ToLower(d.Company),
		id:      d.ID,
	})
}

// LinkDeal returns the ID of the first deal whose company contains company,
// ignoring case. An empty company never links.
func (x *BatchIndex) LinkDeal(company string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(company))
	if needle == "" {
		return "", false
	}
	for _, d := range x.companies {
		if strings.Contains(d.company, needle) {
			return d.id, true
		}
	}
	return "", false
}
