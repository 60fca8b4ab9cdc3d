package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driving"
	"github.com/custodia-labs/relay-cli/internal/logger"
)

// Ensure ClusterService implements the interface.
var _ driving.ClusterService = (*ClusterService)(nil)

// ClusterService groups deals with the contacts at the same company.
type ClusterService struct {
	contacts driven.ContactStore
	deals    driven.DealStore
}

// NewClusterService creates a new cluster service.
func NewClusterService(contacts driven.ContactStore, deals driven.DealStore) *ClusterService {
	return &ClusterService{
		contacts: contacts,
		deals:    deals,
	}
}

// Clusters returns one cluster per company that has both a deal and a contact.
func (s *ClusterService) Clusters(ctx context.Context) ([]domain.Cluster, error) {
	contacts, err := s.contacts.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load contacts: %w", domain.ErrStoreUnavailable, err)
	}
	deals, err := s.deals.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load deals: %w", domain.ErrStoreUnavailable, err)
	}
	return DetectClusters(deals, contacts), nil
}

// DetectClusters keys clusters by company, compared trimmed and case-folded.
// Each company with at least one contact yields exactly one cluster whose deal
// is the first deal for that company in store order. Later deals at the same
// company are not repeated. Clusters come out in the order of their deals.
func DetectClusters(deals []domain.Deal, contacts []domain.Contact) []domain.Cluster {
	byCompany := make(map[string][]domain.Contact)
	for i := range contacts {
		key := companyKey(contacts[i].Company)
		if key == "" {
			continue
		}
		byCompany[key] = append(byCompany[key], contacts[i])
	}

	clusters := make([]domain.Cluster, 0)
	seen := make(map[string]bool)
	for i := range deals {
		key := companyKey(deals[i].Company)
		if key == "" || seen[key] {
			continue
		}
		members, ok := byCompany[key]
		if !ok {
			continue
		}
		seen[key] = true
		clusters = append(clusters, domain.Cluster{
			Company:  strings.TrimSpace(deals[i].Company),
			Deal:     deals[i],
			Contacts: members,
		})
	}
	logger.Debug("Clusters: %d companies from %d deals", len(clusters), len(deals))
	return clusters
}

// companyKey folds a company name for equality comparison.
func companyKey(company string) string {
	return strings.ToLower(strings.TrimSpace(company))
}
