package services

import (
	"strings"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// clusterIntentPrefixes mark a query as asking about company clusters.
// Prefix matching lets "clusters", "networking" and "connections" count.
var clusterIntentPrefixes = []string{"cluster", "network", "connect"}

// DetectClusterIntent reports whether any term asks about clusters.
func DetectClusterIntent(terms []string) bool {
	for _, term := range terms {
		for _, prefix := range clusterIntentPrefixes {
			if strings.HasPrefix(term, prefix) {
				return true
			}
		}
	}
	return false
}

// ApplyClusterBoost adds ClusterBoost to every ranked deal that anchors a
// cluster or has a contact linked to it, then re-sorts stably.
// Entries not already ranked are left out; boosting never adds results.
func ApplyClusterBoost(ranked []ScoredEntry, clusters []domain.Cluster, contacts []domain.Contact) []ScoredEntry {
	boosted := make(map[string]struct{}, len(clusters))
	for i := range clusters {
		boosted[clusters[i].Deal.ID] = struct{}{}
	}
	for i := range contacts {
		if id := contacts[i].LinkedDealID; id != nil && *id != "" {
			boosted[*id] = struct{}{}
		}
	}
	if len(boosted) == 0 {
		return ranked
	}

	for i := range ranked {
		deal := ranked[i].Entry.Deal
		if ranked[i].Entry.Type != domain.EntryTypeDeal || deal == nil {
			continue
		}
		if _, ok := boosted[deal.ID]; ok {
			ranked[i].Score += ClusterBoost
		}
	}
	sortScored(ranked)
	return ranked
}
