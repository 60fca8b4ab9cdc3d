package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driving"
	"github.com/custodia-labs/relay-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// Highlight limits.
const (
	maxHighlights      = 3
	maxHighlightLength = 200
)

// RetrievalService ranks notes, contacts and deals against a keyword query.
type RetrievalService struct {
	corpus *CorpusBuilder
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(corpus *CorpusBuilder) *RetrievalService {
	return &RetrievalService{corpus: corpus}
}

// Search ranks corpus entries against query.
func (s *RetrievalService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.Retrieval, error) {
	logger.Section("Retrieval")
	logger.Debug("Query: %q", query)

	retrieval := &domain.Retrieval{
		Query:   query,
		Results: []domain.SearchResult{},
	}

	terms := QueryTerms(query)
	if len(terms) == 0 {
		logger.Debug("Empty query, returning no results")
		return retrieval, nil
	}

	entries, err := s.corpus.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("build corpus: %w", err)
	}

	ranked := Rank(filterTypes(entries, opts.Types), terms)
	logger.Debug("Ranked: %d of %d entries scored", len(ranked), len(entries))

	if DetectClusterIntent(terms) {
		contacts, deals := recordsOf(entries)
		retrieval.ClusterIntent = true
		retrieval.Clusters = DetectClusters(deals, contacts)
		ranked = ApplyClusterBoost(ranked, retrieval.Clusters, contacts)
		logger.Info("Cluster intent: %d clusters", len(retrieval.Clusters))
	}

	results := make([]domain.SearchResult, 0, len(ranked))
	for i := range ranked {
		entry := ranked[i].Entry
		shown := entry.Display
		if shown == "" {
			shown = entry.Content
		}
		results = append(results, domain.SearchResult{
			SourceLabel: entry.SourceLabel,
			Score:       ranked[i].Score,
			Preview:     generateHighlights(shown, terms),
			FullContent: shown,
			Type:        entry.Type,
			Entry:       entry,
		})
	}

	retrieval.Total = len(results)
	retrieval.Results = applyPagination(results, opts.Offset, opts.Limit)
	logger.Info("Final results: %d of %d", len(retrieval.Results), retrieval.Total)

	return retrieval, nil
}

// filterTypes keeps entries of the given types. No types keeps everything.
func filterTypes(entries []domain.CorpusEntry, types []domain.EntryType) []domain.CorpusEntry {
	if len(types) == 0 {
		return entries
	}
	allowed := make(map[domain.EntryType]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}

	filtered := make([]domain.CorpusEntry, 0, len(entries))
	for i := range entries {
		if allowed[entries[i].Type] {
			filtered = append(filtered, entries[i])
		}
	}
	return filtered
}

// recordsOf pulls the contacts and deals back out of a corpus, in order.
func recordsOf(entries []domain.CorpusEntry) ([]domain.Contact, []domain.Deal) {
	var contacts []domain.Contact
	var deals []domain.Deal
	for i := range entries {
		switch {
		case entries[i].Contact != nil:
			contacts = append(contacts, *entries[i].Contact)
		case entries[i].Deal != nil:
			deals = append(deals, *entries[i].Deal)
		}
	}
	return contacts, deals
}

// generateHighlights returns up to three lines or sentences containing a term.
func generateHighlights(content string, terms []string) []string {
	if len(terms) == 0 {
		return nil
	}

	var highlights []string
	for _, sentence := range splitSentences(content) {
		sentenceLower := strings.ToLower(sentence)
		for _, term := range terms {
			if strings.Contains(sentenceLower, term) {
				highlights = append(highlights, truncateRunes(sentence, maxHighlightLength))
				break
			}
		}
		if len(highlights) >= maxHighlights {
			break
		}
	}
	return highlights
}

// splitSentences splits content on sentence terminators and newlines.
func splitSentences(content string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range content {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// truncateRunes cuts s to n runes, marking the cut with an ellipsis.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// applyPagination applies offset and limit to results. A limit of zero or
// less returns everything after the offset.
func applyPagination(results []domain.SearchResult, offset, limit int) []domain.SearchResult {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(results) {
		return []domain.SearchResult{}
	}

	end := len(results)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return results[offset:end]
}
