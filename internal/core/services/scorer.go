package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// Scoring weights.
const (
	// TermWeight is added per occurrence of a query term in the content.
	TermWeight = 10

	// LabelBonus is added once when any query term appears in the label.
	LabelBonus = 50

	// ClusterBoost is added to deals that anchor a cluster when the query
	// carries cluster intent.
	ClusterBoost = 100
)

// ScoredEntry is a corpus entry with its keyword score.
type ScoredEntry struct {
	Entry domain.CorpusEntry
	Score int
}

// QueryTerms splits a query into lower-cased whitespace-separated terms.
func QueryTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Score returns the keyword score of one entry.
func Score(entry *domain.CorpusEntry, terms []string) int {
	if len(terms) == 0 {
		return 0
	}
	content := strings.ToLower(entry.Content)
	label := strings.ToLower(entry.SourceLabel)

	score := 0
	inLabel := false
	for _, term := range terms {
		score += TermWeight * strings.Count(content, term)
		if !inLabel && strings.Contains(label, term) {
			inLabel = true
		}
	}
	if inLabel {
		score += LabelBonus
	}
	return score
}

// Rank scores every entry, drops zero scores and sorts by score descending.
// Equal scores keep corpus order.
func Rank(entries []domain.CorpusEntry, terms []string) []ScoredEntry {
	ranked := make([]ScoredEntry, 0)
	if len(terms) == 0 {
		return ranked
	}
	for i := range entries {
		if score := Score(&entries[i], terms); score > 0 {
			ranked = append(ranked, ScoredEntry{Entry: entries[i], Score: score})
		}
	}
	sortScored(ranked)
	return ranked
}

func sortScored(ranked []ScoredEntry) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
}
