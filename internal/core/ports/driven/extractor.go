package driven

import (
	"context"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// Extractor recovers records from pasted text.
// Extraction is lossy: records that fail validation are dropped and counted, never returned as errors.
type Extractor interface {
	// Extract applies the profile to raw text.
	Extract(ctx context.Context, raw string, profile *domain.LayoutProfile) (*domain.Extraction, error)

	// Detect picks the profile that best fits raw text.
	// Returns false if no profile applies.
	Detect(raw string, profiles []domain.LayoutProfile) (*domain.LayoutProfile, bool)
}

// LayoutStore provides layout profiles by name.
type LayoutStore interface {
	// List returns every available profile, builtins first.
	List() ([]domain.LayoutProfile, error)

	// Get returns a profile by name.
	// Returns domain.ErrUnknownProfile if no profile has that name.
	Get(name string) (*domain.LayoutProfile, error)
}

// NameMatcher decides whether two contact names refer to the same person.
type NameMatcher interface {
	// Name returns the strategy name used in configuration.
	Name() string

	// Key returns an index key; names with equal keys are candidates for a match.
	Key(name string) string

	// Match reports whether candidate duplicates existing.
	Match(existing, candidate string) bool
}
