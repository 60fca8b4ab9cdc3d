package driving

import (
	"context"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// IngestService turns pasted text into stored contacts and deals.
type IngestService interface {
	// Ingest extracts records from raw text, skips duplicates and stores the rest.
	// Extraction problems are counted, not returned; only store failures are errors.
	Ingest(ctx context.Context, raw string, opts domain.IngestOptions) (*domain.IngestResult, error)

	// Profiles lists the available layout profiles.
	Profiles() ([]domain.LayoutProfile, error)

	// Profile returns a layout profile by name.
	Profile(name string) (*domain.LayoutProfile, error)
}
