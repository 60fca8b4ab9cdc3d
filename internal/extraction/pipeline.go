package extraction

import (
	"context"
	"fmt"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/relay-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Batch carries one block of pasted text through the stages.
type Batch struct {
	Profile      *domain.LayoutProfile
	Raw          string
	Lines        []string
	Anchors      []Anchor
	LowPrecision bool
	Candidates   []Candidate
	Dropped      int
	Contacts     []domain.Contact
	Deals        []domain.Deal
}

// Stage is one step of extraction.
type Stage interface {
	// Name returns the stage name for logging.
	Name() string

	// Process reads and updates the batch.
	Process(ctx context.Context, b *Batch) error
}

// Pipeline chains stages and runs them in order.
type Pipeline struct {
	stages []Stage
}

// NewPipeline creates a pipeline with the given stages.
// Stages are executed in the order provided.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// DefaultPipeline returns the standard filter, scan, recover, normalise chain.
func DefaultPipeline() *Pipeline {
	return NewPipeline(NoiseFilter{}, AnchorScanner{}, Recoverer{}, Normaliser{})
}

// Run passes a new batch for raw through every stage.
func (p *Pipeline) Run(ctx context.Context, raw string, profile *domain.LayoutProfile) (*Batch, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is nil", domain.ErrInvalidInput)
	}

	b := &Batch{Profile: profile, Raw: raw}
	for _, stage := range p.stages {
		if err := stage.Process(ctx, b); err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
	}
	return b, nil
}

// Add appends a stage to the pipeline.
func (p *Pipeline) Add(stage Stage) {
	p.stages = append(p.stages, stage)
}

// Len returns the number of stages in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Extractor implements driven.Extractor on top of a Pipeline.
type Extractor struct {
	pipeline *Pipeline
}

// NewExtractor creates an extractor using the default pipeline.
func NewExtractor() *Extractor {
	return &Extractor{pipeline: DefaultPipeline()}
}

// Extract applies the profile to raw text.
func (e *Extractor) Extract(
	ctx context.Context, raw string, profile *domain.LayoutProfile,
) (*domain.Extraction, error) {
	logger.Section("Extraction")
	b, err := e.pipeline.Run(ctx, raw, profile)
	if err != nil {
		return nil, err
	}
	logger.Debug("Profile %s: %d lines, %d anchors, %d candidates, %d dropped",
		profile.Name, len(b.Lines), len(b.Anchors), len(b.Candidates), b.Dropped)
	if b.LowPrecision {
		logger.Warn("No anchors found; grouped lines in strides of %d", profile.Stride)
	}

	return &domain.Extraction{
		Profile:      profile.Name,
		Kind:         profile.Kind,
		Lines:        len(b.Lines),
		Anchors:      len(b.Anchors),
		LowPrecision: b.LowPrecision,
		Dropped:      b.Dropped,
		Contacts:     b.Contacts,
		Deals:        b.Deals,
	}, nil
}

// Detect returns the profile with the most anchors in raw text.
// Ties go to the earlier profile. With no anchors anywhere, the first
// profile with a stride fallback is returned.
func (e *Extractor) Detect(raw string, profiles []domain.LayoutProfile) (*domain.LayoutProfile, bool) {
	best, bestCount := -1, 0
	for i := range profiles {
		if len(profiles[i].Anchors) == 0 {
			continue
		}
		n := CountAnchors(raw, &profiles[i])
		logger.Debug("Detect: profile %s has %d anchors", profiles[i].Name, n)
		if n > bestCount {
			best, bestCount = i, n
		}
	}
	if best >= 0 {
		return &profiles[best], true
	}
	if len(FilterLines(raw, nil)) == 0 {
		return nil, false
	}
	for i := range profiles {
		if profiles[i].Stride > 0 {
			return &profiles[i], true
		}
	}
	return nil, false
}
