package domain

import (
	"fmt"
	"strings"
)

// RecordKind identifies what a layout profile produces.
type RecordKind string

// Record kinds.
const (
	RecordKindContact RecordKind = "contact"
	RecordKindDeal    RecordKind = "deal"
)

// IsValid returns true if the kind is recognised.
func (k RecordKind) IsValid() bool {
	return k == RecordKindContact || k == RecordKindDeal
}

// AnchorKind selects how an anchor predicate matches a line.
type AnchorKind string

// Anchor predicate kinds.
const (
	// AnchorExact matches a line equal to Text.
	AnchorExact AnchorKind = "exact"

	// AnchorPrefix matches a line starting with Text.
	AnchorPrefix AnchorKind = "prefix"

	// AnchorPrefixDate matches a line starting with Text followed by a parseable date.
	AnchorPrefixDate AnchorKind = "prefix_date"
)

// AnchorPredicate is one way of recognising a record boundary line.
type AnchorPredicate struct {
	Kind AnchorKind `yaml:"kind"`
	Text string     `yaml:"text"`
}

// Field names a value recovered from a record.
type Field string

// Recoverable fields.
const (
	FieldName     Field = "name"
	FieldHeadline Field = "headline"
	FieldLocation Field = "location"
	FieldTitle    Field = "title"
	FieldCompany  Field = "company"
	FieldStatus   Field = "status"
	FieldNotes    Field = "notes"

	// FieldMarker is a structural line (degree marker, logo caption) that is consumed but not kept.
	FieldMarker Field = "marker"
)

// TemplateSlot maps a line relative to the anchor onto a field.
// Offset is negative: -1 is the line directly above the anchor.
type TemplateSlot struct {
	Offset int   `yaml:"offset"`
	Field  Field `yaml:"field"`
}

// RuleKind selects the structural check that validates a template.
type RuleKind string

// Template validation rules.
const (
	// RuleDegreeLine requires the line at Offset to be a bare connection-degree marker.
	RuleDegreeLine RuleKind = "degree_line"

	// RuleDegreeMarker requires the line at Offset to contain a connection-degree marker.
	RuleDegreeMarker RuleKind = "degree_marker"

	// RuleDuplicate requires the lines at Offset and Other to be identical.
	RuleDuplicate RuleKind = "duplicate"

	// RuleLogoCaption requires the line at Offset to equal the line at Other followed by " logo".
	RuleLogoCaption RuleKind = "logo_caption"

	// RulePrefix requires the line at Offset to start with Text.
	RulePrefix RuleKind = "prefix"

	// RulePlausibleName requires the line at Offset to look like a person's name.
	RulePlausibleName RuleKind = "plausible_name"
)

// TemplateRule is a cheap structural check applied before a template is accepted.
type TemplateRule struct {
	Kind   RuleKind `yaml:"kind"`
	Offset int      `yaml:"offset"`
	Other  int      `yaml:"other,omitempty"`
	Text   string   `yaml:"text,omitempty"`
}

// OffsetTemplate is a fixed set of backward offsets expected to hold specific fields.
type OffsetTemplate struct {
	Name  string         `yaml:"name"`
	Slots []TemplateSlot `yaml:"slots"`
	Rules []TemplateRule `yaml:"rules"`
}

// Span returns the largest backward distance the template reads.
func (t OffsetTemplate) Span() int {
	span := 0
	for _, s := range t.Slots {
		if -s.Offset > span {
			span = -s.Offset
		}
	}
	for _, r := range t.Rules {
		if -r.Offset > span {
			span = -r.Offset
		}
		if -r.Other > span {
			span = -r.Other
		}
	}
	return span
}

// LayoutProfile describes one pasted-layout variant as data.
// New variants are added as configuration, not code.
type LayoutProfile struct {
	// Name identifies the profile on the command line and in config.
	Name string `yaml:"name"`

	// Description is shown by "layout list".
	Description string `yaml:"description"`

	// Kind is the record type produced.
	Kind RecordKind `yaml:"kind"`

	// Anchors are tried in order; a line is anchored at the first match.
	Anchors []AnchorPredicate `yaml:"anchors"`

	// Noise lists extra chrome strings dropped before scanning.
	Noise []string `yaml:"noise"`

	// KeepNumeric disables dropping of numeric-only lines.
	KeepNumeric bool `yaml:"keep_numeric"`

	// Templates are tried in order; the first valid one wins.
	Templates []OffsetTemplate `yaml:"templates"`

	// Stride is the group size used when no anchor is found. Zero disables the fallback.
	Stride int `yaml:"stride"`

	// StrideFields names the fields of each stride group in line order.
	StrideFields []Field `yaml:"stride_fields"`

	// Separators are scanned in order to derive a company from a headline.
	Separators []string `yaml:"separators"`

	// FieldLimits caps field lengths in runes. Missing fields use the defaults.
	FieldLimits map[Field]int `yaml:"field_limits"`

	// SourceChannel tags every record produced.
	SourceChannel string `yaml:"source_channel"`

	// DefaultStage is the stage given to deals without a status line.
	DefaultStage DealStage `yaml:"default_stage"`
}

// DefaultSeparators is the company separator priority used when a profile sets none.
func DefaultSeparators() []string {
	return []string{" at ", " @ ", " with ", " from "}
}

// DefaultFieldLimits returns the maximum stored length per field.
func DefaultFieldLimits() map[Field]int {
	return map[Field]int{
		FieldName:     100,
		FieldHeadline: 300,
		FieldLocation: 120,
		FieldTitle:    200,
		FieldCompany:  120,
		FieldStatus:   120,
		FieldNotes:    1000,
	}
}

// Limit returns the length cap for a field.
func (p *LayoutProfile) Limit(f Field) int {
	if n, ok := p.FieldLimits[f]; ok && n > 0 {
		return n
	}
	return DefaultFieldLimits()[f]
}

// AnchorLiterals returns the literal text of every anchor predicate.
// The noise filter never drops these lines.
func (p *LayoutProfile) AnchorLiterals() []string {
	out := make([]string, 0, len(p.Anchors))
	for _, a := range p.Anchors {
		out = append(out, a.Text)
	}
	return out
}

// Validate checks the profile is usable by the extractor.
func (p *LayoutProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: profile name is required", ErrInvalidInput)
	}
	if !p.Kind.IsValid() {
		return fmt.Errorf("%w: profile %s: unknown kind %q", ErrInvalidInput, p.Name, p.Kind)
	}
	if len(p.Anchors) == 0 && p.Stride <= 0 {
		return fmt.Errorf("%w: profile %s: needs anchors or a stride", ErrInvalidInput, p.Name)
	}
	if len(p.Anchors) > 0 && len(p.Templates) == 0 {
		return fmt.Errorf("%w: profile %s: anchors without templates", ErrInvalidInput, p.Name)
	}
	if p.Stride > 0 && len(p.StrideFields) != p.Stride {
		return fmt.Errorf("%w: profile %s: stride %d needs %d stride fields",
			ErrInvalidInput, p.Name, p.Stride, p.Stride)
	}
	for _, a := range p.Anchors {
		switch a.Kind {
		case AnchorExact, AnchorPrefix, AnchorPrefixDate:
		default:
			return fmt.Errorf("%w: profile %s: unknown anchor kind %q", ErrInvalidInput, p.Name, a.Kind)
		}
		if a.Text == "" {
			return fmt.Errorf("%w: profile %s: empty anchor text", ErrInvalidInput, p.Name)
		}
	}
	for _, t := range p.Templates {
		for _, s := range t.Slots {
			if s.Offset >= 0 {
				return fmt.Errorf("%w: profile %s: template %s: offsets must be negative",
					ErrInvalidInput, p.Name, t.Name)
			}
		}
	}
	return nil
}
