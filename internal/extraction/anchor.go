package extraction

import (
	"context"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// Anchor is a line that closes a record.
type Anchor struct {
	// Line is the index into the filtered lines.
	Line int

	// Predicate is the index of the predicate that matched.
	Predicate int

	// Date is set for prefix_date anchors.
	Date time.Time
}

// AnchorScanner locates record boundaries in filtered lines.
type AnchorScanner struct{}

// Name returns the stage name.
func (AnchorScanner) Name() string { return "anchors" }

// Process records anchors on the batch. With no anchors and a stride
// configured, the batch is flagged low precision for stride grouping.
func (AnchorScanner) Process(_ context.Context, b *Batch) error {
	b.Anchors = ScanAnchors(b.Lines, b.Profile.Anchors)
	if len(b.Anchors) == 0 && b.Profile.Stride > 0 {
		b.LowPrecision = true
	}
	return nil
}

// ScanAnchors returns the anchors in lines, in line order.
// Predicates are tried in order and a line is anchored at most once.
func ScanAnchors(lines []string, predicates []domain.AnchorPredicate) []Anchor {
	anchors := make([]Anchor, 0)
	if len(predicates) == 0 {
		return anchors
	}
	for i, line := range lines {
		for p, pred := range predicates {
			if date, ok := matchAnchor(line, pred); ok {
				anchors = append(anchors, Anchor{Line: i, Predicate: p, Date: date})
				break
			}
		}
	}
	return anchors
}

func matchAnchor(line string, pred domain.AnchorPredicate) (time.Time, bool) {
	switch pred.Kind {
	case domain.AnchorExact:
		return time.Time{}, line == strings.TrimSpace(pred.Text)
	case domain.AnchorPrefix:
		return time.Time{}, strings.HasPrefix(line, pred.Text)
	case domain.AnchorPrefixDate:
		rest, ok := strings.CutPrefix(line, pred.Text)
		if !ok {
			return time.Time{}, false
		}
		date, err := dateparse.ParseAny(strings.TrimSpace(rest))
		if err != nil {
			return time.Time{}, false
		}
		return date, true
	default:
		return time.Time{}, false
	}
}

// CountAnchors returns the number of anchors the profile finds in raw text.
func CountAnchors(raw string, profile *domain.LayoutProfile) int {
	return len(ScanAnchors(FilterLines(raw, profile), profile.Anchors))
}
