package similarity

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
)

// DefaultEditThreshold is the edit distance accepted by the edit strategy.
const DefaultEditThreshold = 2

var (
	_ driven.NameMatcher = Exact{}
	_ driven.NameMatcher = (*Fold)(nil)
	_ driven.NameMatcher = (*Edit)(nil)
)

// Exact matches names that are byte-for-byte equal.
// "jane doe" and "Jane Doe" are different people.
type Exact struct{}

// Name returns the strategy name.
func (Exact) Name() string { return StrategyExact }

// Key returns the name unchanged.
func (Exact) Key(name string) string { return name }

// Match reports exact equality.
func (Exact) Match(existing, candidate string) bool { return existing == candidate }

// Fold matches names equal after case folding and whitespace collapsing.
type Fold struct {
	caser cases.Caser
}

// NewFold creates a case-folding matcher.
func NewFold() *Fold {
	return &Fold{caser: cases.Fold()}
}

// Name returns the strategy name.
func (f *Fold) Name() string { return StrategyFold }

// Key returns the folded name.
func (f *Fold) Key(name string) string {
	return f.caser.String(strings.Join(strings.Fields(name), " "))
}

// Match reports equality of folded names.
func (f *Fold) Match(existing, candidate string) bool {
	return f.Key(existing) == f.Key(candidate)
}

// Edit matches folded names within a Levenshtein distance.
// All names share one index bucket, so lookups are linear.
type Edit struct {
	fold      *Fold
	threshold int
}

// NewEdit creates an edit-distance matcher.
func NewEdit(threshold int) *Edit {
	return &Edit{fold: NewFold(), threshold: threshold}
}

// Name returns the strategy name.
func (e *Edit) Name() string { return StrategyEdit }

// Key returns a constant; every name is a candidate.
func (e *Edit) Key(string) string { return "" }

// Match reports whether the folded names are within the threshold.
func (e *Edit) Match(existing, candidate string) bool {
	return Levenshtein(e.fold.Key(existing), e.fold.Key(candidate)) <= e.threshold
}

// Levenshtein returns the rune edit distance between a and b.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
