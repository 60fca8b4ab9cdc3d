package extraction

import (
	"context"
	"strings"
	"unicode"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/logger"
)

// strideTemplate names candidates built from fixed-stride groups.
const strideTemplate = "stride"

// Candidate is a record recovered from lines before normalisation.
type Candidate struct {
	// Fields maps recovered fields to their raw line text.
	Fields map[domain.Field]string

	// Template is the name of the template that validated.
	Template string

	// Anchor is the anchor the record was recovered from. Zero for stride groups.
	Anchor Anchor

	// AnchorText is the anchor line itself.
	AnchorText string
}

// Get returns a field value, or "" when the template did not carry it.
func (c Candidate) Get(f domain.Field) string {
	return c.Fields[f]
}

// degreeTokens are LinkedIn connection-degree markers.
var degreeTokens = map[string]struct{}{
	"1st": {}, "2nd": {}, "3rd": {}, "3rd+": {},
}

const degreeSuffix = "degree connection"

// Recoverer applies offset templates to each anchor.
type Recoverer struct{}

// Name returns the stage name.
func (Recoverer) Name() string { return "recover" }

// Process fills the batch candidates. Anchors with no valid template are dropped.
func (Recoverer) Process(_ context.Context, b *Batch) error {
	if b.LowPrecision {
		b.Candidates, b.Dropped = recoverStride(b.Lines, b.Profile)
		return nil
	}

	anchorLines := make(map[int]struct{}, len(b.Anchors))
	for _, a := range b.Anchors {
		anchorLines[a.Line] = struct{}{}
	}

	lower := 0
	for _, a := range b.Anchors {
		c, ok := RecoverAt(b.Lines, a.Line, lower, anchorLines, b.Profile.Templates)
		lower = a.Line + 1
		if !ok {
			b.Dropped++
			logger.Debugw("dropped candidate", "profile", b.Profile.Name, "anchor_line", a.Line)
			continue
		}
		c.Anchor = a
		c.AnchorText = b.Lines[a.Line]
		logger.Debugw("recovered candidate", "template", c.Template, "anchor_line", a.Line)
		b.Candidates = append(b.Candidates, c)
	}
	return nil
}

// RecoverAt tries templates in order for the anchor at index i.
// Lines below lower belong to the previous record and are never read.
func RecoverAt(
	lines []string, i, lower int, anchors map[int]struct{}, templates []domain.OffsetTemplate,
) (Candidate, bool) {
	for _, tmpl := range templates {
		if c, ok := applyTemplate(lines, i, lower, anchors, tmpl); ok {
			return c, true
		}
	}
	return Candidate{}, false
}

func applyTemplate(
	lines []string, i, lower int, anchors map[int]struct{}, tmpl domain.OffsetTemplate,
) (Candidate, bool) {
	at := func(offset int) (string, bool) {
		j := i + offset
		if offset >= 0 || j < lower || j >= len(lines) {
			return "", false
		}
		if _, isAnchor := anchors[j]; isAnchor {
			return "", false
		}
		return lines[j], true
	}

	for _, rule := range tmpl.Rules {
		if !checkRule(rule, at) {
			return Candidate{}, false
		}
	}

	fields := make(map[domain.Field]string, len(tmpl.Slots))
	for _, slot := range tmpl.Slots {
		line, ok := at(slot.Offset)
		if !ok {
			return Candidate{}, false
		}
		if slot.Field == domain.FieldMarker {
			continue
		}
		fields[slot.Field] = line
	}
	return Candidate{Fields: fields, Template: tmpl.Name}, true
}

func checkRule(rule domain.TemplateRule, at func(int) (string, bool)) bool {
	line, ok := at(rule.Offset)
	if !ok {
		return false
	}
	switch rule.Kind {
	case domain.RuleDegreeLine:
		return IsDegreeLine(line)
	case domain.RuleDegreeMarker:
		return HasDegreeMarker(line) && !IsDegreeLine(line)
	case domain.RuleDuplicate:
		other, ok := at(rule.Other)
		return ok && other == line
	case domain.RuleLogoCaption:
		other, ok := at(rule.Other)
		return ok && strings.EqualFold(line, other+" logo")
	case domain.RulePrefix:
		return strings.HasPrefix(line, rule.Text)
	case domain.RulePlausibleName:
		return IsPlausibleName(line)
	default:
		return false
	}
}

// recoverStride groups lines into records of profile.Stride lines.
// A trailing partial group and groups without a plausible name are dropped.
func recoverStride(lines []string, profile *domain.LayoutProfile) ([]Candidate, int) {
	n := profile.Stride
	var out []Candidate
	dropped := 0
	for start := 0; start < len(lines); start += n {
		if start+n > len(lines) {
			dropped++
			break
		}
		fields := make(map[domain.Field]string, n)
		for k, f := range profile.StrideFields {
			if f != domain.FieldMarker {
				fields[f] = lines[start+k]
			}
		}
		if name, ok := fields[domain.FieldName]; ok && !IsPlausibleName(StripDegreeMarker(name)) {
			dropped++
			continue
		}
		out = append(out, Candidate{Fields: fields, Template: strideTemplate})
	}
	return out, dropped
}

// IsDegreeLine reports whether line is only a connection-degree marker,
// such as "• 2nd" or "2nd degree connection".
func IsDegreeLine(line string) bool {
	t := strings.TrimSpace(strings.TrimSuffix(line, degreeSuffix))
	t = strings.TrimSpace(strings.TrimLeft(t, "•·- "))
	_, ok := degreeTokens[t]
	return ok
}

// HasDegreeMarker reports whether line contains a connection-degree marker.
func HasDegreeMarker(line string) bool {
	if strings.Contains(line, degreeSuffix) {
		return true
	}
	for _, f := range strings.Fields(line) {
		if _, ok := degreeTokens[strings.Trim(f, "•·")]; ok {
			return true
		}
	}
	return false
}

// StripDegreeMarker removes a trailing degree marker from a name line.
// "Jane Doe • 2nd" becomes "Jane Doe".
func StripDegreeMarker(line string) string {
	line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), degreeSuffix))
	fields := strings.Fields(line)
	for len(fields) > 0 {
		last := fields[len(fields)-1]
		if _, ok := degreeTokens[strings.Trim(last, "•·")]; ok || last == "•" || last == "·" {
			fields = fields[:len(fields)-1]
			continue
		}
		break
	}
	return strings.Join(fields, " ")
}

// IsPlausibleName is a cheap check that line could be a person's name:
// one to six words, at least one letter, no headline separators.
func IsPlausibleName(line string) bool {
	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 6 {
		return false
	}
	if strings.ContainsAny(line, "|@:") {
		return false
	}
	for _, sep := range []string{" at ", " with ", " from "} {
		if strings.Contains(line, sep) {
			return false
		}
	}
	if IsDegreeLine(line) {
		return false
	}
	for _, r := range line {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
