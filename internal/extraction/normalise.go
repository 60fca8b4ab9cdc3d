package extraction

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/logger"
)

// keywordFamily is a contact type and the phrases that select it.
type keywordFamily struct {
	contactType string
	phrases     []string
}

// families are checked in order; the first family with a matching phrase wins.
var families = []keywordFamily{
	{domain.ContactTypeRecruiter, []string{
		"recruiter", "recruiting", "recruitment", "talent acquisition", "talent partner",
		"talent lead", "talent", "sourcer", "sourcing", "hiring", "headhunter", "people partner",
	}},
	{domain.ContactTypeVIP, []string{
		"founder", "co-founder", "cofounder", "ceo", "cto", "cfo", "coo", "cro", "chief",
		"president", "vp", "vice president", "svp", "evp", "head of", "director",
		"managing partner", "general partner", "owner", "investor", "board member",
	}},
}

// domainMarkers tag a contact type with a market segment, in this order.
var domainMarkers = []keywordFamily{
	{"GTM", []string{
		"gtm", "go-to-market", "go to market", "sales", "revenue", "account executive",
		"business development", "bdr", "sdr", "partnerships",
	}},
	{"Cyber", []string{
		"security", "cyber", "cybersecurity", "infosec", "soc", "threat", "appsec", "grc",
	}},
}

// Normaliser turns candidates into domain records.
type Normaliser struct{}

// Name returns the stage name.
func (Normaliser) Name() string { return "normalise" }

// Process converts batch candidates to contacts or deals.
// Candidates missing their key field are dropped.
func (Normaliser) Process(_ context.Context, b *Batch) error {
	for _, c := range b.Candidates {
		switch b.Profile.Kind {
		case domain.RecordKindDeal:
			deal := NormaliseDeal(c, b.Profile)
			if deal.Company == "" {
				b.Dropped++
				logger.Debugw("dropped deal without company", "template", c.Template)
				continue
			}
			b.Deals = append(b.Deals, deal)
		default:
			contact := NormaliseContact(c, b.Profile)
			if contact.Name == "" {
				b.Dropped++
				logger.Debugw("dropped contact without name", "template", c.Template)
				continue
			}
			b.Contacts = append(b.Contacts, contact)
		}
	}
	return nil
}

// NormaliseContact builds a contact from a candidate.
func NormaliseContact(c Candidate, p *domain.LayoutProfile) domain.Contact {
	headline := clean(c.Get(domain.FieldHeadline))
	company := clean(c.Get(domain.FieldCompany))
	if company == "" {
		company = DeriveCompany(headline, separators(p))
	}
	location := clean(c.Get(domain.FieldLocation))

	var notes []string
	if location != "" {
		notes = append(notes, "Location: "+location)
	}
	if !c.Anchor.Date.IsZero() {
		notes = append(notes, "Connected: "+c.Anchor.Date.Format("2006-01-02"))
	}
	if n := clean(c.Get(domain.FieldNotes)); n != "" {
		notes = append(notes, "Note: "+n)
	}

	return domain.Contact{
		Name:          Truncate(StripDegreeMarker(clean(c.Get(domain.FieldName))), p.Limit(domain.FieldName)),
		Headline:      Truncate(headline, p.Limit(domain.FieldHeadline)),
		Company:       Truncate(company, p.Limit(domain.FieldCompany)),
		ContactType:   ClassifyContact(headline),
		Location:      Truncate(location, p.Limit(domain.FieldLocation)),
		Notes:         Truncate(strings.Join(notes, "\n"), p.Limit(domain.FieldNotes)),
		SourceChannel: channel(p),
	}
}

// NormaliseDeal builds a deal from a candidate.
func NormaliseDeal(c Candidate, p *domain.LayoutProfile) domain.Deal {
	title := clean(c.Get(domain.FieldTitle))
	company := clean(c.Get(domain.FieldCompany))
	if company == "" {
		company = DeriveCompany(title, separators(p))
	}
	status := clean(c.Get(domain.FieldStatus))

	var notes []string
	if loc := clean(c.Get(domain.FieldLocation)); loc != "" {
		notes = append(notes, "Location: "+loc)
	}
	if status != "" {
		notes = append(notes, "Status: "+status)
	}
	if c.AnchorText != "" {
		notes = append(notes, "Posting: "+c.AnchorText)
	}

	stage := StageFromStatus(status)
	if stage == "" {
		stage = p.DefaultStage
	}
	if stage == "" {
		stage = domain.DealStageSaved
	}

	return domain.Deal{
		Company:       Truncate(company, p.Limit(domain.FieldCompany)),
		Role:          Truncate(title, p.Limit(domain.FieldTitle)),
		Stage:         stage,
		Notes:         Truncate(strings.Join(notes, "\n"), p.Limit(domain.FieldNotes)),
		SourceChannel: channel(p),
	}
}

// DeriveCompany returns the text after the first separator found, in priority order,
// cut at the next "|". It returns "" when no separator is present.
func DeriveCompany(headline string, seps []string) string {
	for _, sep := range seps {
		idx := strings.Index(headline, sep)
		if idx < 0 {
			continue
		}
		rest := headline[idx+len(sep):]
		if cut := strings.Index(rest, "|"); cut >= 0 {
			rest = rest[:cut]
		}
		return strings.TrimSpace(rest)
	}
	return ""
}

// ClassifyContact assigns Recruiter, VIP or Peer from headline keywords,
// with any domain markers appended: "Recruiter (GTM)".
func ClassifyContact(headline string) string {
	text := " " + strings.Join(tokenise(headline), " ") + " "

	family := domain.ContactTypePeer
	for _, f := range families {
		if containsAny(text, f.phrases) {
			family = f.contactType
			break
		}
	}

	var markers []string
	for _, m := range domainMarkers {
		if containsAny(text, m.phrases) {
			markers = append(markers, m.contactType)
		}
	}
	if len(markers) == 0 {
		return family
	}
	return family + " (" + strings.Join(markers, ", ") + ")"
}

// StageFromStatus maps a status line such as "Applied 3d ago" to a stage.
func StageFromStatus(status string) domain.DealStage {
	s := strings.ToLower(status)
	switch {
	case s == "":
		return ""
	case strings.HasPrefix(s, "applied"):
		return domain.DealStageApplied
	case strings.Contains(s, "interview"):
		return domain.DealStageInterview
	case strings.Contains(s, "offer"):
		return domain.DealStageOffer
	case strings.Contains(s, "not selected"), strings.Contains(s, "rejected"):
		return domain.DealStageRejected
	case strings.HasPrefix(s, "saved"):
		return domain.DealStageSaved
	default:
		return ""
	}
}

// Truncate cuts s to at most n runes. Truncation is silent.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}

// tokenise lower-cases s and splits it on anything that is not a letter, digit, '-' or '+'.
func tokenise(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '+'
	})
}

// containsAny matches whole-word phrases against space-padded token text.
func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, " "+p+" ") {
			return true
		}
	}
	return false
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func separators(p *domain.LayoutProfile) []string {
	if len(p.Separators) > 0 {
		return p.Separators
	}
	return domain.DefaultSeparators()
}

func channel(p *domain.LayoutProfile) string {
	if p.SourceChannel != "" {
		return p.SourceChannel
	}
	return domain.SourceChannelLinkedIn
}
