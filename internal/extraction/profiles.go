package extraction

import "github.com/custodia-labs/relay-cli/internal/core/domain"

// Builtin profile names.
const (
	ProfileLinkedInSearch      = "linkedin-search"
	ProfileLinkedInConnections = "linkedin-connections"
	ProfileJobApplications     = "job-applications"
	ProfileContactList         = "contact-list"
)

// Builtins returns the builtin layout profiles in detection order.
func Builtins() []domain.LayoutProfile {
	return []domain.LayoutProfile{
		linkedInSearch(),
		linkedInConnections(),
		jobApplications(),
		contactList(),
	}
}

// linkedInSearch covers people search results, where every card ends in a "Message" button.
func linkedInSearch() domain.LayoutProfile {
	return domain.LayoutProfile{
		Name:        ProfileLinkedInSearch,
		Description: "LinkedIn people search results (cards ending in \"Message\")",
		Kind:        domain.RecordKindContact,
		Anchors:     []domain.AnchorPredicate{{Kind: domain.AnchorExact, Text: "Message"}},
		Templates: []domain.OffsetTemplate{
			{
				Name: "degree-line",
				Slots: []domain.TemplateSlot{
					{Offset: -1, Field: domain.FieldLocation},
					{Offset: -2, Field: domain.FieldHeadline},
					{Offset: -3, Field: domain.FieldMarker},
					{Offset: -4, Field: domain.FieldName},
				},
				Rules: []domain.TemplateRule{
					{Kind: domain.RuleDegreeLine, Offset: -3},
					{Kind: domain.RulePlausibleName, Offset: -4},
				},
			},
			{
				Name: "name-with-degree",
				Slots: []domain.TemplateSlot{
					{Offset: -1, Field: domain.FieldLocation},
					{Offset: -2, Field: domain.FieldHeadline},
					{Offset: -3, Field: domain.FieldName},
				},
				Rules: []domain.TemplateRule{{Kind: domain.RuleDegreeMarker, Offset: -3}},
			},
			{
				Name: "duplicated-name",
				Slots: []domain.TemplateSlot{
					{Offset: -1, Field: domain.FieldLocation},
					{Offset: -2, Field: domain.FieldHeadline},
					{Offset: -3, Field: domain.FieldName},
					{Offset: -4, Field: domain.FieldMarker},
				},
				Rules: []domain.TemplateRule{{Kind: domain.RuleDuplicate, Offset: -3, Other: -4}},
			},
			{
				Name: "plain",
				Slots: []domain.TemplateSlot{
					{Offset: -1, Field: domain.FieldLocation},
					{Offset: -2, Field: domain.FieldHeadline},
					{Offset: -3, Field: domain.FieldName},
				},
				Rules: []domain.TemplateRule{{Kind: domain.RulePlausibleName, Offset: -3}},
			},
		},
		SourceChannel: domain.SourceChannelLinkedIn,
	}
}

// linkedInConnections covers the connections list, where cards end in "Connected on <date>".
func linkedInConnections() domain.LayoutProfile {
	return domain.LayoutProfile{
		Name:        ProfileLinkedInConnections,
		Description: "LinkedIn connections list (cards ending in \"Connected on <date>\")",
		Kind:        domain.RecordKindContact,
		Anchors: []domain.AnchorPredicate{
			{Kind: domain.AnchorPrefixDate, Text: "Connected on "},
			{Kind: domain.AnchorPrefixDate, Text: "Connected "},
		},
		Templates: []domain.OffsetTemplate{
			{
				Name: "duplicated-name",
				Slots: []domain.TemplateSlot{
					{Offset: -1, Field: domain.FieldHeadline},
					{Offset: -2, Field: domain.FieldName},
					{Offset: -3, Field: domain.FieldMarker},
				},
				Rules: []domain.TemplateRule{{Kind: domain.RuleDuplicate, Offset: -2, Other: -3}},
			},
			{
				Name: "plain",
				Slots: []domain.TemplateSlot{
					{Offset: -1, Field: domain.FieldHeadline},
					{Offset: -2, Field: domain.FieldName},
				},
				Rules: []domain.TemplateRule{{Kind: domain.RulePlausibleName, Offset: -2}},
			},
		},
		SourceChannel: domain.SourceChannelLinkedIn,
	}
}

// jobApplications covers the "My Jobs" applied list, where cards end in a posting status.
func jobApplications() domain.LayoutProfile {
	return domain.LayoutProfile{
		Name:        ProfileJobApplications,
		Description: "Job application list (cards ending in a posting status)",
		Kind:        domain.RecordKindDeal,
		Anchors: []domain.AnchorPredicate{
			{Kind: domain.AnchorExact, Text: "No longer accepting applications"},
			{Kind: domain.AnchorExact, Text: "Actively reviewing applicants"},
			{Kind: domain.AnchorPrefix, Text: "Application viewed"},
		},
		Noise: []string{"Applied", "Archive", "In progress", "Archived"},
		Templates: []domain.OffsetTemplate{
			{
				Name: "with-status",
				Slots: []domain.TemplateSlot{
					{Offset: -1, Field: domain.FieldStatus},
					{Offset: -2, Field: domain.FieldLocation},
					{Offset: -3, Field: domain.FieldCompany},
					{Offset: -4, Field: domain.FieldTitle},
				},
				Rules: []domain.TemplateRule{{Kind: domain.RulePrefix, Offset: -1, Text: "Applied "}},
			},
			{
				Name: "logo-caption",
				Slots: []domain.TemplateSlot{
					{Offset: -1, Field: domain.FieldLocation},
					{Offset: -2, Field: domain.FieldCompany},
					{Offset: -3, Field: domain.FieldTitle},
					{Offset: -4, Field: domain.FieldMarker},
				},
				Rules: []domain.TemplateRule{{Kind: domain.RuleLogoCaption, Offset: -4, Other: -2}},
			},
			{
				Name: "plain",
				Slots: []domain.TemplateSlot{
					{Offset: -1, Field: domain.FieldLocation},
					{Offset: -2, Field: domain.FieldCompany},
					{Offset: -3, Field: domain.FieldTitle},
				},
			},
		},
		SourceChannel: domain.SourceChannelLinkedIn,
		DefaultStage:  domain.DealStageApplied,
	}
}

// contactList covers plain exports with no per-record trailer: name, headline, location.
func contactList() domain.LayoutProfile {
	return domain.LayoutProfile{
		Name:         ProfileContactList,
		Description:  "Plain contact list in groups of name, headline, location (low precision)",
		Kind:         domain.RecordKindContact,
		Stride:       3,
		StrideFields: []domain.Field{domain.FieldName, domain.FieldHeadline, domain.FieldLocation},
	}
}
