package domain

import (
	"strings"
	"time"
)

// Contact families assigned by the field normaliser.
const (
	ContactTypeRecruiter = "Recruiter"
	ContactTypeVIP       = "VIP"
	ContactTypePeer      = "Peer"
)

// Origin tags for the SourceChannel field.
const (
	// SourceChannelLinkedIn is the default origin tag for pasted records.
	SourceChannelLinkedIn = "LinkedIn"

	// SourceChannelManual tags records entered through the CLI.
	SourceChannelManual = "Manual"
)

// Contact is a person recovered from pasted text or entered by hand.
type Contact struct {
	// ID is the unique identifier for the contact.
	ID string

	// Name is required and acts as the deduplication key.
	Name string

	// Headline is the free-text role line shown under the name.
	Headline string

	// Company is derived from the headline. Empty when no separator matched.
	Company string

	// ContactType is Recruiter, Peer, VIP or a compound tag such as "Recruiter (GTM)".
	ContactType string

	// Location is the location line, when the layout carries one.
	Location string

	// Notes holds origin-tagged text such as "Location: ...".
	Notes string

	// SourceChannel records where the contact came from.
	SourceChannel string

	// LinkedDealID is an advisory reference to a Deal at the same company.
	// It is not enforced; the deal may be absent.
	LinkedDealID *string

	// CreatedAt is when the contact was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the contact was last changed.
	UpdatedAt time.Time
}

// Family returns the contact type without any domain marker suffix.
// "Recruiter (GTM)" becomes "Recruiter".
func (c Contact) Family() string {
	family, _, _ := strings.Cut(c.ContactType, " (")
	return family
}

// Label returns the display label used for search results.
func (c Contact) Label() string {
	return "Contact: " + c.Name
}
