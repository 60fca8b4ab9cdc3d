package domain

import (
	"strings"
	"time"
)

// DealStage is the pipeline position of a deal.
// Stages outside the known set are stored as given.
type DealStage string

// Known deal stages.
const (
	DealStageSaved     DealStage = "saved"
	DealStageApplied   DealStage = "applied"
	DealStageInterview DealStage = "interview"
	DealStageOffer     DealStage = "offer"
	DealStageRejected  DealStage = "rejected"
	DealStageClosed    DealStage = "closed"
)

// IsKnown returns true if the stage is one of the predefined stages.
func (s DealStage) IsKnown() bool {
	switch s {
	case DealStageSaved, DealStageApplied, DealStageInterview,
		DealStageOffer, DealStageRejected, DealStageClosed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s DealStage) String() string {
	return string(s)
}

// AllDealStages returns the predefined stages in pipeline order.
func AllDealStages() []DealStage {
	return []DealStage{
		DealStageSaved,
		DealStageApplied,
		DealStageInterview,
		DealStageOffer,
		DealStageRejected,
		DealStageClosed,
	}
}

// Deal is an opportunity at a company.
// Company is the only key used to join deals with contacts.
type Deal struct {
	// ID is the unique identifier for the deal.
	ID string

	// Company is the organisation name as entered or extracted.
	Company string

	// Role is the position title.
	Role string

	// Stage is the pipeline position.
	Stage DealStage

	// Notes holds free text such as the posting location.
	Notes string

	// SourceChannel records where the deal came from.
	SourceChannel string

	// CreatedAt is when the deal was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the deal was last changed.
	UpdatedAt time.Time
}

// Label returns the display label used for search results.
func (d Deal) Label() string {
	if d.Role == "" {
		return "Deal: " + d.Company
	}
	return "Deal: " + d.Company + " - " + d.Role
}

// DedupKey returns the (company, role) key used to skip repeated imports.
func (d Deal) DedupKey() string {
	return strings.TrimSpace(d.Company) + "\x00" + strings.TrimSpace(d.Role)
}
