package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

func sampleClusters() []domain.Cluster {
	return []domain.Cluster{
		{
			Company: "Acme",
			Deal:    domain.Deal{ID: "d1", Company: "Acme", Role: "Staff Engineer", Stage: domain.DealStageApplied},
			Contacts: []domain.Contact{
				{Name: "Jane Doe", ContactType: "Recruiter"},
				{Name: "John Roe"},
			},
		},
		{
			Company:  "Beta Labs",
			Deal:     domain.Deal{ID: "d2", Company: "Beta Labs", Stage: domain.DealStageSaved},
			Contacts: []domain.Contact{{Name: "Sam Poe"}},
		},
	}
}

func TestNewClusterList(t *testing.T) {
	list := NewClusterList(nil)

	require.NotNil(t, list)
	assert.NotNil(t, list.styles)
	assert.Zero(t, list.Count())
}

func TestClusterList_View_Empty(t *testing.T) {
	assert.Contains(t, NewClusterList(nil).View(), "No clusters")
}

func TestClusterList_View(t *testing.T) {
	list := NewClusterList(nil)
	list.SetClusters(sampleClusters())

	view := list.View()

	assert.Contains(t, view, "Clusters (2)")
	assert.Contains(t, view, "Deal: Acme - Staff Engineer [applied]")
	assert.Contains(t, view, "- Jane Doe (Recruiter)")
	assert.Contains(t, view, "- John Roe")
	assert.Contains(t, view, "Deal: Beta Labs [saved]")
}

func TestClusterList_Navigation(t *testing.T) {
	list := NewClusterList(nil)
	list.SetClusters(sampleClusters())

	list.MoveUp()
	assert.Equal(t, 0, list.Selected())

	list.MoveDown()
	list.MoveDown()
	assert.Equal(t, 1, list.Selected())

	list.SetClusters(sampleClusters()[:1])
	assert.Equal(t, 0, list.Selected())
	assert.Len(t, list.Clusters(), 1)
}
