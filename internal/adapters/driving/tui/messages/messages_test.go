package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewMenu, "menu"},
		{ViewSearch, "search"},
		{ViewClusters, "clusters"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestSearchCompleted(t *testing.T) {
	t.Run("with retrieval", func(t *testing.T) {
		msg := SearchCompleted{Retrieval: &domain.Retrieval{Query: "acme", Total: 2}}
		assert.Equal(t, "acme", msg.Retrieval.Query)
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		msg := SearchCompleted{Err: errors.New("store closed")}
		assert.Nil(t, msg.Retrieval)
		assert.EqualError(t, msg.Err, "store closed")
	})
}

func TestClustersLoaded(t *testing.T) {
	msg := ClustersLoaded{Clusters: []domain.Cluster{{Company: "Acme"}}}
	assert.Len(t, msg.Clusters, 1)
	assert.Equal(t, "Acme", msg.Clusters[0].Company)
}

func TestViewType_Title(t *testing.T) {
	assert.Equal(t, "relay", ViewMenu.Title())
	assert.Equal(t, "relay: clusters", ViewClusters.Title())
	assert.Equal(t, "relay: unknown", ViewType(-1).Title())
}
