package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driving"
)

// MockRetrievalService implements driving.RetrievalService for testing.
type MockRetrievalService struct {
	SearchFunc func(ctx context.Context, query string, opts domain.SearchOptions) (*domain.Retrieval, error)
}

func (m *MockRetrievalService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.Retrieval, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, opts)
	}
	return &domain.Retrieval{Query: query}, nil
}

// MockClusterService implements driving.ClusterService for testing.
type MockClusterService struct {
	ClustersFunc func(ctx context.Context) ([]domain.Cluster, error)
}

func (m *MockClusterService) Clusters(ctx context.Context) ([]domain.Cluster, error) {
	if m.ClustersFunc != nil {
		return m.ClustersFunc(ctx)
	}
	return nil, nil
}

var (
	_ driving.RetrievalService = (*MockRetrievalService)(nil)
	_ driving.ClusterService   = (*MockClusterService)(nil)
)

func TestNewPorts(t *testing.T) {
	retrieval := &MockRetrievalService{}
	clusters := &MockClusterService{}

	ports := NewPorts(retrieval, clusters)

	assert.Equal(t, retrieval, ports.Retrieval)
	assert.Equal(t, clusters, ports.Clusters)
	assert.Zero(t, ports.SearchLimit)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		err   error
	}{
		{
			name:  "valid",
			ports: NewPorts(&MockRetrievalService{}, &MockClusterService{}),
		},
		{
			name:  "missing retrieval",
			ports: &Ports{Clusters: &MockClusterService{}},
			err:   ErrMissingRetrievalService,
		},
		{
			name:  "missing clusters",
			ports: &Ports{Retrieval: &MockRetrievalService{}},
			err:   ErrMissingClusterService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
