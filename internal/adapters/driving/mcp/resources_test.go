package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

func TestExtractCompany(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid company URI",
			uri:      "relay://companies/Acme",
			expected: "Acme",
		},
		{
			name:     "escaped company",
			uri:      "relay://companies/Beta%20Labs",
			expected: "Beta Labs",
		},
		{
			name:     "invalid prefix",
			uri:      "file://companies/Acme",
			expected: "",
		},
		{
			name:     "missing company",
			uri:      "relay://companies/",
			expected: "",
		},
		{
			name:     "bad escape",
			uri:      "relay://companies/%zz",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractCompany(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func newResourceServer(t *testing.T, records *mockRecordService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}, Records: records})
	require.NoError(t, err)
	return server
}

func testRecords() *mockRecordService {
	dealID := "d1"
	return &mockRecordService{
		contacts: []domain.Contact{
			{ID: "c1", Name: "Jane Doe", Company: "Acme", ContactType: "Recruiter", LinkedDealID: &dealID},
			{ID: "c2", Name: "Sam Poe", Company: "Gamma"},
		},
		deals: []domain.Deal{
			{ID: "d1", Company: "Acme", Role: "Staff Engineer", Stage: domain.DealStageApplied},
		},
	}
}

func TestServer_handleContactsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns contacts", func(t *testing.T) {
		server := newResourceServer(t, testRecords())

		result, err := server.handleContactsResource(ctx, makeReadResourceRequest("relay://contacts"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var infos []contactInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
		require.Len(t, infos, 2)
		assert.Equal(t, "Jane Doe", infos[0].Name)
		assert.Equal(t, "d1", infos[0].DealID)
		assert.Empty(t, infos[1].DealID)
	})

	t.Run("empty store returns empty list", func(t *testing.T) {
		server := newResourceServer(t, &mockRecordService{})

		result, err := server.handleContactsResource(ctx, makeReadResourceRequest("relay://contacts"))
		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("store error", func(t *testing.T) {
		server := newResourceServer(t, &mockRecordService{err: errors.New("disk full")})

		_, err := server.handleContactsResource(ctx, makeReadResourceRequest("relay://contacts"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing contacts")
	})
}

func TestServer_handleDealsResource(t *testing.T) {
	server := newResourceServer(t, testRecords())

	result, err := server.handleDealsResource(context.Background(), makeReadResourceRequest("relay://deals"))
	require.NoError(t, err)

	var infos []dealInfo
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "Staff Engineer", infos[0].Role)
	assert.Equal(t, "applied", infos[0].Stage)
}

func TestServer_handleCompanyResource(t *testing.T) {
	ctx := context.Background()
	server := newResourceServer(t, testRecords())

	t.Run("returns deals and contacts", func(t *testing.T) {
		result, err := server.handleCompanyResource(ctx, makeReadResourceRequest("relay://companies/acme"))
		require.NoError(t, err)

		var company struct {
			Company  string        `json:"company"`
			Deals    []dealInfo    `json:"deals"`
			Contacts []contactInfo `json:"contacts"`
		}
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &company))
		assert.Equal(t, "acme", company.Company)
		assert.Len(t, company.Deals, 1)
		require.Len(t, company.Contacts, 1)
		assert.Equal(t, "Jane Doe", company.Contacts[0].Name)
	})

	t.Run("unknown company", func(t *testing.T) {
		_, err := server.handleCompanyResource(ctx, makeReadResourceRequest("relay://companies/zeppelin"))
		assert.Error(t, err)
	})

	t.Run("invalid URI", func(t *testing.T) {
		_, err := server.handleCompanyResource(ctx, makeReadResourceRequest("relay://companies/"))
		assert.Error(t, err)
	})
}

func TestFilterClusters(t *testing.T) {
	clusters := []domain.Cluster{{Company: "Acme"}, {Company: "Beta Labs"}}

	assert.Len(t, filterClusters(clusters, " labs "), 1)
	assert.Len(t, filterClusters(clusters, ""), 2)
	assert.Empty(t, filterClusters(clusters, "gamma"))
}
