package mcp

import (
	"context"
	"strings"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	result *domain.Retrieval
	err    error
	opts   domain.SearchOptions
}

func (m *mockRetrievalService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.Retrieval, error) {
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &domain.Retrieval{Query: query, Results: []domain.SearchResult{}}, nil
	}
	return m.result, nil
}

// mockClusterService is a mock implementation of driving.ClusterService.
type mockClusterService struct {
	clusters []domain.Cluster
	err      error
}

func (m *mockClusterService) Clusters(_ context.Context) ([]domain.Cluster, error) {
	return m.clusters, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	result *domain.IngestResult
	err    error
	opts   domain.IngestOptions
}

func (m *mockIngestService) Ingest(
	_ context.Context,
	_ string,
	opts domain.IngestOptions,
) (*domain.IngestResult, error) {
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockIngestService) Profiles() ([]domain.LayoutProfile, error) {
	return nil, m.err
}

func (m *mockIngestService) Profile(_ string) (*domain.LayoutProfile, error) {
	return nil, m.err
}

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	available bool
	answer    *domain.Answer
	err       error
}

func (m *mockAnswerService) Ask(_ context.Context, _ string, _ domain.AskOptions) (*domain.Answer, error) {
	return m.answer, m.err
}

func (m *mockAnswerService) Available() bool {
	return m.available
}

// mockRecordService is a mock implementation of driving.RecordService.
type mockRecordService struct {
	contacts []domain.Contact
	deals    []domain.Deal
	err      error
}

func (m *mockRecordService) AddContact(_ context.Context, _ *domain.Contact) (string, error) {
	return "", m.err
}

func (m *mockRecordService) AddDeal(_ context.Context, _ *domain.Deal) error {
	return m.err
}

func (m *mockRecordService) SetDealStage(_ context.Context, _ string, _ domain.DealStage) error {
	return m.err
}

func (m *mockRecordService) AddNote(_ context.Context, _ *domain.Document) error {
	return m.err
}

func (m *mockRecordService) Contacts(_ context.Context) ([]domain.Contact, error) {
	return m.contacts, m.err
}

func (m *mockRecordService) Deals(_ context.Context) ([]domain.Deal, error) {
	return m.deals, m.err
}

func (m *mockRecordService) FindContacts(_ context.Context, company string) ([]domain.Contact, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Contact
	for _, c := range m.contacts {
		if strings.Contains(strings.ToLower(c.Company), strings.ToLower(company)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRecordService) FindDeals(_ context.Context, company string) ([]domain.Deal, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Deal
	for _, d := range m.deals {
		if strings.Contains(strings.ToLower(d.Company), strings.ToLower(company)) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockRecordService) Notes(_ context.Context) ([]domain.Document, error) {
	return nil, m.err
}
