package search

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/relay-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// MockRetrievalService implements driving.RetrievalService for testing.
type MockRetrievalService struct {
	SearchFunc func(ctx context.Context, query string, opts domain.SearchOptions) (*domain.Retrieval, error)
}

func (m *MockRetrievalService) Search(
	ctx context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.Retrieval, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, opts)
	}
	return &domain.Retrieval{Query: query}, nil
}

func testRetrieval() *domain.Retrieval {
	return &domain.Retrieval{
		Query: "acme",
		Results: []domain.SearchResult{
			{
				SourceLabel: "Contact: Jane Doe",
				Type:        domain.EntryTypeContact,
				Score:       60,
				FullContent: "Name: Jane Doe\nCompany: Acme",
			},
			{SourceLabel: "Deal: Acme - Staff Engineer", Type: domain.EntryTypeDeal, Score: 40},
		},
		Total: 2,
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeQuery(v *View, query string) {
	for _, r := range query {
		v.Update(keyRunes(string(r)))
	}
}

func newReadyView(retrieval *MockRetrievalService) *View {
	v := NewView(nil, nil, retrieval, 20)
	v.SetDimensions(100, 40)
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, &MockRetrievalService{}, 20)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.NotNil(t, v.keymap)
	assert.True(t, v.InputFocused())
	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
	assert.NotNil(t, v.Init())
}

func TestView_WithContext(t *testing.T) {
	v := NewView(nil, nil, nil, 0)
	type ctxKey string
	ctx := context.WithValue(context.Background(), ctxKey("k"), "v")

	assert.Equal(t, v, v.WithContext(ctx))
	assert.Equal(t, ctx, v.ctx)
}

func TestView_WindowSize(t *testing.T) {
	v := NewView(nil, nil, nil, 0)

	v.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	assert.True(t, v.Ready())
	assert.Equal(t, 120, v.width)
	assert.Equal(t, 50, v.height)
}

func TestView_TypingUpdatesQuery(t *testing.T) {
	v := newReadyView(&MockRetrievalService{})

	typeQuery(v, "acme")

	assert.Equal(t, "acme", v.Query())
}

func TestView_EnterRunsSearch(t *testing.T) {
	var gotQuery string
	var gotOpts domain.SearchOptions
	retrieval := &MockRetrievalService{
		SearchFunc: func(_ context.Context, query string, opts domain.SearchOptions) (*domain.Retrieval, error) {
			gotQuery = query
			gotOpts = opts
			return testRetrieval(), nil
		},
	}
	v := newReadyView(retrieval)
	typeQuery(v, " acme ")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, v.InputFocused())

	msg := cmd()
	completed, ok := msg.(messages.SearchCompleted)
	require.True(t, ok)
	assert.Equal(t, "acme", gotQuery)
	assert.Equal(t, 20, gotOpts.Limit)

	v.Update(completed)
	assert.Len(t, v.Results(), 2)
	assert.NoError(t, v.Err())
	assert.Contains(t, v.View(), "Contact: Jane Doe")
}

func TestView_EnterWithEmptyQuery(t *testing.T) {
	v := newReadyView(&MockRetrievalService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, v.InputFocused())
}

func TestView_NoRetrievalService(t *testing.T) {
	v := NewView(nil, nil, nil, 0)
	v.SetDimensions(100, 40)
	typeQuery(v, "acme")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, ErrNoRetrievalService)

	v.Update(errMsg)
	assert.ErrorIs(t, v.Err(), ErrNoRetrievalService)
}

func TestView_SearchError(t *testing.T) {
	v := newReadyView(&MockRetrievalService{})

	v.Update(messages.SearchCompleted{Err: errors.New("store closed")})

	assert.EqualError(t, v.Err(), "store closed")
	assert.Contains(t, v.View(), "store closed")
}

func TestView_ClusterPanel(t *testing.T) {
	v := newReadyView(&MockRetrievalService{})
	retrieval := testRetrieval()
	retrieval.ClusterIntent = true
	retrieval.Clusters = []domain.Cluster{{
		Company:  "Acme",
		Deal:     domain.Deal{Company: "Acme", Role: "Staff Engineer", Stage: domain.DealStageApplied},
		Contacts: []domain.Contact{{Name: "Jane Doe"}},
	}}

	v.Update(messages.SearchCompleted{Retrieval: retrieval})

	require.Len(t, v.Clusters(), 1)
	assert.Contains(t, v.View(), "Clusters (1)")

	v.Update(messages.SearchCompleted{Retrieval: testRetrieval()})
	assert.Nil(t, v.Clusters())
	assert.NotContains(t, v.View(), "Clusters (")
}

func TestView_ResultsNavigation(t *testing.T) {
	v := newReadyView(&MockRetrievalService{})
	v.Update(messages.SearchCompleted{Retrieval: testRetrieval()})

	v.Update(keyRunes("j"))
	assert.Equal(t, 1, v.SelectedIndex())

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.SelectedIndex())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, v.SelectedResult())
	assert.Equal(t, "Deal: Acme - Staff Engineer", v.SelectedResult().SourceLabel)
}

func TestView_EnterTogglesDetails(t *testing.T) {
	v := newReadyView(&MockRetrievalService{})
	v.Update(messages.SearchCompleted{Retrieval: testRetrieval()})

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, v.Expanded())
	assert.Contains(t, v.View(), "Company: Acme")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, v.Expanded())
}

func TestView_EscGoesToMenu(t *testing.T) {
	v := newReadyView(&MockRetrievalService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_NewSearch(t *testing.T) {
	v := newReadyView(&MockRetrievalService{})
	typeQuery(v, "acme")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(messages.SearchCompleted{Retrieval: testRetrieval()})

	v.Update(keyRunes("n"))

	assert.True(t, v.InputFocused())
	assert.Equal(t, "", v.Query())
	assert.Len(t, v.Results(), 2)
}

func TestView_HistoryRecall(t *testing.T) {
	v := newReadyView(&MockRetrievalService{})
	typeQuery(v, "acme")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(keyRunes("n"))

	v.Update(tea.KeyMsg{Type: tea.KeyUp})

	assert.Equal(t, "acme", v.Query())
}

func TestView_Reset(t *testing.T) {
	v := newReadyView(&MockRetrievalService{})
	v.SetQuery("acme")
	v.Update(messages.SearchCompleted{Retrieval: testRetrieval()})
	v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	v.Reset()

	assert.True(t, v.InputFocused())
	assert.Equal(t, "", v.Query())
	assert.Empty(t, v.Results())
	assert.NoError(t, v.Err())
}
