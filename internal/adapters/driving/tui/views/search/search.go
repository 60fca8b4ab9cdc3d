// Package search provides the query and ranked results view for the TUI.
package search

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/relay-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/relay-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/relay-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/relay-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/relay-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/relay-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driving"
)

// View holds the query input, the ranked results and, for network
// queries, a cluster panel.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	clusters  *list.ClusterList
	statusbar *status.Bar

	retrieval driving.RetrievalService
	limit     int
	ctx       context.Context

	width        int
	height       int
	ready        bool
	err          error
	focusInput   bool // true while typing, false while navigating results
	showClusters bool
}

// NewView creates a new search view. limit caps results per query; zero means no limit.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	retrieval driving.RetrievalService,
	limit int,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s),
		list:       list.NewResultList(s),
		clusters:   list.NewClusterList(s),
		statusbar:  status.NewBar(s, km),
		retrieval:  retrieval,
		limit:      limit,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if key.Matches(msg, v.keymap.Back) {
		if v.list.Expanded() {
			v.list.ToggleExpanded()
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		return v.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, v.keymap.Details):
		v.list.ToggleExpanded()
	case key.Matches(msg, v.keymap.Up):
		v.list.MoveUp()
	case key.Matches(msg, v.keymap.Down):
		v.list.MoveDown()
	case key.Matches(msg, v.keymap.NewSearch):
		v.focusInput = true
		v.input.Reset()
		return v, v.input.Focus()
	}
	return v, nil
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		query := v.input.Submit()
		if query == "" {
			return v, nil
		}
		v.statusbar.SetMessage("")
		v.statusbar.SetState(status.StateSearching)
		v.focusInput = false
		v.input.Blur()
		return v, v.performSearch(query)
	case tea.KeyUp:
		v.input.Recall(-1)
		return v, nil
	case tea.KeyDown:
		v.input.Recall(1)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// performSearch runs the query off the update loop.
func (v *View) performSearch(query string) tea.Cmd {
	retrieval := v.retrieval
	ctx := v.ctx
	opts := domain.SearchOptions{Limit: v.limit}
	return func() tea.Msg {
		if retrieval == nil {
			return messages.ErrorOccurred{Err: ErrNoRetrievalService}
		}
		result, err := retrieval.Search(ctx, query, opts)
		return messages.SearchCompleted{Retrieval: result, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	var (
		results []domain.SearchResult
		total   int
	)
	if msg.Retrieval != nil {
		results = msg.Retrieval.Results
		total = msg.Retrieval.Total
		v.showClusters = msg.Retrieval.ClusterIntent
		v.clusters.SetClusters(msg.Retrieval.Clusters)
	}
	v.list.SetResults(results, total)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetCount(len(results))

	v.focusInput = false
	v.input.Blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("relay"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View())

	if v.showClusters {
		sections = append(sections, "", v.clusters.View())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	// header, input, status
	v.list.SetDimensions(width, height-10)
	v.clusters.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current query text.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the query text.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the current hits.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected hit.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the selected hit.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Clusters returns the clusters shown for the last network query.
func (v *View) Clusters() []domain.Cluster {
	if !v.showClusters {
		return nil
	}
	return v.clusters.Clusters()
}

// Expanded reports whether the selected hit's full text is shown.
func (v *View) Expanded() bool {
	return v.list.Expanded()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset returns the view to an empty query.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.Reset()
	v.list.SetResults(nil, 0)
	v.clusters.SetClusters(nil)
	v.showClusters = false
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
