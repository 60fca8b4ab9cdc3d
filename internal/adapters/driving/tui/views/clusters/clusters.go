// Package clusters provides the deal cluster view for the TUI.
package clusters

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/relay-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/relay-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/relay-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/relay-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/relay-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driving"
)

// ErrNoClusterService indicates that no cluster service was provided.
var ErrNoClusterService = errors.New("cluster service is required")

// View lists every deal that has contacts at the same company.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.ClusterList
	statusbar *status.Bar
	service   driving.ClusterService
	ctx       context.Context

	ready bool
	err   error
}

// NewView creates a new cluster view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.ClusterService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:    s,
		keymap:    km,
		list:      list.NewClusterList(s),
		statusbar: status.NewBar(s, km),
		service:   service,
		ctx:       context.Background(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the clusters.
func (v *View) Init() tea.Cmd {
	v.statusbar.SetState(status.StateLoading)
	return v.load()
}

func (v *View) load() tea.Cmd {
	service := v.service
	ctx := v.ctx
	return func() tea.Msg {
		if service == nil {
			return messages.ClustersLoaded{Err: ErrNoClusterService}
		}
		clusters, err := service.Clusters(ctx)
		return messages.ClustersLoaded{Clusters: clusters, Err: err}
	}
}

// Update handles messages for the cluster view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.ClustersLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.list.SetClusters(msg.Clusters)
		v.statusbar.SetMessage("")
		v.statusbar.SetState(status.StateClusters)
		v.statusbar.SetCount(len(msg.Clusters))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case key.Matches(msg, v.keymap.Up):
			v.list.MoveUp()
		case key.Matches(msg, v.keymap.Down):
			v.list.MoveDown()
		case key.Matches(msg, v.keymap.Refresh):
			return v, v.Init()
		}
	}
	return v, nil
}

// View renders the cluster view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("relay: clusters"), ""}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	} else {
		sections = append(sections, v.list.View())
	}
	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.ready = true
	v.list.SetDimensions(width, height-6)
	v.statusbar.SetWidth(width)
}

// Clusters returns the loaded clusters.
func (v *View) Clusters() []domain.Cluster {
	return v.list.Clusters()
}

// Selected returns the index of the selected cluster.
func (v *View) Selected() int {
	return v.list.Selected()
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
