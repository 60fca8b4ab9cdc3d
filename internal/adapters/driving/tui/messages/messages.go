// Package messages holds the tea.Msg types passed between the TUI views.
package messages

import (
	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// SearchCompleted carries a retrieval, or the error that stopped it.
type SearchCompleted struct {
	Retrieval *domain.Retrieval
	Err       error
}

// ClustersLoaded carries the deal clusters, or the error that stopped them.
type ClustersLoaded struct {
	Clusters []domain.Cluster
	Err      error
}

// ErrorOccurred reports a failure outside a service call.
type ErrorOccurred struct {
	Err error
}

// ViewChanged asks the app to switch to View.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies a top-level view.
type ViewType int

const (
	ViewMenu ViewType = iota
	ViewSearch
	ViewClusters
	ViewHelp
)

var viewNames = [...]string{
	ViewMenu:     "menu",
	ViewSearch:   "search",
	ViewClusters: "clusters",
	ViewHelp:     "help",
}

func (v ViewType) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "unknown"
	}
	return viewNames[v]
}

// Title is the terminal window title while the view is active.
func (v ViewType) Title() string {
	if v == ViewMenu {
		return "relay"
	}
	return "relay: " + v.String()
}
