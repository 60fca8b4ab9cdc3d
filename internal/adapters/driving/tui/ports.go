// Package tui provides an interactive terminal user interface for relay.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/relay-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI uses.
type Ports struct {
	// Retrieval ranks stored records against a query.
	Retrieval driving.RetrievalService

	// Clusters groups deals with contacts at the same company.
	Clusters driving.ClusterService

	// SearchLimit caps results per query. Zero means no limit.
	SearchLimit int
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(retrieval driving.RetrievalService, clusters driving.ClusterService) *Ports {
	return &Ports{
		Retrieval: retrieval,
		Clusters:  clusters,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	if p.Clusters == nil {
		return ErrMissingClusterService
	}
	return nil
}
