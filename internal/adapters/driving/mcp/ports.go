package mcp

import (
	"github.com/custodia-labs/relay-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval ranks records and notes against a query.
	Retrieval driving.RetrievalService

	// Clusters groups deals with contacts at the same company.
	Clusters driving.ClusterService

	// Ingest extracts records from pasted text. Optional; the ingest tool is omitted without it.
	Ingest driving.IngestService

	// Answer asks the LLM. Optional; the ask tool is omitted without it.
	Answer driving.AnswerService

	// Records lists stored contacts and deals for resources.
	Records driving.RecordService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
