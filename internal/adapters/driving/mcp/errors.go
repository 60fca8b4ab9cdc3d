// Package mcp provides an MCP (Model Context Protocol) server adapter for Relay.
// It lets AI assistants search, cluster and add to the user's contacts and deals.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
