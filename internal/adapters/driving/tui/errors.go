package tui

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("tui: retrieval service is required")

// ErrMissingClusterService is returned when the cluster service is not provided.
var ErrMissingClusterService = errors.New("tui: cluster service is required")
