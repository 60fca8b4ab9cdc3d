package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	// Stores return it when a contact name is already taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown similarity strategy or record kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnknownProfile indicates a layout profile name that is neither builtin nor loaded from disk.
	ErrUnknownProfile = errors.New("unknown layout profile")

	// ErrStoreUnavailable indicates the record store could not be reached.
	// Ingestion treats it as fatal for the batch.
	ErrStoreUnavailable = errors.New("record store unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Question answering is disabled; search and clustering still work.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the client-side LLM rate limit could not be satisfied.
	ErrRateLimited = errors.New("rate limited")
)
