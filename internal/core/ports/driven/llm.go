// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// LLMService answers grounded questions. It is optional: when no provider is
// configured the service is nil, "ask" reports domain.ErrLLMUnavailable and
// retrieval is unaffected. Adapters exist for Ollama, OpenAI-compatible APIs
// and Anthropic.
type LLMService interface {
	// Chat sends a conversation and returns the assistant reply.
	// A leading "system" message carries the instructions.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	ModelName() string

	// Ping makes the cheapest authenticated request the provider offers.
	Ping(ctx context.Context) error

	Close() error
}

// ChatMessage is one turn. Role is "system", "user" or "assistant".
type ChatMessage struct {
	Role    string
	Content string
}

// ChatOptions bounds a reply. Zero values leave the provider default.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
}

// LLMValidator checks LLM settings against the live provider.
// Used by "settings validate".
type LLMValidator interface {
	// ValidateLLM pings the configured provider. Unconfigured settings pass.
	ValidateLLM(config *domain.LLMSettings) error
}
