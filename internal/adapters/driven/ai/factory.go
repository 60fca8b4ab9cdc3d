// Package ai builds the configured LLM adapter.
package ai

import (
	"fmt"

	anthropicllm "github.com/custodia-labs/relay-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/relay-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/relay-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/relay-cli/internal/adapters/driven/llm/ratelimit"
	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
)

type constructor func(*domain.LLMSettings) (driven.LLMService, error)

var constructors = map[domain.AIProvider]constructor{
	domain.AIProviderOllama: func(s *domain.LLMSettings) (driven.LLMService, error) {
		return ollamallm.NewLLMService(ollamallm.LLMConfig{BaseURL: s.BaseURL, Model: s.Model}), nil
	},
	domain.AIProviderOpenAI: func(s *domain.LLMSettings) (driven.LLMService, error) {
		return openaillm.NewLLMService(openaillm.LLMConfig{APIKey: s.APIKey, BaseURL: s.BaseURL, Model: s.Model})
	},
	domain.AIProviderAnthropic: func(s *domain.LLMSettings) (driven.LLMService, error) {
		return anthropicllm.NewLLMService(anthropicllm.Config{APIKey: s.APIKey, BaseURL: s.BaseURL, Model: s.Model})
	},
}

// CreateLLMService builds the provider adapter behind a client-side rate limiter.
// It returns nil, nil when no provider is configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	build, ok := constructors[settings.Provider]
	if !ok {
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
	svc, err := build(settings)
	if err != nil {
		return nil, err
	}
	return ratelimit.Wrap(svc, settings.RequestsPerMinute), nil
}
