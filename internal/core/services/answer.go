package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driving"
	"github.com/custodia-labs/relay-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// DefaultTopK is the number of retrieved entries sent to the LLM when unset.
const DefaultTopK = 5

// answerOptions keeps replies short and close to the records.
var answerOptions = driven.ChatOptions{MaxTokens: 1024, Temperature: 0.2}

// AnswerService answers questions from retrieved records with an LLM.
// The LLM is treated as an opaque function of (question, context).
type AnswerService struct {
	retrieval driving.RetrievalService
	prompts   driven.PromptStore
	llm       driven.LLMService
}

// NewAnswerService creates a new answer service.
// The llm parameter is optional; without it Ask returns domain.ErrLLMUnavailable.
func NewAnswerService(
	retrieval driving.RetrievalService,
	prompts driven.PromptStore,
	llm driven.LLMService,
) *AnswerService {
	return &AnswerService{
		retrieval: retrieval,
		prompts:   prompts,
		llm:       llm,
	}
}

// Available reports whether an LLM is configured.
func (s *AnswerService) Available() bool {
	return s.llm != nil
}

// Ask retrieves context for question and asks the LLM.
func (s *AnswerService) Ask(ctx context.Context, question string, opts domain.AskOptions) (*domain.Answer, error) {
	logger.Section("Ask")

	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	retrieval, err := s.retrieval.Search(ctx, question, domain.SearchOptions{Limit: topK})
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	logger.Debug("Context: %d of %d results", len(retrieval.Results), retrieval.Total)

	system, err := s.prompts.Load(driven.PromptAnswerSystem)
	if err != nil {
		return nil, fmt.Errorf("load prompt %s: %w", driven.PromptAnswerSystem, err)
	}
	template, err := s.prompts.Load(driven.PromptAnswer)
	if err != nil {
		return nil, fmt.Errorf("load prompt %s: %w", driven.PromptAnswer, err)
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: fmt.Sprintf(template, buildContext(retrieval), question)},
	}

	logger.Info("Asking %s", s.llm.ModelName())
	text, err := s.llm.Chat(ctx, messages, answerOptions)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}

	return &domain.Answer{
		Text:    strings.TrimSpace(text),
		Sources: retrieval.Results,
		Model:   s.llm.ModelName(),
	}, nil
}

// buildContext renders retrieved entries as labelled blocks.
func buildContext(r *domain.Retrieval) string {
	if len(r.Results) == 0 {
		return "(no matching records)"
	}

	var sb strings.Builder
	for i := range r.Results {
		fmt.Fprintf(&sb, "[%d] %s\n%s\n\n", i+1, r.Results[i].SourceLabel, r.Results[i].FullContent)
	}
	for i := range r.Clusters {
		c := &r.Clusters[i]
		names := make([]string, len(c.Contacts))
		for j := range c.Contacts {
			names[j] = c.Contacts[j].Name
		}
		fmt.Fprintf(&sb, "Cluster %s: %s (%s)\n", c.Company, c.Deal.Label(), strings.Join(names, ", "))
	}
	return strings.TrimSpace(sb.String())
}
