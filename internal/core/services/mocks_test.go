package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/relay-cli/internal/extraction"
)

var errStoreDown = errors.New("database is locked")

// staticLayouts implements driven.LayoutStore over the builtin profiles.
type staticLayouts struct {
	profiles []domain.LayoutProfile
	listErr  error
}

func newStaticLayouts() *staticLayouts {
	return &staticLayouts{profiles: extraction.Builtins()}
}

func (s *staticLayouts) List() ([]domain.LayoutProfile, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.profiles, nil
}

func (s *staticLayouts) Get(name string) (*domain.LayoutProfile, error) {
	for i := range s.profiles {
		if s.profiles[i].Name == name {
			p := s.profiles[i]
			return &p, nil
		}
	}
	return nil, domain.ErrUnknownProfile
}

// failingContactStore implements driven.ContactStore and fails every call.
type failingContactStore struct{}

func (failingContactStore) Insert(context.Context, *domain.Contact) (string, error) {
	return "", errStoreDown
}

func (failingContactStore) Get(context.Context, string) (*domain.Contact, error) {
	return nil, errStoreDown
}

func (failingContactStore) FindByCompanySubstring(context.Context, string) ([]domain.Contact, error) {
	return nil, errStoreDown
}

func (failingContactStore) All(context.Context) ([]domain.Contact, error) {
	return nil, errStoreDown
}

// failingSource implements driven.DocumentSource and always fails.
type failingSource struct{}

func (failingSource) Name() string { return "broken" }

func (failingSource) Documents(context.Context) ([]domain.Document, error) {
	return nil, errStoreDown
}

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	reply    string
	err      error
	messages []driven.ChatMessage
	opts     driven.ChatOptions
}

func (m *mockLLMService) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.messages = messages
	m.opts = opts
	return m.reply, m.err
}

func (m *mockLLMService) ModelName() string {
	return "mock-llm"
}

func (m *mockLLMService) Ping(_ context.Context) error {
	return m.err
}

func (m *mockLLMService) Close() error {
	return nil
}

// mockPromptStore implements driven.PromptStore with fixed templates.
type mockPromptStore struct {
	err error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	switch name {
	case driven.PromptAnswerSystem:
		return "system prompt", nil
	case driven.PromptAnswer:
		return "CONTEXT:\n%s\nQUESTION: %s", nil
	default:
		return "", domain.ErrNotFound
	}
}

// mockLLMValidator implements driven.LLMValidator for testing.
type mockLLMValidator struct {
	err    error
	called bool
}

func (m *mockLLMValidator) ValidateLLM(_ *domain.LLMSettings) error {
	m.called = true
	return m.err
}
