package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/relay-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

func newTestSettingsService(env map[string]string) (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)
	service.getenv = func(key string) string { return env[key] }
	return service, store
}

func TestNewSettingsService(t *testing.T) {
	service, _ := newTestSettingsService(nil)
	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Ingest, settings.Ingest)
	assert.Equal(t, defaults.Search, settings.Search)
	assert.Equal(t, defaults.Answer, settings.Answer)
	assert.Equal(t, defaults.LLM.RequestsPerMinute, settings.LLM.RequestsPerMinute)
	assert.False(t, settings.LLM.IsConfigured())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	service, store := newTestSettingsService(nil)
	_ = store.Set(KeyIngestSimilarity, "fold")
	_ = store.Set(KeySearchLimit, 50)
	_ = store.Set(KeyNoteDirs, []any{"~/notes", "/tmp/inbox"})
	_ = store.Set(KeyLLMProvider, "openai")
	_ = store.Set(KeyLLMAPIKey, "sk-stored")

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "fold", settings.Ingest.Similarity)
	assert.Equal(t, 50, settings.Search.Limit)
	assert.Equal(t, []string{"~/notes", "/tmp/inbox"}, settings.NoteDirs)
	assert.Equal(t, domain.AIProviderOpenAI, settings.LLM.Provider)
	assert.Equal(t, "sk-stored", settings.LLM.APIKey)
}

func TestSettingsService_Get_InvalidProviderFallsBack(t *testing.T) {
	service, store := newTestSettingsService(nil)
	_ = store.Set(KeyLLMProvider, "invalid_provider")

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings().LLM.Provider, settings.LLM.Provider)
}

func TestSettingsService_Get_APIKeyFromEnv(t *testing.T) {
	service, store := newTestSettingsService(map[string]string{"ANTHROPIC_API_KEY": "sk-env"})
	_ = store.Set(KeyLLMProvider, "anthropic")

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "sk-env", settings.LLM.APIKey)
	assert.True(t, settings.LLM.IsConfigured())

	// A configured key wins over the environment.
	_ = store.Set(KeyLLMAPIKey, "sk-config")
	settings, err = service.Get()
	require.NoError(t, err)
	assert.Equal(t, "sk-config", settings.LLM.APIKey)
}

func TestSettingsService_Save(t *testing.T) {
	service, store := newTestSettingsService(nil)

	settings := domain.DefaultAppSettings()
	settings.Search.Limit = 7
	settings.NoteDirs = []string{"/notes"}
	settings.LLM = domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "llama3.2"}

	require.NoError(t, service.Save(&settings))
	assert.Equal(t, 7, store.GetInt(KeySearchLimit))
	assert.Equal(t, []string{"/notes"}, store.GetStringSlice(KeyNoteDirs))
	assert.Equal(t, "ollama", store.GetString(KeyLLMProvider))

	_, exists := store.Get(KeyLLMAPIKey)
	assert.False(t, exists)
}

func TestSettingsService_Save_DoesNotPersistEnvKey(t *testing.T) {
	service, store := newTestSettingsService(map[string]string{"OPENAI_API_KEY": "sk-env"})
	_ = store.Set(KeyLLMProvider, "openai")

	settings, err := service.Get()
	require.NoError(t, err)
	require.NoError(t, service.Save(settings))

	_, exists := store.Get(KeyLLMAPIKey)
	assert.False(t, exists)
}

func TestSettingsService_Set(t *testing.T) {
	service, store := newTestSettingsService(nil)

	require.NoError(t, service.Set(KeySearchLimit, " 15 "))
	assert.Equal(t, 15, store.GetInt(KeySearchLimit))

	require.NoError(t, service.Set(KeyNoteDirs, "~/notes, ,/tmp/inbox"))
	assert.Equal(t, []string{"~/notes", "/tmp/inbox"}, store.GetStringSlice(KeyNoteDirs))

	require.NoError(t, service.Set(KeyIngestSimilarity, "edit"))
	assert.Equal(t, "edit", store.GetString(KeyIngestSimilarity))

	require.NoError(t, service.Set(KeyLLMProvider, "ollama"))
}

func TestSettingsService_Set_Errors(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	tests := []struct {
		name  string
		key   string
		value string
		err   error
	}{
		{"unknown key", "search.mode", "hybrid", domain.ErrInvalidInput},
		{"not a number", KeySearchLimit, "many", domain.ErrInvalidInput},
		{"negative", KeyAnswerTopK, "-1", domain.ErrInvalidInput},
		{"unknown strategy", KeyIngestSimilarity, "soundex", domain.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Set(tt.key, tt.value)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err))
		})
	}

	assert.Error(t, service.Set(KeyLLMProvider, "gemini"))
}

func TestSettingsService_Keys(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	keys := service.Keys()
	assert.Contains(t, keys, KeySearchLimit)
	assert.Contains(t, keys, KeyLLMAPIKey)
	assert.IsIncreasing(t, keys)
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider domain.AIProvider
		model    string
		apiKey   string
		wantErr  bool
		wantURL  string
		wantMod  string
	}{
		{"ollama default model", domain.AIProviderOllama, "", "", false, "http://localhost:11434", "llama3.2"},
		{"openai with key", domain.AIProviderOpenAI, "gpt-4o", "sk-test", false, "", "gpt-4o"},
		{"anthropic without key", domain.AIProviderAnthropic, "", "", true, "", ""},
		{"invalid provider", domain.AIProvider("gemini"), "", "", true, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestSettingsService(nil)

			err := service.SetLLMProvider(tt.provider, tt.model, tt.apiKey)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			settings, err := service.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.provider, settings.LLM.Provider)
			assert.Equal(t, tt.wantMod, settings.LLM.Model)
			assert.Equal(t, tt.wantURL, settings.LLM.BaseURL)
			assert.Equal(t, tt.apiKey, settings.LLM.APIKey)
		})
	}
}

func TestSettingsService_SetLLMProvider_KeyFromEnv(t *testing.T) {
	service, store := newTestSettingsService(map[string]string{"ANTHROPIC_API_KEY": "sk-env"})

	require.NoError(t, service.SetLLMProvider(domain.AIProviderAnthropic, "", ""))
	assert.Equal(t, "anthropic", store.GetString(KeyLLMProvider))
	_, exists := store.Get(KeyLLMAPIKey)
	assert.False(t, exists)
}

func TestSettingsService_Validate(t *testing.T) {
	service, store := newTestSettingsService(nil)
	require.NoError(t, service.Validate())

	_ = store.Set(KeyLLMProvider, "openai")
	assert.Error(t, service.Validate())

	_ = store.Set(KeyLLMAPIKey, "sk-test")
	assert.NoError(t, service.Validate())

	_ = store.Set(KeyIngestSimilarity, "soundex")
	assert.ErrorIs(t, service.Validate(), domain.ErrUnsupportedType)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service, _ := newTestSettingsService(nil)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingsService_ValidateLLMConfig(t *testing.T) {
	service, _ := newTestSettingsService(nil)
	assert.NoError(t, service.ValidateLLMConfig())

	validator := &mockLLMValidator{err: errors.New("unreachable")}
	service.llmValidator = validator
	assert.Error(t, service.ValidateLLMConfig())
	assert.True(t, validator.called)
}
