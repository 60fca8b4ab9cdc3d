package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driving"
	"github.com/custodia-labs/relay-cli/internal/similarity"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyDataDir          = "store.data_dir"
	KeyIngestProfile    = "ingest.profile"
	KeyIngestChannel    = "ingest.source_channel"
	KeyIngestSimilarity = "ingest.similarity"
	KeyEditThreshold    = "ingest.edit_threshold"
	KeySearchLimit      = "search.limit"
	KeyNoteDirs         = "notes.dirs"
	KeyLayoutsDir       = "layouts.dir"
	KeyLLMProvider      = "llm.provider"
	KeyLLMModel         = "llm.model"
	KeyLLMBaseURL       = "llm.base_url"
	KeyLLMAPIKey        = "llm.api_key"
	KeyLLMRPM           = "llm.requests_per_minute"
	KeyAnswerTopK       = "answer.top_k"
)

// keyKind is how a settable key's string value is parsed.
type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindList
)

var settableKeys = map[string]keyKind{
	KeyDataDir:          kindString,
	KeyIngestProfile:    kindString,
	KeyIngestChannel:    kindString,
	KeyIngestSimilarity: kindString,
	KeyEditThreshold:    kindInt,
	KeySearchLimit:      kindInt,
	KeyNoteDirs:         kindList,
	KeyLayoutsDir:       kindString,
	KeyLLMProvider:      kindString,
	KeyLLMModel:         kindString,
	KeyLLMBaseURL:       kindString,
	KeyLLMAPIKey:        kindString,
	KeyLLMRPM:           kindInt,
	KeyAnswerTopK:       kindInt,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore  driven.ConfigStore
	llmValidator driven.LLMValidator
	getenv       func(string) string
}

// NewSettingsService creates a new settings service.
// The llmValidator parameter is optional (can be nil).
func NewSettingsService(configStore driven.ConfigStore, llmValidator driven.LLMValidator) *SettingsService {
	return &SettingsService{
		configStore:  configStore,
		llmValidator: llmValidator,
		getenv:       os.Getenv,
	}
}

// Get retrieves current application settings.
// An unset API key is read from the provider's environment variable.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Ingest: domain.IngestSettings{
			Profile:       s.getString(KeyIngestProfile, defaults.Ingest.Profile),
			SourceChannel: s.configStore.GetString(KeyIngestChannel),
			Similarity:    s.getString(KeyIngestSimilarity, defaults.Ingest.Similarity),
			EditThreshold: s.getInt(KeyEditThreshold, defaults.Ingest.EditThreshold),
		},
		Search: domain.SearchSettings{
			Limit: s.getInt(KeySearchLimit, defaults.Search.Limit),
		},
		Answer: domain.AnswerSettings{
			TopK: s.getInt(KeyAnswerTopK, defaults.Answer.TopK),
		},
		LLM: domain.LLMSettings{
			Provider:          s.getProvider(KeyLLMProvider, defaults.LLM.Provider),
			Model:             s.configStore.GetString(KeyLLMModel),
			BaseURL:           s.configStore.GetString(KeyLLMBaseURL), // Empty is valid for cloud providers
			APIKey:            s.configStore.GetString(KeyLLMAPIKey),
			RequestsPerMinute: s.getInt(KeyLLMRPM, defaults.LLM.RequestsPerMinute),
		},
		NoteDirs:   s.configStore.GetStringSlice(KeyNoteDirs),
		LayoutsDir: s.configStore.GetString(KeyLayoutsDir),
	}

	if settings.LLM.APIKey == "" {
		if env := settings.LLM.Provider.APIKeyEnv(); env != "" {
			settings.LLM.APIKey = s.getenv(env)
		}
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyIngestProfile, settings.Ingest.Profile},
		{KeyIngestChannel, settings.Ingest.SourceChannel},
		{KeyIngestSimilarity, settings.Ingest.Similarity},
		{KeyEditThreshold, settings.Ingest.EditThreshold},
		{KeySearchLimit, settings.Search.Limit},
		{KeyAnswerTopK, settings.Answer.TopK},
		{KeyLLMProvider, settings.LLM.Provider.String()},
		{KeyLLMModel, settings.LLM.Model},
		{KeyLLMBaseURL, settings.LLM.BaseURL},
		{KeyLLMRPM, settings.LLM.RequestsPerMinute},
		{KeyNoteDirs, settings.NoteDirs},
		{KeyLayoutsDir, settings.LayoutsDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// An env-provided key is never written to disk.
	if settings.LLM.APIKey != "" && settings.LLM.APIKey != s.envAPIKey(settings.LLM.Provider) {
		if err := s.configStore.Set(KeyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", KeyLLMAPIKey, err)
		}
	}

	return s.configStore.Save()
}

// Set updates a single setting by its config key and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindList:
		parsed = splitList(value)
	default:
		parsed = strings.TrimSpace(value)
	}

	if err := s.checkValue(key, parsed); err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return s.configStore.Save()
}

// Keys lists the settable config keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	// Validate API key if required
	if apiKey == "" {
		apiKey = s.envAPIKey(provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !similarity.DefaultRegistry().Has(settings.Ingest.Similarity) {
		return fmt.Errorf("%w: similarity strategy %q", domain.ErrUnsupportedType, settings.Ingest.Similarity)
	}
	if settings.LLM.Provider != "" && !settings.LLM.IsConfigured() {
		return fmt.Errorf("LLM provider %s is not fully configured: set %s or %s",
			settings.LLM.Provider, KeyLLMAPIKey, settings.LLM.Provider.APIKeyEnv())
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.llmValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.llmValidator.ValidateLLM(&settings.LLM)
}

// checkValue rejects values the rest of the application cannot use.
func (s *SettingsService) checkValue(key string, value any) error {
	switch key {
	case KeyIngestSimilarity:
		name, _ := value.(string)
		if !similarity.DefaultRegistry().Has(name) {
			return fmt.Errorf("%w: similarity strategy %q", domain.ErrUnsupportedType, name)
		}
	case KeyLLMProvider:
		name, _ := value.(string)
		if name != "" && !domain.AIProvider(name).IsValid() {
			return fmt.Errorf("invalid LLM provider: %s", name)
		}
	}
	return nil
}

func (s *SettingsService) envAPIKey(provider domain.AIProvider) string {
	if env := provider.APIKeyEnv(); env != "" {
		return s.getenv(env)
	}
	return ""
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

// splitList parses a comma-separated list, dropping empty items.
func splitList(value string) []string {
	out := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
