package domain

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// APIKeyEnv returns the environment variable consulted when no key is configured.
func (p AIProvider) APIKeyEnv() string {
	switch p {
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// RequestsPerMinute caps outgoing LLM calls. Zero disables the limit.
	RequestsPerMinute int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// IngestSettings holds ingestion defaults.
type IngestSettings struct {
	// Profile is the default layout profile, usually ProfileAuto.
	Profile string

	// SourceChannel overrides the profile's channel tag when set.
	SourceChannel string

	// Similarity is the duplicate-name strategy.
	Similarity string

	// EditThreshold is the maximum edit distance for the "edit" strategy.
	EditThreshold int
}

// SearchSettings holds retrieval defaults.
type SearchSettings struct {
	// Limit is the default number of results shown.
	Limit int
}

// AnswerSettings holds question-answering defaults.
type AnswerSettings struct {
	// TopK is the number of retrieved entries sent to the LLM.
	TopK int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Ingest holds ingestion defaults.
	Ingest IngestSettings

	// Search holds retrieval defaults.
	Search SearchSettings

	// Answer holds question-answering defaults.
	Answer AnswerSettings

	// LLM holds LLM provider settings.
	LLM LLMSettings

	// NoteDirs are directories of .md and .txt notes added to the corpus.
	NoteDirs []string

	// LayoutsDir holds user layout profiles as YAML files.
	LayoutsDir string
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; only "ask" needs it.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Ingest: IngestSettings{
			Profile:       ProfileAuto,
			Similarity:    "exact",
			EditThreshold: 2,
		},
		Search: SearchSettings{
			Limit: 20,
		},
		Answer: AnswerSettings{
			TopK: 5,
		},
		LLM: LLMSettings{
			RequestsPerMinute: 30,
		},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}
