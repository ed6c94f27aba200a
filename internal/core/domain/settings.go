package domain

import (
	"path/filepath"
	"time"
)

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
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

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Timeout bounds each embedding request.
	Timeout time.Duration
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if e.Provider != AIProviderOllama && e.Provider != AIProviderOpenAI {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds decision/interpretation model configuration.
type LLMSettings struct {
	// Provider is the LLM service provider. Empty disables LLM features.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// Timeout bounds each generation request.
	Timeout time.Duration
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

// StoreSettings locates the vector database.
type StoreSettings struct {
	// Path is the SQLite database file.
	Path string
}

// IndexSettings configures the indexer.
type IndexSettings struct {
	// Roots are the directories walked by a full index run.
	Roots []string

	// Exclude holds doublestar glob patterns matched against absolute paths.
	Exclude []string

	// RateLimit caps embedding calls per second during indexing. Zero disables it.
	RateLimit float64
}

// ResolverSettings holds the ambiguity thresholds.
type ResolverSettings struct {
	// Enabled turns the second-stage decision call on or off.
	Enabled bool

	// AmbiguityCeiling is the best score below which a match may be ambiguous.
	AmbiguityCeiling float64

	// MinGap is the best-minus-second gap below which a match is ambiguous.
	MinGap float64

	// MinConfidence is the lowest decision confidence accepted.
	MinConfidence float64
}

// IsAmbiguous reports whether the top two scores are too close to trust.
func (r ResolverSettings) IsAmbiguous(best, second float64) bool {
	return best < r.AmbiguityCeiling && (best-second) < r.MinGap
}

// SearchSettings configures the search orchestrator.
type SearchSettings struct {
	// Candidates is how many ranked entries are exposed as candidates.
	Candidates int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Store     StoreSettings
	Index     IndexSettings
	Resolver  ResolverSettings
	Search    SearchSettings
}

// Default resolver thresholds.
const (
	DefaultAmbiguityCeiling = 0.75
	DefaultMinGap           = 0.08
	DefaultMinConfidence    = 0.7
	DefaultCandidates       = 10
)

// DefaultAppSettings returns settings with sensible defaults rooted at home.
// Both models default to a local Ollama instance.
func DefaultAppSettings(home string) AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    DefaultEmbeddingModels()[AIProviderOllama],
			BaseURL:  "http://localhost:11434",
			Timeout:  30 * time.Second,
		},
		LLM: LLMSettings{
			Provider: AIProviderOllama,
			Model:    DefaultLLMModels()[AIProviderOllama],
			BaseURL:  "http://localhost:11434",
			Timeout:  120 * time.Second,
		},
		Store: StoreSettings{
			Path: filepath.Join(home, ".meow", "data", "meow_vectors.db"),
		},
		Index: IndexSettings{
			Roots: DefaultIndexRoots(home),
		},
		Resolver: ResolverSettings{
			Enabled:          true,
			AmbiguityCeiling: DefaultAmbiguityCeiling,
			MinGap:           DefaultMinGap,
			MinConfidence:    DefaultMinConfidence,
		},
		Search: SearchSettings{
			Candidates: DefaultCandidates,
		},
	}
}

// DefaultIndexRoots returns the well-known folders indexed when none are configured.
// Roots that do not exist are skipped by the indexer.
func DefaultIndexRoots(home string) []string {
	return []string{
		filepath.Join(home, "Downloads"),
		filepath.Join(home, "Pictures"),
		filepath.Join(home, "OneDrive", "Pictures"),
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
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

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2:3b",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-haiku-latest",
	}
}
