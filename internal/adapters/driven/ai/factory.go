// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/meow/internal/adapters/driven/embedding"
	ollamaembed "github.com/custodia-labs/meow/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/meow/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/custodia-labs/meow/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/meow/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/meow/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
	"github.com/custodia-labs/meow/internal/logger"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of AI service initialisation.
type InitResult struct {
	EmbeddingService driven.EmbeddingService
	LLMService       driven.LLMService
	Warnings         []string // Non-fatal issues; the affected service is left nil.

	// IndexEmbeddingService wraps EmbeddingService with the indexing rate
	// limit. Queries use EmbeddingService directly.
	IndexEmbeddingService driven.EmbeddingService
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Init builds both AI services from settings without contacting them.
// Construction failures become warnings so that commands which need only one
// of the services keep working. IndexEmbeddingService is throttled when
// settings.Index.RateLimit is positive.
func Init(settings *domain.AppSettings) *InitResult {
	result := &InitResult{}

	emb, err := CreateEmbeddingService(&settings.Embedding)
	switch {
	case err != nil:
		result.Warnings = append(result.Warnings, fmt.Sprintf("embedding disabled: %v", err))
	case emb == nil:
		result.Warnings = append(result.Warnings, "embedding provider is not configured")
	default:
		result.EmbeddingService = emb
		result.IndexEmbeddingService = embedding.NewThrottled(emb, settings.Index.RateLimit)
	}

	llm, err := CreateLLMService(&settings.LLM)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("llm disabled: %v", err))
	} else if llm != nil {
		result.LLMService = llm
	}

	for _, w := range result.Warnings {
		logger.Warn("%s", w)
	}
	return result
}

// ValidateEmbeddingConfig checks that an embedding configuration is usable
// and that its service answers a ping. An empty provider passes; a known
// provider missing its API key or an unsupported provider fails.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	if settings == nil || settings.Provider == "" {
		return nil
	}
	switch {
	case settings.Provider == domain.AIProviderAnthropic:
		return fmt.Errorf("%w: anthropic does not support embeddings, use ollama or openai",
			domain.ErrEmbeddingUnavailable)
	case settings.Provider != domain.AIProviderOllama && settings.Provider != domain.AIProviderOpenAI:
		return fmt.Errorf("%w: unsupported embedding provider: %s", domain.ErrEmbeddingUnavailable, settings.Provider)
	case settings.Provider.RequiresAPIKey() && settings.APIKey == "":
		return fmt.Errorf("%w: %s requires embedding.api_key", domain.ErrEmbeddingUnavailable, settings.Provider)
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// ValidateLLMConfig checks that an LLM configuration is usable and that its
// service answers a ping. An empty provider (LLM disabled) passes.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil || settings.Provider == "" {
		return nil
	}
	switch {
	case !settings.Provider.IsValid():
		return fmt.Errorf("%w: unsupported LLM provider: %s", domain.ErrLLMUnavailable, settings.Provider)
	case settings.Provider.RequiresAPIKey() && settings.APIKey == "":
		return fmt.Errorf("%w: %s requires llm.api_key", domain.ErrLLMUnavailable, settings.Provider)
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateEmbeddingService creates the appropriate embedding service based on settings.
// Returns nil if the provider is not configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil {
		return nil, nil
	}
	if settings.Provider == domain.AIProviderAnthropic {
		return nil, fmt.Errorf("anthropic does not support embeddings, use ollama or openai")
	}
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.Timeout,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: cloudBaseURL(settings.BaseURL),
			Model:   settings.Model,
			Timeout: settings.Timeout,
		})

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if the provider is not configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.Timeout,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: cloudBaseURL(settings.BaseURL),
			Model:   settings.Model,
			Timeout: settings.Timeout,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: cloudBaseURL(settings.BaseURL),
			Model:   settings.Model,
			Timeout: settings.Timeout,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// cloudBaseURL drops the Ollama default so that switching provider
// without clearing base_url still reaches the cloud API.
func cloudBaseURL(u string) string {
	if u == ollamaembed.DefaultBaseURL {
		return ""
	}
	return u
}
