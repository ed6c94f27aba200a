package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
)

func TestConfigValidator_ImplementsInterface(t *testing.T) {
	var _ driven.AIConfigValidator = NewConfigValidator()
}

func TestConfigValidator_Unconfigured(t *testing.T) {
	v := NewConfigValidator()

	assert.NoError(t, v.ValidateEmbedding(nil))
	assert.NoError(t, v.ValidateEmbedding(&domain.EmbeddingSettings{Model: "m"}))
	assert.NoError(t, v.ValidateLLM(nil))
	assert.NoError(t, v.ValidateLLM(&domain.LLMSettings{Model: "m"}))
}

func TestConfigValidator_PingsProviders(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	v := NewConfigValidator()

	assert.NoError(t, v.ValidateEmbedding(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama, BaseURL: server.URL,
	}))
	assert.NoError(t, v.ValidateLLM(&domain.LLMSettings{
		Provider: domain.AIProviderAnthropic, APIKey: "k", BaseURL: server.URL,
	}))
	assert.Equal(t, []string{"/api/tags", "/v1/models"}, paths)
}

func TestConfigValidator_RejectsUnusableSettings(t *testing.T) {
	v := NewConfigValidator()

	tests := []struct {
		name     string
		validate func() error
		sentinel error
	}{
		{"openai embedding without key", func() error {
			return v.ValidateEmbedding(&domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI})
		}, domain.ErrEmbeddingUnavailable},
		{"anthropic embedding", func() error {
			return v.ValidateEmbedding(&domain.EmbeddingSettings{Provider: domain.AIProviderAnthropic, APIKey: "k"})
		}, domain.ErrEmbeddingUnavailable},
		{"unknown embedding provider", func() error {
			return v.ValidateEmbedding(&domain.EmbeddingSettings{Provider: "cohere"})
		}, domain.ErrEmbeddingUnavailable},
		{"anthropic llm without key", func() error {
			return v.ValidateLLM(&domain.LLMSettings{Provider: domain.AIProviderAnthropic})
		}, domain.ErrLLMUnavailable},
		{"unknown llm provider", func() error {
			return v.ValidateLLM(&domain.LLMSettings{Provider: "cohere", APIKey: "k"})
		}, domain.ErrLLMUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}
