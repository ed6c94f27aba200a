package driving

import "github.com/custodia-labs/meow/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the effective settings: defaults overlaid with the config file.
	Get() (*domain.AppSettings, error)

	// GetValue returns the effective value of a known key as text.
	GetValue(key string) (string, error)

	// SetValue parses and persists a known key.
	// Unknown keys and malformed values return domain.ErrInvalidInput.
	SetValue(key, value string) error

	// Keys lists every settable key.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateEmbeddingConfig pings the configured embedding provider.
	ValidateEmbeddingConfig() error

	// ValidateLLMConfig pings the configured LLM provider.
	ValidateLLMConfig() error
}
