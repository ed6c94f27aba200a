package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
	"github.com/custodia-labs/meow/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedAPIKey      = "embedding.api_key"
	keyEmbedTimeout     = "embedding.timeout_seconds"
	keyLLMProvider      = "llm.provider"
	keyLLMModel         = "llm.model"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
	keyLLMTimeout       = "llm.timeout_seconds"
	keyStorePath        = "store.path"
	keyIndexRoots       = "index.roots"
	keyIndexExclude     = "index.exclude"
	keyIndexRateLimit   = "index.rate_limit"
	keyResolverEnabled  = "resolver.enabled"
	keyResolverCeiling  = "resolver.ambiguity_ceiling"
	keyResolverMinGap   = "resolver.min_gap"
	keyResolverMinConf  = "resolver.min_confidence"
	keySearchCandidates = "search.candidates"
)

// providerNone disables the LLM.
const providerNone = "none"

// settingField describes how one key is read from and written to settings.
type settingField struct {
	get   func(*domain.AppSettings) string
	parse func(string) (any, error)
}

var settingFields = map[string]settingField{
	keyEmbedProvider: {
		get:   func(s *domain.AppSettings) string { return s.Embedding.Provider.String() },
		parse: parseEmbeddingProvider,
	},
	keyEmbedModel: {
		get:   func(s *domain.AppSettings) string { return s.Embedding.Model },
		parse: parseString,
	},
	keyEmbedBaseURL: {
		get:   func(s *domain.AppSettings) string { return s.Embedding.BaseURL },
		parse: parseString,
	},
	keyEmbedAPIKey: {
		get:   func(s *domain.AppSettings) string { return maskSecret(s.Embedding.APIKey) },
		parse: parseString,
	},
	keyEmbedTimeout: {
		get:   func(s *domain.AppSettings) string { return formatSeconds(s.Embedding.Timeout) },
		parse: parsePositiveInt,
	},
	keyLLMProvider: {
		get: func(s *domain.AppSettings) string {
			if s.LLM.Provider == "" {
				return providerNone
			}
			return s.LLM.Provider.String()
		},
		parse: parseLLMProvider,
	},
	keyLLMModel: {
		get:   func(s *domain.AppSettings) string { return s.LLM.Model },
		parse: parseString,
	},
	keyLLMBaseURL: {
		get:   func(s *domain.AppSettings) string { return s.LLM.BaseURL },
		parse: parseString,
	},
	keyLLMAPIKey: {
		get:   func(s *domain.AppSettings) string { return maskSecret(s.LLM.APIKey) },
		parse: parseString,
	},
	keyLLMTimeout: {
		get:   func(s *domain.AppSettings) string { return formatSeconds(s.LLM.Timeout) },
		parse: parsePositiveInt,
	},
	keyStorePath: {
		get:   func(s *domain.AppSettings) string { return s.Store.Path },
		parse: parseString,
	},
	keyIndexRoots: {
		get:   func(s *domain.AppSettings) string { return strings.Join(s.Index.Roots, ",") },
		parse: parseList,
	},
	keyIndexExclude: {
		get:   func(s *domain.AppSettings) string { return strings.Join(s.Index.Exclude, ",") },
		parse: parseList,
	},
	keyIndexRateLimit: {
		get:   func(s *domain.AppSettings) string { return formatFloat(s.Index.RateLimit) },
		parse: parseNonNegativeFloat,
	},
	keyResolverEnabled: {
		get:   func(s *domain.AppSettings) string { return strconv.FormatBool(s.Resolver.Enabled) },
		parse: parseBool,
	},
	keyResolverCeiling: {
		get:   func(s *domain.AppSettings) string { return formatFloat(s.Resolver.AmbiguityCeiling) },
		parse: parseUnitFloat,
	},
	keyResolverMinGap: {
		get:   func(s *domain.AppSettings) string { return formatFloat(s.Resolver.MinGap) },
		parse: parseUnitFloat,
	},
	keyResolverMinConf: {
		get:   func(s *domain.AppSettings) string { return formatFloat(s.Resolver.MinConfidence) },
		parse: parseUnitFloat,
	},
	keySearchCandidates: {
		get:   func(s *domain.AppSettings) string { return strconv.Itoa(s.Search.Candidates) },
		parse: parsePositiveInt,
	},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	home        string
}

// NewSettingsService creates a new settings service.
// home anchors default paths and "~" expansion. aiValidator may be nil.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator, home string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		home:        home,
	}
}

// Get returns defaults overlaid with every key present in the config file.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings(s.home)

	if v, ok := s.lookupString(keyEmbedProvider); ok {
		settings.Embedding.Provider = domain.AIProvider(v)
	}
	if v, ok := s.lookupString(keyEmbedModel); ok {
		settings.Embedding.Model = v
	}
	if v, ok := s.lookupString(keyEmbedBaseURL); ok {
		settings.Embedding.BaseURL = v
	}
	settings.Embedding.APIKey = s.configStore.GetString(keyEmbedAPIKey)
	if v, ok := s.lookupSeconds(keyEmbedTimeout); ok {
		settings.Embedding.Timeout = v
	}

	if v, ok := s.lookupString(keyLLMProvider); ok {
		if v == providerNone {
			v = ""
		}
		settings.LLM.Provider = domain.AIProvider(v)
	}
	if v, ok := s.lookupString(keyLLMModel); ok {
		settings.LLM.Model = v
	}
	if v, ok := s.lookupString(keyLLMBaseURL); ok {
		settings.LLM.BaseURL = v
	}
	settings.LLM.APIKey = s.configStore.GetString(keyLLMAPIKey)
	if v, ok := s.lookupSeconds(keyLLMTimeout); ok {
		settings.LLM.Timeout = v
	}

	if v, ok := s.lookupString(keyStorePath); ok {
		settings.Store.Path = s.expandHome(v)
	}
	if _, ok := s.configStore.Get(keyIndexRoots); ok {
		roots := s.configStore.GetStringSlice(keyIndexRoots)
		for i := range roots {
			roots[i] = s.expandHome(roots[i])
		}
		settings.Index.Roots = roots
	}
	if _, ok := s.configStore.Get(keyIndexExclude); ok {
		settings.Index.Exclude = s.configStore.GetStringSlice(keyIndexExclude)
	}
	if _, ok := s.configStore.Get(keyIndexRateLimit); ok {
		settings.Index.RateLimit = s.configStore.GetFloat(keyIndexRateLimit)
	}

	if _, ok := s.configStore.Get(keyResolverEnabled); ok {
		settings.Resolver.Enabled = s.configStore.GetBool(keyResolverEnabled)
	}
	if _, ok := s.configStore.Get(keyResolverCeiling); ok {
		settings.Resolver.AmbiguityCeiling = s.configStore.GetFloat(keyResolverCeiling)
	}
	if _, ok := s.configStore.Get(keyResolverMinGap); ok {
		settings.Resolver.MinGap = s.configStore.GetFloat(keyResolverMinGap)
	}
	if _, ok := s.configStore.Get(keyResolverMinConf); ok {
		settings.Resolver.MinConfidence = s.configStore.GetFloat(keyResolverMinConf)
	}
	if v := s.configStore.GetInt(keySearchCandidates); v > 0 {
		settings.Search.Candidates = v
	}

	return &settings, nil
}

// GetValue returns the effective value of a known key. API keys are masked.
func (s *SettingsService) GetValue(key string) (string, error) {
	field, ok := settingFields[key]
	if !ok {
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	return field.get(settings), nil
}

// SetValue parses value for key and persists it.
func (s *SettingsService) SetValue(key, value string) error {
	field, ok := settingFields[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	parsed, err := field.parse(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists every settable key in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingFields))
	for k := range settingFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings(s.home)
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

func (s *SettingsService) lookupString(key string) (string, bool) {
	v := strings.TrimSpace(s.configStore.GetString(key))
	return v, v != ""
}

func (s *SettingsService) lookupSeconds(key string) (time.Duration, bool) {
	v := s.configStore.GetInt(key)
	return time.Duration(v) * time.Second, v > 0
}

// expandHome replaces a leading "~" with the home directory.
func (s *SettingsService) expandHome(p string) string {
	if p == "~" {
		return s.home
	}
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~"+string(os.PathSeparator)) {
		return filepath.Join(s.home, p[2:])
	}
	return p
}

func parseString(v string) (any, error) {
	return v, nil
}

func parseEmbeddingProvider(v string) (any, error) {
	p := domain.AIProvider(strings.ToLower(v))
	for _, allowed := range domain.AllEmbeddingProviders() {
		if p == allowed {
			return p.String(), nil
		}
	}
	return nil, fmt.Errorf("provider %q does not support embeddings", v)
}

func parseLLMProvider(v string) (any, error) {
	v = strings.ToLower(v)
	if v == providerNone {
		return v, nil
	}
	if !domain.AIProvider(v).IsValid() {
		return nil, fmt.Errorf("unknown provider %q", v)
	}
	return v, nil
}

func parsePositiveInt(v string) (any, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("want a positive integer, got %q", v)
	}
	return n, nil
}

func parseNonNegativeFloat(v string) (any, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return nil, fmt.Errorf("want a non-negative number, got %q", v)
	}
	return f, nil
}

func parseUnitFloat(v string) (any, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 1 {
		return nil, fmt.Errorf("want a number between 0 and 1, got %q", v)
	}
	return f, nil
}

func parseBool(v string) (any, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("want true or false, got %q", v)
	}
	return b, nil
}

// parseList splits a comma-separated list, dropping blanks.
func parseList(v string) (any, error) {
	items := []string{}
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items, nil
}

func formatSeconds(d time.Duration) string {
	return strconv.Itoa(int(d / time.Second))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// maskSecret hides all but the last four characters.
func maskSecret(v string) string {
	if v == "" {
		return ""
	}
	if len(v) <= 4 {
		return "****"
	}
	return "****" + v[len(v)-4:]
}
