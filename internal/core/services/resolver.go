package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
	"github.com/custodia-labs/meow/internal/logger"
)

// Ensure AmbiguityResolver can take custom prompts.
var _ driven.PromptStoreAware = (*AmbiguityResolver)(nil)

// decisionTemperature keeps the decision model close to deterministic.
const decisionTemperature = 0.1

// Resolver outcomes reported to metrics.
const (
	decisionPicked   = "picked"
	decisionRejected = "rejected"
	decisionError    = "error"
)

// DefaultDecidePrompt is the fallback prompt when no PromptStore is configured.
// The first %s is the user query, the second the numbered candidate lines.
const DefaultDecidePrompt = `User query: "%s"

Choose the SINGLE best matching file from the candidates below.
If you're not sure, choose null.
You MUST choose only from the given indices. Do NOT invent paths.
Reply ONLY in valid JSON with keys: choice, confidence.
Example: {"choice": 2, "confidence": 0.82} or {"choice": null, "confidence": 0.3}

Candidates:
%s`

// decision is the reply expected from the decision model.
// Choice is a float so that "2.0" is accepted as index 2.
type decision struct {
	Choice     *float64 `json:"choice"`
	Confidence float64  `json:"confidence"`
}

// AmbiguityResolver asks a second model to break near-ties between the top
// ranked candidates. It never fails a search: every error or guardrail miss
// degrades to "no winner".
type AmbiguityResolver struct {
	llm         driven.LLMService
	settings    domain.ResolverSettings
	promptStore driven.PromptStore
	metrics     driven.SearchMetrics
}

// NewAmbiguityResolver creates a resolver. llm may be nil, in which case
// Resolve always reports no winner.
func NewAmbiguityResolver(llm driven.LLMService, settings domain.ResolverSettings) *AmbiguityResolver {
	return &AmbiguityResolver{
		llm:      llm,
		settings: settings,
	}
}

// SetPromptStore sets the prompt store for loading a customised decision prompt.
func (r *AmbiguityResolver) SetPromptStore(store driven.PromptStore) {
	r.promptStore = store
}

// SetMetrics sets the recorder for resolver outcomes.
func (r *AmbiguityResolver) SetMetrics(m driven.SearchMetrics) {
	r.metrics = m
}

// Enabled reports whether Resolve can ever pick a winner.
func (r *AmbiguityResolver) Enabled() bool {
	return r.llm != nil && r.settings.Enabled
}

// IsAmbiguous reports whether the top two candidates are too close to trust.
// Fewer than two candidates are never ambiguous.
func (r *AmbiguityResolver) IsAmbiguous(candidates []domain.Candidate) bool {
	if len(candidates) < 2 {
		return false
	}
	return r.settings.IsAmbiguous(candidates[0].Score, candidates[1].Score)
}

// Resolve asks the decision model to pick one of candidates for query.
// It returns the 1-based rank of the winner, or 0 when there is none.
func (r *AmbiguityResolver) Resolve(ctx context.Context, query string, candidates []domain.Candidate) int {
	if !r.Enabled() || len(candidates) < 2 {
		return 0
	}

	logger.Section("Ambiguity Resolution")
	prompt := r.buildPrompt(query, candidates)
	logger.Debug("Decision prompt:\n%s", prompt)

	raw, err := r.llm.Generate(ctx, prompt, driven.GenerateOptions{
		Temperature: decisionTemperature,
	})
	if err != nil {
		logger.Info("Decision unavailable: %v", fmt.Errorf("%w: %w", domain.ErrDecision, err))
		r.observe(decisionError)
		return 0
	}
	logger.Debug("Decision reply: %q", raw)

	d, err := parseDecision(raw)
	if err != nil {
		logger.Info("Decision unusable: %v", err)
		r.observe(decisionError)
		return 0
	}

	choice, ok := r.accept(d, len(candidates))
	if !ok {
		logger.Info("Decision rejected by guardrails: choice=%v confidence=%.2f", formatChoice(d.Choice), d.Confidence)
		r.observe(decisionRejected)
		return 0
	}

	logger.Info("Decision picked candidate %d (confidence %.2f)", choice, d.Confidence)
	r.observe(decisionPicked)
	return choice
}

// accept applies the guardrails: enough confidence and an offered index.
func (r *AmbiguityResolver) accept(d decision, n int) (int, bool) {
	if d.Confidence < r.settings.MinConfidence {
		return 0, false
	}
	if d.Choice == nil {
		return 0, false
	}
	c := *d.Choice
	if c != math.Trunc(c) || c < 1 || c > float64(n) {
		return 0, false
	}
	return int(c), true
}

// buildPrompt renders the decision prompt for candidates.
func (r *AmbiguityResolver) buildPrompt(query string, candidates []domain.Candidate) string {
	lines := make([]string, len(candidates))
	for i, c := range candidates {
		lines[i] = fmt.Sprintf("%d. %s (ext=%s, folder=%s, score=%.4f)",
			c.Rank, c.FileName, c.Ext, c.Folder, c.Score)
	}
	return fmt.Sprintf(r.loadPrompt(), query, strings.Join(lines, "\n"))
}

// loadPrompt loads the decision prompt, falling back to the default.
func (r *AmbiguityResolver) loadPrompt() string {
	if r.promptStore == nil {
		return DefaultDecidePrompt
	}
	prompt, err := r.promptStore.Load(driven.PromptDecide)
	if err != nil || strings.Count(prompt, "%s") != 2 {
		return DefaultDecidePrompt
	}
	return prompt
}

func (r *AmbiguityResolver) observe(outcome string) {
	if r.metrics != nil {
		r.metrics.ObserveDecision(outcome)
	}
}

// parseDecision decodes the decision object embedded in a model reply.
func parseDecision(raw string) (decision, error) {
	var d decision
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &d); err != nil {
		return decision{}, fmt.Errorf("%w: decode reply: %w", domain.ErrDecision, err)
	}
	return d, nil
}

// extractJSONObject returns the span from the first '{' to the last '}',
// or the trimmed input when there is no such span.
func extractJSONObject(s string) string {
	s = strings.TrimSpace(s)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}

func formatChoice(c *float64) string {
	if c == nil {
		return "null"
	}
	return fmt.Sprintf("%g", *c)
}
