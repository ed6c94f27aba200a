package embedding

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/meow/internal/core/domain"
)

// ErrRateLimited marks a backend reply with HTTP status 429.
var ErrRateLimited = errors.New("embedding backend rate limited")

// vectorResponse covers both supported shapes:
//
//	{"embedding": [...]}
//	{"data": [{"embedding": [...]}]}
type vectorResponse struct {
	Embedding []float64 `json:"embedding"`
	Data      []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// DecodeVector extracts a single embedding vector from a backend reply.
// The flat shape wins when both are present. Every failure wraps
// domain.ErrEmbedding.
func DecodeVector(body []byte) ([]float32, error) {
	var resp vectorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrEmbedding, err)
	}
	if resp.Error != nil && resp.Error.Message != "" {
		return nil, fmt.Errorf("%w: backend error: %s", domain.ErrEmbedding, resp.Error.Message)
	}

	raw := resp.Embedding
	if raw == nil && len(resp.Data) > 0 {
		raw = resp.Data[0].Embedding
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: no embedding in response: %s", domain.ErrEmbedding, truncate(body, 200))
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: received empty embedding", domain.ErrEmbedding)
	}

	vec := make([]float32, len(raw))
	for i, v := range raw {
		vec[i] = float32(v)
	}
	return vec, nil
}

// StatusError builds the error for a non-200 backend reply.
func StatusError(provider string, status int, body []byte) error {
	if status == 429 {
		return fmt.Errorf("%w: %w: %s", domain.ErrEmbedding, ErrRateLimited, truncate(body, 200))
	}
	return fmt.Errorf("%w: %s error (status %d): %s", domain.ErrEmbedding, provider, status, truncate(body, 200))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
