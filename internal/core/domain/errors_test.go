package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrEmbedding", ErrEmbedding},
		{"ErrStorage", ErrStorage},
		{"ErrDecision", ErrDecision},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
		{"ErrNoResults", ErrNoResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Wrapped tests that wrapped errors still match their sentinel
func TestErrors_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("%w: connection refused", ErrEmbedding)

	assert.True(t, errors.Is(wrapped, ErrEmbedding))
	assert.False(t, errors.Is(wrapped, ErrStorage))
	assert.Contains(t, wrapped.Error(), "embedding failed")
}

// TestErrors_Distinct tests that sentinels do not match each other
func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrEmbedding, ErrStorage,
		ErrDecision, ErrLLMUnavailable, ErrEmbeddingUnavailable, ErrNoResults,
	}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
