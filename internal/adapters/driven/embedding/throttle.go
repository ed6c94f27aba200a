package embedding

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
)

// Ensure Throttled implements the interface.
var _ driven.EmbeddingService = (*Throttled)(nil)

// DefaultBackoff is how long Embed pauses after the backend reports 429.
const DefaultBackoff = 10 * time.Second

// Throttled limits how often the wrapped service is called.
// It uses a token bucket with a backoff after rate-limit replies.
type Throttled struct {
	next    driven.EmbeddingService
	limiter *rate.Limiter

	mu      sync.Mutex
	retryAt time.Time
	backoff time.Duration
}

// NewThrottled wraps next so that at most perSecond calls are made per
// second. A non-positive rate returns next unchanged.
func NewThrottled(next driven.EmbeddingService, perSecond float64) driven.EmbeddingService {
	if perSecond <= 0 {
		return next
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &Throttled{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		backoff: DefaultBackoff,
	}
}

// Embed waits for a token, then delegates.
func (t *Throttled) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := t.wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbedding, err)
	}
	vec, err := t.next.Embed(ctx, text)
	if errors.Is(err, ErrRateLimited) {
		t.mu.Lock()
		t.retryAt = time.Now().Add(t.backoff)
		t.mu.Unlock()
	}
	return vec, err
}

// wait respects any backoff, then the token bucket.
func (t *Throttled) wait(ctx context.Context) error {
	t.mu.Lock()
	retryAt := t.retryAt
	t.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return t.limiter.Wait(ctx)
}

// ModelName returns the wrapped model name.
func (t *Throttled) ModelName() string {
	return t.next.ModelName()
}

// Ping is not rate limited.
func (t *Throttled) Ping(ctx context.Context) error {
	return t.next.Ping(ctx)
}

// Close closes the wrapped service.
func (t *Throttled) Close() error {
	return t.next.Close()
}
