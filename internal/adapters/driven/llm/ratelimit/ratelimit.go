// Package ratelimit wraps an LLM service with a client-side request budget.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultBackoff is how long calls are held after the provider answers 429.
const DefaultBackoff = 30 * time.Second

// Limiter is a token bucket with a backoff window set by provider 429s.
type Limiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	backoff time.Duration
}

// NewLimiter allows requestsPerMinute calls per minute with a burst of one.
// A non-positive rate disables the bucket; backoff still applies.
func NewLimiter(requestsPerMinute int) *Limiter {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Limit(float64(requestsPerMinute) / 60.0)
	}
	return &Limiter{
		limiter: rate.NewLimiter(limit, 1),
		backoff: DefaultBackoff,
	}
}

// Wait blocks until a call is allowed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", domain.ErrRateLimited, ctx.Err())
		case <-time.After(time.Until(retryAt)):
		}
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}
	return nil
}

// Allow reports whether a call could be made now without blocking.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}
	return l.limiter.Allow()
}

// RecordRateLimitError holds further calls for the backoff period.
func (l *Limiter) RecordRateLimitError() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.retryAt = time.Now().Add(l.backoff)
}

// LLMService applies a Limiter to every model call of an inner service.
type LLMService struct {
	inner   driven.LLMService
	limiter *Limiter
}

// Wrap returns inner behind a limiter of requestsPerMinute.
func Wrap(inner driven.LLMService, requestsPerMinute int) *LLMService {
	return &LLMService{
		inner:   inner,
		limiter: NewLimiter(requestsPerMinute),
	}
}

// Chat waits for a token, then calls the inner service.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	out, err := s.inner.Chat(ctx, messages, opts)
	s.observe(err)
	return out, err
}

// ModelName returns the inner model name.
func (s *LLMService) ModelName() string {
	return s.inner.ModelName()
}

// Ping is not rate limited; it does not run inference.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close releases the inner service.
func (s *LLMService) Close() error {
	return s.inner.Close()
}

func (s *LLMService) observe(err error) {
	if errors.Is(err, domain.ErrRateLimited) {
		s.limiter.RecordRateLimitError()
	}
}
