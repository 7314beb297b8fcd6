package searchapi

import (
	"context"

	"golang.org/x/time/rate"

	"search-orchestrator/internal/domain"
)

// RateLimitedProvider wraps a provider with a client-side politeness
// limiter so back-to-back seeding calls stay inside the API's allowed
// request rate. The pipeline issues calls sequentially, so a single
// limiter per provider suffices.
type RateLimitedProvider struct {
	inner   domain.SearchProvider
	limiter *rate.Limiter
}

// NewRateLimitedProvider wraps inner, allowing callsPerSecond with the
// given burst.
func NewRateLimitedProvider(inner domain.SearchProvider, callsPerSecond float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(callsPerSecond), burst),
	}
}

func (p *RateLimitedProvider) Name() string { return p.inner.Name() }

// SearchWeb waits for a limiter token, then delegates. A canceled
// context surfaces as a transport-level provider error.
func (p *RateLimitedProvider) SearchWeb(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchRow, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, &domain.ProviderError{Provider: p.inner.Name(), StatusCode: 0, Message: err.Error()}
	}
	return p.inner.SearchWeb(ctx, query, opts)
}
