package ranking

import (
	"context"
	"log/slog"

	"search-orchestrator/internal/domain"
)

// ProviderBudget counts external calls against a per-run ceiling. Not
// safe for concurrent use; one budget belongs to exactly one run, and
// runs issue calls strictly sequentially.
type ProviderBudget struct {
	Limit     int
	Used      int
	Exhausted bool
}

// NewProviderBudget creates a fresh budget for one pipeline run.
func NewProviderBudget(limit int) *ProviderBudget {
	return &ProviderBudget{Limit: limit}
}

// Remaining returns the number of calls still allowed, never negative.
func (b *ProviderBudget) Remaining() int {
	if r := b.Limit - b.Used; r > 0 {
		return r
	}
	return 0
}

// SearchWithBudget is the single choke point for provider calls. An
// exhausted budget short-circuits to empty rows instead of erroring;
// the exhaustion only surfaces in run metadata.
func (b *ProviderBudget) SearchWithBudget(ctx context.Context, provider domain.SearchProvider, query string, count int, logger *slog.Logger) ([]domain.SearchRow, error) {
	if b.Remaining() <= 0 {
		b.Exhausted = true
		logger.Debug("provider_budget_exhausted",
			slog.Int("limit", b.Limit),
			slog.String("query", query))
		return nil, nil
	}
	b.Used++
	return provider.SearchWeb(ctx, query, domain.SearchOptions{Count: count})
}
