package ranking

import (
	"context"
	"fmt"
	"log/slog"

	"search-orchestrator/internal/domain"
)

// RunFallback issues the single unrestricted Stage B query when Stage A
// under-delivered. Unlike Stage A, non-priority rows are kept; the
// scoring engine decides where they land.
func RunFallback(ctx context.Context, sc *StageContext, provider domain.SearchProvider, logger *slog.Logger) error {
	profile := sc.Profile

	if sc.PriorityCount() >= profile.MinGoodResults {
		return nil
	}
	if sc.Budget.Remaining() <= 0 {
		sc.Budget.Exhausted = true
		return nil
	}

	rows, err := sc.Budget.SearchWithBudget(ctx, provider, sc.Query, profile.FallbackResultCount, logger)
	if err != nil {
		if domain.IsQueryRejected(err) {
			return nil
		}
		return fmt.Errorf("fallback query failed: %w", err)
	}
	sc.FallbackUsed = true

	sc.appendRows(rows, 0, false, 2*profile.TargetResultCount)

	logger.Info("fallback_completed",
		slog.String("search_id", sc.SearchID),
		slog.Int("rows_returned", len(rows)),
		slog.Int("total_candidates", len(sc.Candidates)))
	return nil
}
