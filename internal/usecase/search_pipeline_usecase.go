package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"search-orchestrator/internal/domain"
	"search-orchestrator/internal/usecase/ranking"

	"github.com/google/uuid"
)

// SearchPipelineInput defines the parameters for one pipeline run.
type SearchPipelineInput struct {
	Query string
	// CostMode names a profile; unrecognized values resolve to economy.
	CostMode string
	// MaxProviderCalls overrides the profile's call ceiling when positive.
	MaxProviderCalls int
}

// SearchPipelineUsecase runs the full ranking pipeline once at a
// resolved cost profile. This is the sole entry point callers need.
type SearchPipelineUsecase interface {
	Execute(ctx context.Context, input SearchPipelineInput) (*domain.PipelineResult, error)
}

type searchPipelineUsecase struct {
	provider domain.SearchProvider
	cache    domain.ResultCache
	logger   *slog.Logger
}

// NewSearchPipelineUsecase creates a SearchPipelineUsecase. cache may
// be nil to disable result caching.
func NewSearchPipelineUsecase(provider domain.SearchProvider, cache domain.ResultCache, logger *slog.Logger) SearchPipelineUsecase {
	return &searchPipelineUsecase{
		provider: provider,
		cache:    cache,
		logger:   logger,
	}
}

func (u *searchPipelineUsecase) Execute(ctx context.Context, input SearchPipelineInput) (*domain.PipelineResult, error) {
	if input.Query == "" {
		return nil, fmt.Errorf("query is empty")
	}

	profile := ranking.CostConfigFor(input.CostMode, input.MaxProviderCalls)
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cost profile: %w", err)
	}

	cacheKey := domain.CacheKey(u.provider.Name(), profile.Mode, input.Query)
	if u.cache != nil {
		if cached, ok := u.cache.Get(cacheKey); ok {
			u.logger.Info("pipeline_cache_hit",
				slog.String("cost_mode", profile.Mode),
				slog.String("query", input.Query))
			return cached, nil
		}
	}

	searchID := uuid.New().String()
	qc := ranking.BuildQueryContext(input.Query)
	sc := ranking.NewStageContext(searchID, input.Query, qc, profile)

	u.logger.Info("pipeline_started",
		slog.String("search_id", searchID),
		slog.String("cost_mode", profile.Mode),
		slog.Int("provider_call_limit", profile.MaxProviderCalls),
		slog.Int("active_topic_rules", len(qc.ActiveTopicRules)),
		slog.Int("location_signals", len(qc.LocationSignals)))

	if err := ranking.RunStageA(ctx, sc, u.provider, u.logger); err != nil {
		return nil, fmt.Errorf("stage A failed: %w", err)
	}
	if err := ranking.RunFallback(ctx, sc, u.provider, u.logger); err != nil {
		return nil, fmt.Errorf("stage B failed: %w", err)
	}

	for i := range sc.Candidates {
		ranking.ScoreResult(&sc.Candidates[i], qc)
	}
	results := ranking.Assemble(sc.Candidates, profile.FinalPerDomainCap, profile.MaxResults)

	priorityCount := 0
	for _, r := range results {
		if r.IsPriority {
			priorityCount++
		}
	}

	out := &domain.PipelineResult{
		Results: results,
		Metadata: domain.PipelineMetadata{
			FallbackUsed:            sc.FallbackUsed,
			PriorityResultCount:     priorityCount,
			TotalResultCount:        len(results),
			CostMode:                profile.Mode,
			ProviderRequestCount:    sc.Budget.Used,
			ProviderRequestLimit:    sc.Budget.Limit,
			ProviderBudgetExhausted: sc.Budget.Exhausted,
		},
	}

	u.logger.Info("pipeline_completed",
		slog.String("search_id", searchID),
		slog.Int("results", len(results)),
		slog.Int("priority_results", priorityCount),
		slog.Bool("fallback_used", sc.FallbackUsed),
		slog.Int("provider_calls", sc.Budget.Used))

	if u.cache != nil {
		u.cache.Set(cacheKey, out)
	}
	return out, nil
}
