package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"search-orchestrator/internal/adapter/rank_http"
	"search-orchestrator/internal/adapter/resultcache"
	"search-orchestrator/internal/adapter/searchapi"
	"search-orchestrator/internal/domain"
	"search-orchestrator/internal/infra"
	"search-orchestrator/internal/infra/config"
	"search-orchestrator/internal/infra/httpclient"
	"search-orchestrator/internal/usecase"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	Provider domain.SearchProvider
	Cache    domain.ResultCache

	PipelineUsecase usecase.SearchPipelineUsecase
	SearchUsecase   usecase.EscalatingSearchUsecase

	Handler *rank_http.Handler

	// Non-nil only when a shared Postgres cache is configured.
	CachePool *pgxpool.Pool
}

// NewApplicationComponents wires all dependencies from config.
func NewApplicationComponents(ctx context.Context, cfg *config.Config, log *slog.Logger) (*ApplicationComponents, error) {
	timeout := time.Duration(cfg.ProviderTimeout) * time.Second
	providerHTTP := httpclient.NewPooledClient(timeout)

	registry := searchapi.NewRegistry()
	registry.Register(searchapi.NewBraveClient(cfg.BraveBaseURL, cfg.BraveAPIKey, timeout, log, providerHTTP))
	registry.Register(searchapi.NewSerperClient(cfg.SerperBaseURL, cfg.SerperAPIKey, timeout, log, providerHTTP))
	registry.Register(searchapi.NewTavilyClient(cfg.TavilyBaseURL, cfg.TavilyAPIKey, timeout, log, providerHTTP))

	inner, err := registry.Get(cfg.SearchProvider)
	if err != nil {
		return nil, fmt.Errorf("provider selection failed: %w", err)
	}
	provider := searchapi.NewRateLimitedProvider(inner, cfg.ProviderRate, cfg.ProviderBurst)

	var cache domain.ResultCache
	var cachePool *pgxpool.Pool
	cacheTTL := time.Duration(cfg.CacheTTLMin) * time.Minute
	if cfg.CacheDSN != "" {
		cachePool, err = infra.NewPostgresDB(ctx, cfg.CacheDSN)
		if err != nil {
			return nil, fmt.Errorf("shared cache connection failed: %w", err)
		}
		cache = resultcache.NewPostgresCache(cachePool, cacheTTL, log)
		log.Info("shared_result_cache_enabled", slog.Int("ttl_minutes", cfg.CacheTTLMin))
	} else {
		cache = resultcache.NewMemoryCache(cfg.CacheSize, cacheTTL)
	}

	pipelineUsecase := usecase.NewSearchPipelineUsecase(provider, cache, log)
	searchUsecase := usecase.NewEscalatingSearchUsecase(pipelineUsecase, usecase.EscalationThresholds{
		MinResults:         cfg.EscalationMinResults,
		MinPriorityResults: cfg.EscalationMinPriorityResults,
		MinDistinctDomains: cfg.EscalationMinDistinctDomains,
	}, log)

	return &ApplicationComponents{
		Provider:        provider,
		Cache:           cache,
		PipelineUsecase: pipelineUsecase,
		SearchUsecase:   searchUsecase,
		Handler:         rank_http.NewHandler(searchUsecase),
		CachePool:       cachePool,
	}, nil
}

// Close releases pooled resources.
func (c *ApplicationComponents) Close() {
	if c.CachePool != nil {
		c.CachePool.Close()
	}
}
