package resultcache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"search-orchestrator/internal/domain"
)

// PostgresCache is a shared key-value result cache for multi-instance
// deployments. Schema:
//
//	CREATE TABLE search_result_cache (
//	    cache_key  TEXT PRIMARY KEY,
//	    payload    JSONB NOT NULL,
//	    expires_at TIMESTAMPTZ NOT NULL
//	);
//
// Cache errors are logged and treated as misses; a broken cache must
// never fail a search.
type PostgresCache struct {
	db     *pgxpool.Pool
	ttl    time.Duration
	logger *slog.Logger
}

// NewPostgresCache creates a PostgresCache with the given entry TTL.
func NewPostgresCache(db *pgxpool.Pool, ttl time.Duration, logger *slog.Logger) *PostgresCache {
	return &PostgresCache{db: db, ttl: ttl, logger: logger}
}

func (c *PostgresCache) Get(key string) (*domain.PipelineResult, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var payload []byte
	err := c.db.QueryRow(ctx,
		`SELECT payload FROM search_result_cache WHERE cache_key = $1 AND expires_at > now()`,
		key,
	).Scan(&payload)
	if err != nil {
		return nil, false
	}

	var result domain.PipelineResult
	if err := json.Unmarshal(payload, &result); err != nil {
		c.logger.Warn("cache_payload_corrupt", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	return &result, true
}

func (c *PostgresCache) Set(key string, value *domain.PipelineResult) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache_marshal_failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = c.db.Exec(ctx, `
		INSERT INTO search_result_cache (cache_key, payload, expires_at)
		VALUES ($1, $2, now() + $3)
		ON CONFLICT (cache_key)
		DO UPDATE SET payload = EXCLUDED.payload, expires_at = EXCLUDED.expires_at
	`, key, payload, c.ttl)
	if err != nil {
		c.logger.Warn("cache_write_failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
