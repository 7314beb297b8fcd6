// Package resultcache provides implementations of the pipeline's
// injected cache capability: an in-process expirable LRU and a shared
// Postgres-backed key-value store.
package resultcache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"search-orchestrator/internal/domain"
)

// MemoryCache is an in-process LRU with per-entry TTL.
type MemoryCache struct {
	lru *expirable.LRU[string, *domain.PipelineResult]
}

// NewMemoryCache creates a MemoryCache holding up to size entries for
// at most ttl each.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		lru: expirable.NewLRU[string, *domain.PipelineResult](size, nil, ttl),
	}
}

func (c *MemoryCache) Get(key string) (*domain.PipelineResult, bool) {
	return c.lru.Get(key)
}

func (c *MemoryCache) Set(key string, value *domain.PipelineResult) {
	c.lru.Add(key, value)
}
