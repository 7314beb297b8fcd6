package resultcache_test

import (
	"testing"
	"time"

	"search-orchestrator/internal/adapter/resultcache"
	"search-orchestrator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	cache := resultcache.NewMemoryCache(4, time.Minute)
	value := &domain.PipelineResult{
		Metadata: domain.PipelineMetadata{CostMode: "economy", TotalResultCount: 3},
	}

	cache.Set("brave|economy|median income", value)
	got, ok := cache.Get("brave|economy|median income")

	require.True(t, ok)
	assert.Same(t, value, got)
}

func TestMemoryCache_Miss(t *testing.T) {
	cache := resultcache.NewMemoryCache(4, time.Minute)

	_, ok := cache.Get("brave|economy|unseen")

	assert.False(t, ok)
}

func TestMemoryCache_EvictsBeyondSize(t *testing.T) {
	cache := resultcache.NewMemoryCache(2, time.Minute)
	cache.Set("a", &domain.PipelineResult{})
	cache.Set("b", &domain.PipelineResult{})
	cache.Set("c", &domain.PipelineResult{})

	_, ok := cache.Get("a")

	assert.False(t, ok, "oldest entry should have been evicted")
}
