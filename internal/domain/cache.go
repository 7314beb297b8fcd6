package domain

import "strings"

// ResultCache is the injected cache capability. Keys are built with
// CacheKey; TTL and eviction belong to the implementation.
type ResultCache interface {
	Get(key string) (*PipelineResult, bool)
	Set(key string, value *PipelineResult)
}

// CacheKey builds the cache key for (provider, cost mode, query).
// The query is lowercased and its whitespace collapsed so trivially
// different spellings share an entry.
func CacheKey(provider, costMode, query string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	return provider + "|" + costMode + "|" + normalized
}
