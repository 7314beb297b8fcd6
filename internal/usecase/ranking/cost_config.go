package ranking

import (
	"fmt"
	"strings"
)

// Cost mode names. Unrecognized input resolves to the default.
const (
	CostModeEconomy  = "economy"
	CostModeStandard = "standard"

	DefaultCostMode = CostModeEconomy
)

// CostProfile bundles every numeric limit the pipeline consults. The
// two named profiles trade result quality against provider call volume.
type CostProfile struct {
	Mode string

	// Budget
	MaxProviderCalls int

	// Topic seeding
	MaxTopicSeedCalls          int
	MaxTopicSeedDomainsPerRule int
	TopicSeedResultCount       int

	// Authority-index seeding
	MaxDataCensusSeedCalls int
	CensusSeedResultCount  int

	// Batched priority-domain sweep
	StageABatchSize                 int
	StageABatchLimit                int
	StageABatchResultCount          int
	StageADomainFallbackResultCount int
	AllowStageADomainFallbackOn422  bool

	// Stage A buffering
	SeedPerDomainCap        int
	StageAPerDomainCap      int
	StageABufferLimit       int
	MaxPriorityResults      int
	MinStageADiverseDomains int

	// Stage B fallback
	MinGoodResults      int
	FallbackResultCount int

	// Assembly
	TargetResultCount int
	MaxResults        int
	FinalPerDomainCap int
}

var costProfiles = map[string]CostProfile{
	CostModeEconomy: {
		Mode:                            CostModeEconomy,
		MaxProviderCalls:                6,
		MaxTopicSeedCalls:               2,
		MaxTopicSeedDomainsPerRule:      1,
		TopicSeedResultCount:            5,
		MaxDataCensusSeedCalls:          1,
		CensusSeedResultCount:           6,
		StageABatchSize:                 6,
		StageABatchLimit:                2,
		StageABatchResultCount:          10,
		StageADomainFallbackResultCount: 3,
		AllowStageADomainFallbackOn422:  false,
		SeedPerDomainCap:                2,
		StageAPerDomainCap:              2,
		StageABufferLimit:               24,
		MaxPriorityResults:              8,
		MinStageADiverseDomains:         3,
		MinGoodResults:                  4,
		FallbackResultCount:             10,
		TargetResultCount:               8,
		MaxResults:                      10,
		FinalPerDomainCap:               2,
	},
	CostModeStandard: {
		Mode:                            CostModeStandard,
		MaxProviderCalls:                14,
		MaxTopicSeedCalls:               4,
		MaxTopicSeedDomainsPerRule:      2,
		TopicSeedResultCount:            6,
		MaxDataCensusSeedCalls:          2,
		CensusSeedResultCount:           8,
		StageABatchSize:                 5,
		StageABatchLimit:                5,
		StageABatchResultCount:          12,
		StageADomainFallbackResultCount: 4,
		AllowStageADomainFallbackOn422:  true,
		SeedPerDomainCap:                2,
		StageAPerDomainCap:              3,
		StageABufferLimit:               40,
		MaxPriorityResults:              12,
		MinStageADiverseDomains:         4,
		MinGoodResults:                  6,
		FallbackResultCount:             16,
		TargetResultCount:               12,
		MaxResults:                      15,
		FinalPerDomainCap:               3,
	},
}

// ResolveCostMode maps free-form input to a known mode name, falling
// back to the default on anything unrecognized.
func ResolveCostMode(candidate string) string {
	mode := strings.ToLower(strings.TrimSpace(candidate))
	if _, ok := costProfiles[mode]; ok {
		return mode
	}
	return DefaultCostMode
}

// CostConfigFor resolves the mode and applies a caller-supplied call
// ceiling override. Non-positive overrides are ignored. Pure function;
// safe to call repeatedly within one request.
func CostConfigFor(mode string, maxProviderCalls int) CostProfile {
	profile := costProfiles[ResolveCostMode(mode)]
	if maxProviderCalls > 0 {
		profile.MaxProviderCalls = maxProviderCalls
	}
	return profile
}

// Validate checks a profile for internally consistent limits.
func (p CostProfile) Validate() error {
	if p.MaxProviderCalls <= 0 {
		return fmt.Errorf("maxProviderCalls must be positive, got %d", p.MaxProviderCalls)
	}
	if p.StageABatchSize <= 0 {
		return fmt.Errorf("stageABatchSize must be positive, got %d", p.StageABatchSize)
	}
	if p.MaxResults <= 0 {
		return fmt.Errorf("maxResults must be positive, got %d", p.MaxResults)
	}
	if p.FinalPerDomainCap <= 0 {
		return fmt.Errorf("finalPerDomainCap must be positive, got %d", p.FinalPerDomainCap)
	}
	if p.TargetResultCount > p.MaxResults {
		return fmt.Errorf("targetResultCount (%d) exceeds maxResults (%d)", p.TargetResultCount, p.MaxResults)
	}
	return nil
}
