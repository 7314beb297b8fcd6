package ranking

import (
	"search-orchestrator/internal/domain"
)

// Assemble sorts candidates, enforces the global per-domain cap, and
// truncates to maxResults. Excess same-domain results spill into an
// overflow bucket and backfill (still in score order) only when the
// primary bucket falls short of the maximum, so domain diversity wins
// at the head of the list without discarding results a short list
// still needs.
func Assemble(candidates []domain.NormalizedResult, perDomainCap, maxResults int) []domain.NormalizedResult {
	SortResults(candidates)

	primary := make([]domain.NormalizedResult, 0, maxResults)
	var overflow []domain.NormalizedResult
	perDomain := make(map[string]int)

	for _, res := range candidates {
		if perDomain[res.Domain] < perDomainCap {
			perDomain[res.Domain]++
			primary = append(primary, res)
			if len(primary) >= maxResults {
				return primary
			}
		} else {
			overflow = append(overflow, res)
		}
	}

	for _, res := range overflow {
		if len(primary) >= maxResults {
			break
		}
		primary = append(primary, res)
	}
	return primary
}
