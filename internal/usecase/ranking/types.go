package ranking

import (
	"search-orchestrator/internal/domain"
)

// StageContext carries data between pipeline stages. One instance per
// run; nothing in it is shared across requests.
type StageContext struct {
	// Input
	SearchID string
	Query    string
	QC       *QueryContext
	Profile  CostProfile
	Budget   *ProviderBudget

	// Accumulated candidate set, deduplicated by canonical URL key.
	Candidates   []domain.NormalizedResult
	seen         map[string]bool
	domainCounts map[string]int

	// Stage B
	FallbackUsed bool
}

// NewStageContext prepares the mutable run state for one pipeline run.
func NewStageContext(searchID, query string, qc *QueryContext, profile CostProfile) *StageContext {
	return &StageContext{
		SearchID:     searchID,
		Query:        query,
		QC:           qc,
		Profile:      profile,
		Budget:       NewProviderBudget(profile.MaxProviderCalls),
		seen:         make(map[string]bool),
		domainCounts: make(map[string]int),
	}
}

// PriorityCount returns how many accumulated candidates are from
// priority domains.
func (sc *StageContext) PriorityCount() int {
	n := 0
	for _, r := range sc.Candidates {
		if r.IsPriority {
			n++
		}
	}
	return n
}

// DistinctPriorityDomains returns the number of distinct domains among
// priority candidates.
func (sc *StageContext) DistinctPriorityDomains() int {
	domains := make(map[string]bool)
	for _, r := range sc.Candidates {
		if r.IsPriority {
			domains[r.Domain] = true
		}
	}
	return len(domains)
}

// enoughStageAResults is the early-exit predicate evaluated between
// Stage A seeding steps.
func (sc *StageContext) enoughStageAResults() bool {
	return sc.PriorityCount() >= sc.Profile.MaxPriorityResults &&
		sc.DistinctPriorityDomains() >= sc.Profile.MinStageADiverseDomains
}

// appendRows normalizes rows and appends the survivors, deduplicating
// by canonical URL across the whole run and capping per domain.
// priorityOnly drops non-priority rows (Stage A); bufferLimit bounds
// total accepted candidates (0 means unbounded).
func (sc *StageContext) appendRows(rows []domain.SearchRow, perDomainCap int, priorityOnly bool, bufferLimit int) {
	for _, row := range rows {
		if bufferLimit > 0 && len(sc.Candidates) >= bufferLimit {
			return
		}
		res, ok := NormalizeRow(row, sc.QC)
		if !ok {
			continue
		}
		if priorityOnly && !res.IsPriority {
			continue
		}
		if sc.seen[res.URLKey] {
			continue
		}
		if perDomainCap > 0 && sc.domainCounts[res.Domain] >= perDomainCap {
			continue
		}
		sc.seen[res.URLKey] = true
		sc.domainCounts[res.Domain]++
		sc.Candidates = append(sc.Candidates, res)
	}
}
