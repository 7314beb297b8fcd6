package ranking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"search-orchestrator/internal/domain"
)

// RunStageA executes the priority-seeded retrieval phase in strict
// order: topic seeding, authority-index seeding, batched priority-
// domain sweep. The early-exit predicate is evaluated between steps so
// a well-served query stops spending budget. Any provider error other
// than a 422 query rejection aborts the run.
func RunStageA(ctx context.Context, sc *StageContext, provider domain.SearchProvider, logger *slog.Logger) error {
	if err := runTopicSeeds(ctx, sc, provider, logger); err != nil {
		return fmt.Errorf("topic seeding failed: %w", err)
	}
	if sc.enoughStageAResults() {
		logger.Info("stage_a_early_exit",
			slog.String("search_id", sc.SearchID),
			slog.String("after", "topic_seed"),
			slog.Int("priority_results", sc.PriorityCount()))
		return nil
	}

	if err := runAuthoritySeed(ctx, sc, provider, logger); err != nil {
		return fmt.Errorf("authority seeding failed: %w", err)
	}
	if sc.enoughStageAResults() {
		logger.Info("stage_a_early_exit",
			slog.String("search_id", sc.SearchID),
			slog.String("after", "authority_seed"),
			slog.Int("priority_results", sc.PriorityCount()))
		return nil
	}

	if err := runBatchSweep(ctx, sc, provider, logger); err != nil {
		return fmt.Errorf("batch sweep failed: %w", err)
	}

	logger.Info("stage_a_completed",
		slog.String("search_id", sc.SearchID),
		slog.Int("priority_results", sc.PriorityCount()),
		slog.Int("distinct_domains", sc.DistinctPriorityDomains()),
		slog.Int("provider_calls_used", sc.Budget.Used))
	return nil
}

// runTopicSeeds issues 1-2 seed queries per active rule domain: the
// raw query scoped to the domain, plus a focused trigger+location
// query when location signals exist.
func runTopicSeeds(ctx context.Context, sc *StageContext, provider domain.SearchProvider, logger *slog.Logger) error {
	profile := sc.Profile
	calls := 0

	for _, rule := range sc.QC.ActiveTopicRules {
		domains := rule.Domains
		if len(domains) > profile.MaxTopicSeedDomainsPerRule {
			domains = domains[:profile.MaxTopicSeedDomainsPerRule]
		}
		for _, seedDomain := range domains {
			if calls >= profile.MaxTopicSeedCalls {
				return nil
			}
			// Soft reservation: keep at least one call for the sweep.
			if sc.Budget.Remaining() <= 1 {
				return nil
			}

			query := sc.Query + " site:" + seedDomain
			rows, err := sc.Budget.SearchWithBudget(ctx, provider, query, profile.TopicSeedResultCount, logger)
			if err != nil {
				if domain.IsQueryRejected(err) {
					continue
				}
				return err
			}
			calls++
			sc.appendRows(rows, profile.SeedPerDomainCap, true, profile.StageABufferLimit)

			if calls >= profile.MaxTopicSeedCalls || sc.Budget.Remaining() <= 1 {
				continue
			}
			focused := focusedTopicQuery(rule, sc.QC)
			if focused == "" {
				continue
			}
			rows, err = sc.Budget.SearchWithBudget(ctx, provider, focused+" site:"+seedDomain, profile.TopicSeedResultCount, logger)
			if err != nil {
				if domain.IsQueryRejected(err) {
					continue
				}
				return err
			}
			calls++
			sc.appendRows(rows, profile.SeedPerDomainCap, true, profile.StageABufferLimit)
		}
	}

	if calls > 0 {
		logger.Info("topic_seeding_completed",
			slog.String("search_id", sc.SearchID),
			slog.Int("calls", calls),
			slog.Int("priority_results", sc.PriorityCount()))
	}
	return nil
}

// focusedTopicQuery combines the rule's triggers that actually appear
// in the query with up to two location terms. Empty when there is no
// location signal to focus on.
func focusedTopicQuery(rule TopicRule, qc *QueryContext) string {
	if len(qc.LocationSignals) == 0 {
		return ""
	}
	var parts []string
	for _, trigger := range rule.TriggerTerms {
		if qc.HasTerm(trigger) {
			parts = append(parts, trigger)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, rule.TriggerTerms[0])
	}
	for i, sig := range qc.LocationSignals {
		if i == 2 {
			break
		}
		// The last alias in a group is the full name, which searches
		// better than the two-letter code.
		parts = append(parts, sig.Aliases[len(sig.Aliases)-1])
	}
	return strings.Join(parts, " ")
}

// runAuthoritySeed scopes 1-2 queries to the flagship authority index,
// but only for general statistical/demographic queries: the query must
// carry census-seed vocabulary, and a topical query must say "census"
// literally to qualify.
func runAuthoritySeed(ctx context.Context, sc *StageContext, provider domain.SearchProvider, logger *slog.Logger) error {
	profile := sc.Profile
	qc := sc.QC

	if !qc.HasCensusSeedTerm() {
		return nil
	}
	if len(qc.ActiveTopicRules) > 0 && !qc.HasTerm("census") {
		return nil
	}

	queries := []string{
		sc.Query + " site:" + AuthorityIndexDomain,
		strings.Join(qc.CoreTerms, " ") + " dataset table download csv xlsx site:" + AuthorityIndexDomain,
	}
	if len(queries) > profile.MaxDataCensusSeedCalls {
		queries = queries[:profile.MaxDataCensusSeedCalls]
	}

	calls := 0
	for _, query := range queries {
		if sc.Budget.Remaining() <= 1 {
			break
		}
		rows, err := sc.Budget.SearchWithBudget(ctx, provider, query, profile.CensusSeedResultCount, logger)
		if err != nil {
			if domain.IsQueryRejected(err) {
				continue
			}
			return err
		}
		calls++
		sc.appendRows(rows, profile.SeedPerDomainCap, true, profile.StageABufferLimit)
	}

	if calls > 0 {
		logger.Info("authority_seeding_completed",
			slog.String("search_id", sc.SearchID),
			slog.Int("calls", calls),
			slog.Int("priority_results", sc.PriorityCount()))
	}
	return nil
}

// runBatchSweep partitions the allowlist (minus the separately-seeded
// authority index) into fixed-size batches and issues one compound
// site-OR query per batch. A 422 rejection of the compound query falls
// back to per-domain queries when the profile allows it, and is
// otherwise treated as an empty batch.
func runBatchSweep(ctx context.Context, sc *StageContext, provider domain.SearchProvider, logger *slog.Logger) error {
	profile := sc.Profile

	sweepDomains := make([]string, 0, len(PriorityDomains))
	for _, d := range PriorityDomains {
		if d != AuthorityIndexDomain {
			sweepDomains = append(sweepDomains, d)
		}
	}

	batches := 0
	for start := 0; start < len(sweepDomains) && batches < profile.StageABatchLimit; start += profile.StageABatchSize {
		if sc.Budget.Remaining() <= 0 {
			break
		}
		end := start + profile.StageABatchSize
		if end > len(sweepDomains) {
			end = len(sweepDomains)
		}
		batch := sweepDomains[start:end]
		batches++

		rows, err := sc.Budget.SearchWithBudget(ctx, provider, batchQuery(sc.Query, batch), profile.StageABatchResultCount, logger)
		if err != nil {
			if !domain.IsQueryRejected(err) {
				return err
			}
			logger.Warn("batch_query_rejected",
				slog.String("search_id", sc.SearchID),
				slog.Int("batch_size", len(batch)),
				slog.Bool("domain_fallback", profile.AllowStageADomainFallbackOn422))
			if !profile.AllowStageADomainFallbackOn422 {
				continue
			}
			if err := sweepDomainsIndividually(ctx, sc, provider, batch, logger); err != nil {
				return err
			}
		} else {
			sc.appendRows(rows, profile.StageAPerDomainCap, true, profile.StageABufferLimit)
		}

		if sc.enoughStageAResults() {
			break
		}
	}
	return nil
}

// sweepDomainsIndividually retries a rejected batch one domain at a
// time at a smaller result count.
func sweepDomainsIndividually(ctx context.Context, sc *StageContext, provider domain.SearchProvider, batch []string, logger *slog.Logger) error {
	profile := sc.Profile
	for _, d := range batch {
		if sc.Budget.Remaining() <= 0 {
			return nil
		}
		rows, err := sc.Budget.SearchWithBudget(ctx, provider, sc.Query+" site:"+d, profile.StageADomainFallbackResultCount, logger)
		if err != nil {
			if domain.IsQueryRejected(err) {
				continue
			}
			return err
		}
		sc.appendRows(rows, profile.StageAPerDomainCap, true, profile.StageABufferLimit)
	}
	return nil
}

func batchQuery(query string, batch []string) string {
	filters := make([]string, len(batch))
	for i, d := range batch {
		filters[i] = "site:" + d
	}
	return query + " (" + strings.Join(filters, " OR ") + ")"
}
