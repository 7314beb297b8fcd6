package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"search-orchestrator/internal/domain"
	"search-orchestrator/internal/usecase/ranking"
)

// EscalationThresholds decide when an economy run is too weak to ship.
type EscalationThresholds struct {
	MinResults         int
	MinPriorityResults int
	MinDistinctDomains int
}

// DefaultEscalationThresholds returns the operational defaults.
func DefaultEscalationThresholds() EscalationThresholds {
	return EscalationThresholds{
		MinResults:         6,
		MinPriorityResults: 3,
		MinDistinctDomains: 3,
	}
}

// Quality score weights. The score is a cheap scalar proxy for "would
// a user trust page one of this result list".
const (
	qualityWeightTotal           = 5
	qualityWeightPriority        = 7
	qualityWeightDistinctDomains = 4
	qualityWeightMetaPriority    = 2
	qualityBonusPriorityFirst    = 3

	distinctDomainWindow = 8
)

// EscalatingSearchInput defines the caller-facing search parameters.
type EscalatingSearchInput struct {
	Query            string
	CostMode         string
	MaxProviderCalls int
	// DisableEscalation pins the run to the requested mode even when
	// the result looks weak.
	DisableEscalation bool
}

// EscalatingSearchUsecase runs the pipeline at the requested mode and,
// when an economy run looks weak, reruns at standard and keeps the
// better of the two.
type EscalatingSearchUsecase interface {
	Execute(ctx context.Context, input EscalatingSearchInput) (*domain.SearchReport, error)
}

type escalatingSearchUsecase struct {
	pipeline   SearchPipelineUsecase
	thresholds EscalationThresholds
	logger     *slog.Logger
}

// NewEscalatingSearchUsecase creates an EscalatingSearchUsecase.
func NewEscalatingSearchUsecase(pipeline SearchPipelineUsecase, thresholds EscalationThresholds, logger *slog.Logger) EscalatingSearchUsecase {
	return &escalatingSearchUsecase{
		pipeline:   pipeline,
		thresholds: thresholds,
		logger:     logger,
	}
}

func (u *escalatingSearchUsecase) Execute(ctx context.Context, input EscalatingSearchInput) (*domain.SearchReport, error) {
	mode := ranking.ResolveCostMode(input.CostMode)

	first, err := u.pipeline.Execute(ctx, SearchPipelineInput{
		Query:            input.Query,
		CostMode:         mode,
		MaxProviderCalls: input.MaxProviderCalls,
	})
	if err != nil {
		return nil, fmt.Errorf("search pipeline failed: %w", err)
	}

	report := &domain.SearchReport{
		Results:      first.Results,
		Metadata:     first.Metadata,
		QualityScore: QualityScore(first),
	}

	if input.DisableEscalation || mode != ranking.CostModeEconomy || !u.belowThresholds(first) {
		return report, nil
	}

	u.logger.Info("escalating_to_standard",
		slog.String("query", input.Query),
		slog.Int("economy_results", len(first.Results)),
		slog.Int("economy_quality", report.QualityScore))

	// The standard rerun gets the profile's own larger budget; the
	// caller override applied to the economy attempt only.
	second, err := u.pipeline.Execute(ctx, SearchPipelineInput{
		Query:    input.Query,
		CostMode: ranking.CostModeStandard,
	})
	if err != nil {
		// A failed escalation never fails the request; ship the
		// economy result with the reason on record.
		u.logger.Warn("escalation_failed_keeping_economy_result",
			slog.String("query", input.Query),
			slog.String("error", err.Error()))
		report.EscalationReason = fmt.Sprintf("standard-mode rerun failed: %v", err)
		return report, nil
	}

	report.Escalated = true
	secondQuality := QualityScore(second)

	// Ties favor the escalated run.
	if secondQuality >= report.QualityScore {
		report.Results = second.Results
		report.Metadata = second.Metadata
		report.QualityScore = secondQuality
	} else {
		report.EscalationReason = "standard-mode rerun scored lower; kept economy result"
	}

	// Call accounting covers both runs whenever escalation was attempted.
	report.Metadata.ProviderRequestCount = first.Metadata.ProviderRequestCount + second.Metadata.ProviderRequestCount
	report.Metadata.ProviderRequestLimit = first.Metadata.ProviderRequestLimit + second.Metadata.ProviderRequestLimit
	report.Metadata.ProviderBudgetExhausted = first.Metadata.ProviderBudgetExhausted || second.Metadata.ProviderBudgetExhausted

	u.logger.Info("escalation_completed",
		slog.String("query", input.Query),
		slog.Int("economy_quality", QualityScore(first)),
		slog.Int("standard_quality", secondQuality),
		slog.String("winner", report.Metadata.CostMode))
	return report, nil
}

func (u *escalatingSearchUsecase) belowThresholds(pr *domain.PipelineResult) bool {
	priority := 0
	for _, r := range pr.Results {
		if r.IsPriority {
			priority++
		}
	}
	return len(pr.Results) < u.thresholds.MinResults ||
		priority < u.thresholds.MinPriorityResults ||
		distinctDomainsInHead(pr.Results, distinctDomainWindow) < u.thresholds.MinDistinctDomains
}

// QualityScore computes the run-comparison score used to pick between
// the economy and standard attempts.
func QualityScore(pr *domain.PipelineResult) int {
	priority := 0
	for _, r := range pr.Results {
		if r.IsPriority {
			priority++
		}
	}
	score := qualityWeightTotal*len(pr.Results) +
		qualityWeightPriority*priority +
		qualityWeightDistinctDomains*distinctDomainsInHead(pr.Results, distinctDomainWindow) +
		qualityWeightMetaPriority*pr.Metadata.PriorityResultCount
	if len(pr.Results) > 0 && pr.Results[0].IsPriority {
		score += qualityBonusPriorityFirst
	}
	return score
}

func distinctDomainsInHead(results []domain.NormalizedResult, window int) int {
	domains := make(map[string]bool)
	for i, r := range results {
		if i >= window {
			break
		}
		domains[r.Domain] = true
	}
	return len(domains)
}
