package ranking_test

import (
	"context"
	"net/http"
	"testing"

	"search-orchestrator/internal/domain"
	"search-orchestrator/internal/usecase/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFallback_TriggersBelowMinGoodResults(t *testing.T) {
	provider := &fakeProvider{
		respond: func(string, int) ([]domain.SearchRow, error) {
			return []domain.SearchRow{
				row("Income overview", "https://example.com/income"),
				row("Income tables", "https://cdc.gov/income"),
			}, nil
		},
	}
	sc := newStageContext("income", ranking.CostModeEconomy)

	err := ranking.RunFallback(context.Background(), sc, provider, discardLogger())

	require.NoError(t, err)
	assert.True(t, sc.FallbackUsed)
	require.Len(t, provider.queries, 1)
	assert.Equal(t, "income", provider.queries[0], "fallback must send the raw query, unrestricted")
	// Non-priority rows survive Stage B.
	assert.Len(t, sc.Candidates, 2)
	assert.Equal(t, 1, sc.PriorityCount())
}

func TestRunFallback_SkippedWhenEnoughPriorityResults(t *testing.T) {
	provider := &fakeProvider{}
	sc := newStageContext("income", ranking.CostModeEconomy)
	for i := 0; i < sc.Profile.MinGoodResults; i++ {
		sc.Candidates = append(sc.Candidates, domain.NormalizedResult{IsPriority: true})
	}

	err := ranking.RunFallback(context.Background(), sc, provider, discardLogger())

	require.NoError(t, err)
	assert.False(t, sc.FallbackUsed)
	assert.Empty(t, provider.queries)
}

func TestRunFallback_SkippedWhenBudgetExhausted(t *testing.T) {
	provider := &fakeProvider{}
	sc := newStageContext("income", ranking.CostModeEconomy)
	sc.Budget.Used = sc.Budget.Limit

	err := ranking.RunFallback(context.Background(), sc, provider, discardLogger())

	require.NoError(t, err)
	assert.False(t, sc.FallbackUsed)
	assert.True(t, sc.Budget.Exhausted)
	assert.Empty(t, provider.queries)
}

func TestRunFallback_SwallowsQueryRejection(t *testing.T) {
	provider := &fakeProvider{
		respond: func(string, int) ([]domain.SearchRow, error) {
			return nil, &domain.ProviderError{Provider: "fake", StatusCode: http.StatusUnprocessableEntity, Message: "rejected"}
		},
	}
	sc := newStageContext("income", ranking.CostModeEconomy)

	err := ranking.RunFallback(context.Background(), sc, provider, discardLogger())

	require.NoError(t, err)
	assert.False(t, sc.FallbackUsed)
	assert.Empty(t, sc.Candidates)
}

func TestRunFallback_DeduplicatesAgainstEarlierStages(t *testing.T) {
	stageAProvider := &fakeProvider{
		respond: func(query string, _ int) ([]domain.SearchRow, error) {
			if query == "income site:"+ranking.AuthorityIndexDomain {
				return []domain.SearchRow{row("Income table", "https://data.census.gov/table/income")}, nil
			}
			return nil, nil
		},
	}
	sc := newStageContext("income", ranking.CostModeEconomy)
	require.NoError(t, ranking.RunStageA(context.Background(), sc, stageAProvider, discardLogger()))
	require.Equal(t, 1, len(sc.Candidates))

	fallbackProvider := &fakeProvider{
		respond: func(string, int) ([]domain.SearchRow, error) {
			return []domain.SearchRow{
				// Same page, different fragment and trailing slash.
				row("Income table", "https://data.census.gov/table/income/#content"),
				row("Income report", "https://example.com/income"),
			}, nil
		},
	}

	err := ranking.RunFallback(context.Background(), sc, fallbackProvider, discardLogger())

	require.NoError(t, err)
	assert.Len(t, sc.Candidates, 2, "canonically equal URLs must not be re-added")
}
