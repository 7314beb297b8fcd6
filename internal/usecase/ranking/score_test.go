package ranking_test

import (
	"testing"

	"search-orchestrator/internal/domain"
	"search-orchestrator/internal/usecase/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoringConstants(t *testing.T) {
	assert.Equal(t, 1000, ranking.ScorePriorityDomain)
	assert.Equal(t, 160, ranking.ScoreAuthorityIndex)
	assert.Equal(t, 90, ranking.ScoreDataAssetHint)
	assert.Equal(t, 45, ranking.ScoreMapHint)
	assert.Equal(t, 140, ranking.ScoreDataFileExt)
	assert.Equal(t, -45, ranking.PenaltyNonDataHint)
	assert.Equal(t, 24, ranking.ScoreCoreTermTitle)
	assert.Equal(t, 12, ranking.ScoreCoreTermSnippet)
	assert.Equal(t, 8, ranking.ScoreCoreTermURL)
	assert.Equal(t, 18, ranking.ScoreCoreTermUnique)
	assert.Equal(t, 8, ranking.ScoreQueryTermTitle)
	assert.Equal(t, 4, ranking.ScoreQueryTermSnippet)
	assert.Equal(t, 3, ranking.ScoreQueryTermURL)
	assert.Equal(t, 70, ranking.ScoreLocationHit)
	assert.Equal(t, -90, ranking.PenaltyLocationMiss)
	assert.Equal(t, -190, ranking.PenaltyOffTopicAuthorityIndex)
}

func normalize(t *testing.T, qc *ranking.QueryContext, r domain.SearchRow) domain.NormalizedResult {
	t.Helper()
	res, ok := ranking.NormalizeRow(r, qc)
	require.True(t, ok)
	return res
}

func TestScoreResult_DroughtMonitorScenario(t *testing.T) {
	qc := ranking.BuildQueryContext("Drought monitor Tennessee counties")

	monitor := normalize(t, qc, domain.SearchRow{
		Title:   "U.S. Drought Monitor: Tennessee",
		URL:     "https://droughtmonitor.unl.edu/CurrentMap/StateDroughtMonitor.aspx?TN",
		Snippet: "Weekly drought conditions map for Tennessee counties",
	})
	blog := normalize(t, qc, domain.SearchRow{
		Title:   "Drought worries in the news",
		URL:     "https://example.com/news/drought",
		Snippet: "blog post about dry weather",
	})

	ranking.ScoreResult(&monitor, qc)
	ranking.ScoreResult(&blog, qc)

	// Priority domain, rule bonus, and location match stack up.
	assert.GreaterOrEqual(t, monitor.Score, ranking.ScorePriorityDomain+460+ranking.ScoreLocationHit)
	assert.Greater(t, monitor.Score, blog.Score)
}

func TestScoreResult_OffTopicAuthorityIndexPenalty(t *testing.T) {
	qc := ranking.BuildQueryContext("drought monitor tennessee")
	require.NotEmpty(t, qc.ActiveTopicRules)
	require.False(t, qc.HasTerm("census"))

	res := normalize(t, qc, domain.SearchRow{
		Title: "Drought related table",
		URL:   "https://data.census.gov/table",
	})
	same := res
	ranking.ScoreResult(&res, qc)

	// Rescore as if the host were a sibling priority domain: the
	// authority-index bonus and penalty both disappear.
	same.Domain = "census.gov"
	ranking.ScoreResult(&same, qc)

	assert.Equal(t, ranking.ScoreAuthorityIndex+ranking.PenaltyOffTopicAuthorityIndex, res.Score-same.Score)
}

func TestScoreResult_LocationMissPenalty(t *testing.T) {
	qc := ranking.BuildQueryContext("poverty tennessee")

	miss := normalize(t, qc, domain.SearchRow{
		Title: "Poverty estimates",
		URL:   "https://cdc.gov/poverty",
	})
	hit := normalize(t, qc, domain.SearchRow{
		Title: "Poverty estimates",
		URL:   "https://cdc.gov/poverty/tn",
	})

	ranking.ScoreResult(&miss, qc)
	ranking.ScoreResult(&hit, qc)

	// URL token "tn" flips the -90 miss into a +70 hit, plus the core
	// and query term URL matches for "tennessee" are unaffected.
	assert.Equal(t, ranking.ScoreLocationHit-ranking.PenaltyLocationMiss, hit.Score-miss.Score)
}

func TestScoreResult_DataFileExtensionBonus(t *testing.T) {
	qc := ranking.BuildQueryContext("income")

	plain := normalize(t, qc, domain.SearchRow{Title: "Income", URL: "https://bls.gov/income"})
	file := normalize(t, qc, domain.SearchRow{Title: "Income", URL: "https://bls.gov/income.xlsx"})

	ranking.ScoreResult(&plain, qc)
	ranking.ScoreResult(&file, qc)

	// The .xlsx URL earns the file-extension bonus and the data-asset
	// hint ("xlsx" is also a hint token).
	assert.Equal(t, ranking.ScoreDataFileExt+ranking.ScoreDataAssetHint, file.Score-plain.Score)
}

func TestSortResults_PriorityWinsTies(t *testing.T) {
	results := []domain.NormalizedResult{
		{Title: "B", Domain: "example.com", Score: 50, IsPriority: false},
		{Title: "A", Domain: "cdc.gov", Score: 50, IsPriority: true},
	}

	ranking.SortResults(results)

	assert.True(t, results[0].IsPriority)
}

func TestSortResults_FullyDeterministic(t *testing.T) {
	results := []domain.NormalizedResult{
		{Title: "Zeta", Domain: "cdc.gov", Score: 10, IsPriority: true},
		{Title: "Alpha", Domain: "cdc.gov", Score: 10, IsPriority: true},
		{Title: "Alpha", Domain: "bls.gov", Score: 10, IsPriority: true},
	}

	ranking.SortResults(results)

	assert.Equal(t, "bls.gov", results[0].Domain)
	assert.Equal(t, "Alpha", results[1].Title)
	assert.Equal(t, "Zeta", results[2].Title)
}
