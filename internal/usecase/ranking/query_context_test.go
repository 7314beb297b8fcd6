package ranking_test

import (
	"testing"

	"search-orchestrator/internal/usecase/ranking"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_LowercasesAndDedupes(t *testing.T) {
	terms := ranking.Tokenize("Income income INCOME by County, TN-2023!")

	assert.Equal(t, []string{"income", "by", "county", "tn", "2023"}, terms)
}

func TestTokenize_DropsSingleCharacterRuns(t *testing.T) {
	terms := ranking.Tokenize("a b poverty x")

	assert.Equal(t, []string{"poverty"}, terms)
}

func TestBuildQueryContext_RemovesStopWords(t *testing.T) {
	qc := ranking.BuildQueryContext("Median household income by county Tennessee")

	assert.Equal(t, []string{"median", "household", "income", "county", "tennessee"}, qc.QueryTerms)
	assert.Equal(t, []string{"median", "household", "income", "tennessee"}, qc.CoreTerms)
}

func TestBuildQueryContext_FallsBackWhenAllStopWords(t *testing.T) {
	qc := ranking.BuildQueryContext("rate by county")

	assert.Equal(t, qc.QueryTerms, qc.CoreTerms)
	assert.NotEmpty(t, qc.CoreTerms)
}

func TestBuildQueryContext_ActivatesLocationSignals(t *testing.T) {
	qc := ranking.BuildQueryContext("poverty rate tennessee and virginia")

	ids := make([]string, 0, len(qc.LocationSignals))
	for _, sig := range qc.LocationSignals {
		ids = append(ids, sig.ID)
	}
	assert.Equal(t, []string{"tn", "va"}, ids)
}

func TestBuildQueryContext_ActivatesTopicRules(t *testing.T) {
	qc := ranking.BuildQueryContext("Drought monitor Tennessee counties")

	assert.Len(t, qc.ActiveTopicRules, 1)
	assert.Equal(t, "drought", qc.ActiveTopicRules[0].ID)
	assert.Equal(t, 460, qc.ActiveTopicRules[0].Bonus)
}

func TestBuildQueryContext_NoTopicRulesForPlainQuery(t *testing.T) {
	qc := ranking.BuildQueryContext("median household income")

	assert.Empty(t, qc.ActiveTopicRules)
	assert.Empty(t, qc.LocationSignals)
}

func TestHasCensusSeedTerm(t *testing.T) {
	assert.True(t, ranking.BuildQueryContext("median household income").HasCensusSeedTerm())
	assert.False(t, ranking.BuildQueryContext("drought monitor maps").HasCensusSeedTerm())
}
