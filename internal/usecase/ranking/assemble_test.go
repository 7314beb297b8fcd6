package ranking_test

import (
	"testing"

	"search-orchestrator/internal/domain"
	"search-orchestrator/internal/usecase/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(title, host string, score int) domain.NormalizedResult {
	return domain.NormalizedResult{
		Title:      title,
		URL:        "https://" + host + "/" + title,
		Domain:     host,
		IsPriority: ranking.IsPriorityDomain(host),
		Score:      score,
	}
}

func TestAssemble_EnforcesPerDomainCap(t *testing.T) {
	candidates := []domain.NormalizedResult{
		candidate("a", "cdc.gov", 500),
		candidate("b", "cdc.gov", 400),
		candidate("c", "cdc.gov", 300),
		candidate("d", "bls.gov", 200),
		candidate("e", "hud.gov", 100),
		candidate("f", "epa.gov", 50),
	}

	out := ranking.Assemble(candidates, 2, 4)

	require.Len(t, out, 4)
	perDomain := map[string]int{}
	for _, r := range out {
		perDomain[r.Domain]++
	}
	assert.Equal(t, 2, perDomain["cdc.gov"])
	// The third cdc.gov result is displaced by lower-scored diverse ones.
	assert.Equal(t, 1, perDomain["bls.gov"])
	assert.Equal(t, 1, perDomain["hud.gov"])
}

func TestAssemble_BackfillsFromOverflowWhenShort(t *testing.T) {
	candidates := []domain.NormalizedResult{
		candidate("a", "cdc.gov", 500),
		candidate("b", "cdc.gov", 400),
		candidate("c", "cdc.gov", 300),
		candidate("d", "cdc.gov", 200),
	}

	out := ranking.Assemble(candidates, 2, 10)

	// With nothing else available, capped results return rather than
	// leaving the list short.
	require.Len(t, out, 4)
	assert.Equal(t, "a", out[0].Title)
	assert.Equal(t, "b", out[1].Title)
	assert.Equal(t, "c", out[2].Title)
	assert.Equal(t, "d", out[3].Title)
}

func TestAssemble_TruncatesAtMaxResults(t *testing.T) {
	var candidates []domain.NormalizedResult
	hosts := []string{"cdc.gov", "bls.gov", "hud.gov", "epa.gov", "noaa.gov", "usgs.gov"}
	for i, h := range hosts {
		candidates = append(candidates, candidate(string(rune('a'+i)), h, 600-i))
	}

	out := ranking.Assemble(candidates, 2, 3)

	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].Title)
	assert.Equal(t, "c", out[2].Title)
}

func TestAssemble_SortsBeforeCapping(t *testing.T) {
	candidates := []domain.NormalizedResult{
		candidate("low", "cdc.gov", 10),
		candidate("high", "cdc.gov", 900),
	}

	out := ranking.Assemble(candidates, 1, 1)

	require.Len(t, out, 1)
	assert.Equal(t, "high", out[0].Title, "the cap must keep the best result of a domain")
}

func TestAssemble_EmptyInput(t *testing.T) {
	out := ranking.Assemble(nil, 2, 10)
	assert.Empty(t, out)
}
