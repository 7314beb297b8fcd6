package ranking

import (
	"sort"
	"strings"

	"search-orchestrator/internal/domain"
)

// Scoring constants, grouped by signal. These were tuned against a
// regression suite; tests assert on them individually.
const (
	// Domain signals
	ScorePriorityDomain = 1000
	ScoreAuthorityIndex = 160

	// Content-type signals
	ScoreDataAssetHint = 90
	ScoreMapHint       = 45
	ScoreDataFileExt   = 140
	PenaltyNonDataHint = -45

	// Core-term signals
	ScoreCoreTermTitle   = 24
	ScoreCoreTermSnippet = 12
	ScoreCoreTermURL     = 8
	ScoreCoreTermUnique  = 18

	// Raw query-term signals
	ScoreQueryTermTitle   = 8
	ScoreQueryTermSnippet = 4
	ScoreQueryTermURL     = 3

	// Location signals
	ScoreLocationHit   = 70
	PenaltyLocationMiss = -90

	// Topic signals
	PenaltyOffTopicAuthorityIndex = -190
)

var dataAssetHints = []string{
	"table", "dataset", "csv", "xlsx", "api", "shapefile", "download",
	"geojson", "explorer",
}

var mapHints = []string{"map", "arcgis", "atlas", "gis"}

var dataFileExtensions = []string{
	".csv", ".xlsx", ".xls", ".geojson", ".shp", ".tsv", ".json",
}

var nonDataHints = []string{
	"news", "blog", "careers", "privacy", "press-release", "pressroom",
	"about-us", "contact", "login", "subscribe",
}

// ScoreResult computes the additive relevance score for one result.
// Scores are only comparable within a single run.
func ScoreResult(res *domain.NormalizedResult, qc *QueryContext) {
	titleLower := strings.ToLower(res.Title)
	snippetLower := strings.ToLower(res.Snippet)
	urlLower := strings.ToLower(res.URL)
	combined := titleLower + " " + snippetLower + " " + urlLower

	score := 0

	if res.IsPriority {
		score += ScorePriorityDomain
	}
	if res.Domain == AuthorityIndexDomain {
		score += ScoreAuthorityIndex
	}

	if containsAny(combined, dataAssetHints) {
		score += ScoreDataAssetHint
	}
	if containsAny(combined, mapHints) {
		score += ScoreMapHint
	}
	if hasDataFileExtension(urlLower) {
		score += ScoreDataFileExt
	}
	if containsAny(combined, nonDataHints) {
		score += PenaltyNonDataHint
	}

	for _, term := range qc.CoreTerms {
		matched := false
		if strings.Contains(titleLower, term) {
			score += ScoreCoreTermTitle
			matched = true
		}
		if strings.Contains(snippetLower, term) {
			score += ScoreCoreTermSnippet
			matched = true
		}
		if strings.Contains(urlLower, term) {
			score += ScoreCoreTermURL
			matched = true
		}
		if matched {
			score += ScoreCoreTermUnique
		}
	}

	for _, term := range qc.QueryTerms {
		if strings.Contains(titleLower, term) {
			score += ScoreQueryTermTitle
		}
		if strings.Contains(snippetLower, term) {
			score += ScoreQueryTermSnippet
		}
		if strings.Contains(urlLower, term) {
			score += ScoreQueryTermURL
		}
	}

	if len(qc.LocationSignals) > 0 {
		resultTerms := make(map[string]bool)
		for _, t := range Tokenize(res.Title + " " + res.Snippet + " " + res.URL) {
			resultTerms[t] = true
		}
		hits := 0
		for _, sig := range qc.LocationSignals {
			for _, alias := range sig.Aliases {
				if resultTerms[alias] {
					hits++
					break
				}
			}
		}
		if hits == 0 {
			score += PenaltyLocationMiss
		} else {
			score += ScoreLocationHit * hits
		}
	}

	for _, rule := range qc.ActiveTopicRules {
		for _, d := range rule.Domains {
			if res.Domain == d || strings.HasSuffix(res.Domain, "."+d) {
				score += rule.Bonus
				break
			}
		}
	}

	// A topical query that never says "census" usually does not want
	// the general statistics index crowding out subject-matter sources.
	if len(qc.ActiveTopicRules) > 0 && !qc.HasTerm("census") && res.Domain == AuthorityIndexDomain {
		score += PenaltyOffTopicAuthorityIndex
	}

	res.Score = score
}

// SortResults orders by score descending, then priority first, then
// domain and title ascending. Fully deterministic for identical input.
func SortResults(results []domain.NormalizedResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.IsPriority != b.IsPriority {
			return a.IsPriority
		}
		if a.Domain != b.Domain {
			return a.Domain < b.Domain
		}
		return a.Title < b.Title
	})
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func hasDataFileExtension(rawURL string) bool {
	path := rawURL
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	for _, ext := range dataFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
