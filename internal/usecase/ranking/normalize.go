package ranking

import (
	"net/url"
	"strings"

	"search-orchestrator/internal/domain"
)

// NormalizeRow converts a raw provider row into a NormalizedResult.
// Returns false when the row is malformed (empty title, unparseable or
// non-http URL, missing hostname) or fails the core-term relevance
// gate. Malformed rows are dropped silently, never raised as errors.
func NormalizeRow(row domain.SearchRow, qc *QueryContext) (domain.NormalizedResult, bool) {
	title := strings.TrimSpace(row.Title)
	if title == "" {
		return domain.NormalizedResult{}, false
	}

	parsed, err := url.Parse(strings.TrimSpace(row.URL))
	if err != nil {
		return domain.NormalizedResult{}, false
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return domain.NormalizedResult{}, false
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return domain.NormalizedResult{}, false
	}

	// Hard relevance gate: with non-empty core terms, at least one must
	// appear somewhere in the row. This happens before scoring.
	if len(qc.CoreTerms) > 0 {
		haystack := strings.ToLower(title + " " + row.Snippet + " " + row.URL)
		matched := false
		for _, term := range qc.CoreTerms {
			if strings.Contains(haystack, term) {
				matched = true
				break
			}
		}
		if !matched {
			return domain.NormalizedResult{}, false
		}
	}

	return domain.NormalizedResult{
		Title:      title,
		URL:        row.URL,
		Snippet:    row.Snippet,
		Domain:     host,
		IsPriority: IsPriorityDomain(host),
		URLKey:     CanonicalURLKey(parsed),
	}, true
}

// CanonicalURLKey builds the dedup key: fragment stripped, trailing
// slash normalized, scheme and host lowercased. Query strings are kept
// because they routinely select different tables on data portals.
func CanonicalURLKey(u *url.URL) string {
	key := *u
	key.Fragment = ""
	key.Scheme = strings.ToLower(key.Scheme)
	key.Host = strings.ToLower(key.Host)
	key.Path = strings.TrimRight(key.Path, "/")
	return key.String()
}
