package ranking

import "strings"

// LocationSignal is an alias group for one location (state code plus
// full name). A group is present when any alias appears as a query token.
type LocationSignal struct {
	ID      string
	Aliases []string
}

// locationSignals is the fixed set of recognized location alias groups.
var locationSignals = []LocationSignal{
	{ID: "tn", Aliases: []string{"tn", "tennessee"}},
	{ID: "va", Aliases: []string{"va", "virginia"}},
	{ID: "nc", Aliases: []string{"nc", "carolina"}},
	{ID: "ga", Aliases: []string{"ga", "georgia"}},
	{ID: "ky", Aliases: []string{"ky", "kentucky"}},
	{ID: "al", Aliases: []string{"al", "alabama"}},
	{ID: "ms", Aliases: []string{"ms", "mississippi"}},
	{ID: "ar", Aliases: []string{"ar", "arkansas"}},
	{ID: "mo", Aliases: []string{"mo", "missouri"}},
	{ID: "tx", Aliases: []string{"tx", "texas"}},
	{ID: "fl", Aliases: []string{"fl", "florida"}},
	{ID: "ca", Aliases: []string{"ca", "california"}},
}

// stopWords are articles, prepositions and generic indicator words
// stripped from queryTerms to form coreTerms.
var stopWords = map[string]bool{
	"the": true, "an": true, "of": true, "in": true, "on": true,
	"for": true, "by": true, "with": true, "and": true, "or": true,
	"to": true, "at": true, "from": true, "per": true, "vs": true,
	"rate": true, "rates": true, "county": true, "counties": true,
	"data": true, "statistics": true, "stats": true, "number": true,
	"numbers": true, "how": true, "what": true, "where": true,
	"many": true, "much": true, "show": true, "find": true,
}

// censusSeedVocabulary marks general statistical/demographic queries
// that warrant seeding the authority index directly.
var censusSeedVocabulary = map[string]bool{
	"income": true, "poverty": true, "housing": true, "population": true,
	"uninsured": true, "census": true, "demographics": true,
	"demographic": true, "unemployment": true, "employment": true,
	"education": true, "earnings": true, "household": true,
	"households": true, "rent": true, "age": true, "race": true,
	"migration": true, "commute": true,
}

// QueryContext is derived once per query and immutable for the run.
type QueryContext struct {
	Query            string
	QueryTerms       []string
	CoreTerms        []string
	LocationSignals  []LocationSignal
	ActiveTopicRules []TopicRule

	queryTermSet map[string]bool
}

// BuildQueryContext tokenizes the query and activates location and
// topic signals.
func BuildQueryContext(query string) *QueryContext {
	terms := Tokenize(query)
	termSet := make(map[string]bool, len(terms))
	for _, t := range terms {
		termSet[t] = true
	}

	core := make([]string, 0, len(terms))
	for _, t := range terms {
		if !stopWords[t] {
			core = append(core, t)
		}
	}
	// A query made entirely of stop words still needs something to
	// match against; fall back to the full term set.
	if len(core) == 0 {
		core = terms
	}

	var locations []LocationSignal
	for _, sig := range locationSignals {
		for _, alias := range sig.Aliases {
			if termSet[alias] {
				locations = append(locations, sig)
				break
			}
		}
	}

	var active []TopicRule
	for _, rule := range TopicRules {
		for _, trigger := range rule.TriggerTerms {
			if termSet[trigger] {
				active = append(active, rule)
				break
			}
		}
	}

	return &QueryContext{
		Query:            query,
		QueryTerms:       terms,
		CoreTerms:        core,
		LocationSignals:  locations,
		ActiveTopicRules: active,
		queryTermSet:     termSet,
	}
}

// HasTerm reports whether the literal term appeared in the query.
func (qc *QueryContext) HasTerm(term string) bool {
	return qc.queryTermSet[term]
}

// HasCensusSeedTerm reports whether the query contains any term from
// the census seed vocabulary.
func (qc *QueryContext) HasCensusSeedTerm() bool {
	for _, t := range qc.QueryTerms {
		if censusSeedVocabulary[t] {
			return true
		}
	}
	return false
}

// Tokenize lowercases s and extracts alphanumeric runs longer than one
// character, deduplicated in first-seen order.
func Tokenize(s string) []string {
	s = strings.ToLower(s)
	var terms []string
	seen := make(map[string]bool)
	var b strings.Builder

	flush := func() {
		if b.Len() > 1 {
			t := b.String()
			if !seen[t] {
				seen[t] = true
				terms = append(terms, t)
			}
		}
		b.Reset()
	}

	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return terms
}
