package matching

import (
	"regexp"
	"strings"

	"github.com/frtsoysal/newsapi/pkg/polymarket"
)

// DefaultMaxTerms bounds the length of a generated news query.
const DefaultMaxTerms = 8

const titleTermLimit = 5

// genericTags are event tags too broad to sharpen a news query, including
// bare year tokens.
var genericTags = map[string]bool{
	"business": true, "politics": true, "news": true, "world": true,
	"us": true, "usa": true, "america": true, "global": true,
	"international": true, "economy": true, "economic": true,
	"predictions": true,
	"2024": true, "2025": true, "2026": true,
}

// entityPattern matches a contiguous run of capitalized words, the informal
// named-entity heuristic ("Federal Reserve", "Elon Musk").
var entityPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)

// BuildNewsQuery composes a bounded search query for an event: named entities
// first (quoted, for exact-phrase search), then title terms, then specific
// tags.
func BuildNewsQuery(event polymarket.Event, maxTerms int) string {
	return strings.Join(buildQueryTerms(event, maxTerms), " ")
}

func buildQueryTerms(event polymarket.Event, maxTerms int) []string {
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}

	terms := ExtractKeyTerms(event.Title)
	if len(terms) > titleTermLimit {
		terms = terms[:titleTermLimit]
	}

	for _, tag := range event.Tags {
		if len(terms) >= maxTerms {
			break
		}
		if genericTags[strings.ToLower(tag)] || containsTerm(terms, tag) {
			continue
		}
		terms = append(terms, tag)
	}

	// Proper nouns are the highest-precision anchors: quote them for
	// exact-phrase search and put them ahead of everything else.
	var entities []string
	for _, entity := range entityPattern.FindAllString(event.Title, -1) {
		if stopWords[strings.ToLower(entity)] {
			continue
		}
		if containsTerm(terms, entity) || containsTerm(entities, entity) {
			continue
		}
		entities = append(entities, `"`+entity+`"`)
	}

	terms = append(entities, terms...)
	if len(terms) > maxTerms {
		terms = terms[:maxTerms]
	}
	return terms
}

// containsTerm reports whether term is already collected, comparing
// case-insensitively and ignoring quote markers.
func containsTerm(terms []string, term string) bool {
	lower := strings.ToLower(strings.Trim(term, `"`))
	for _, t := range terms {
		if strings.ToLower(strings.Trim(t, `"`)) == lower {
			return true
		}
	}
	return false
}
