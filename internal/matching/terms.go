// Package matching implements the event-news matching pipeline: building a
// search query from an event's metadata, deriving a search time window, and
// scoring fetched articles for relevance.
package matching

import (
	"regexp"
	"strings"
)

// stopWords holds common English function words plus terms generic to
// prediction markets ("market", "resolve", "yes", "no").
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "in": true, "on": true, "at": true,
	"to": true, "for": true, "of": true, "and": true, "or": true, "is": true,
	"are": true, "was": true, "were": true, "be": true, "been": true,
	"being": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "can": true, "this": true, "that": true,
	"these": true, "those": true, "it": true, "its": true, "by": true,
	"from": true, "with": true, "as": true, "but": true, "if": true,
	"then": true, "than": true, "so": true, "what": true, "which": true,
	"who": true, "whom": true, "when": true, "where": true, "why": true,
	"how": true, "all": true, "each": true, "every": true, "both": true,
	"few": true, "more": true, "most": true, "other": true, "some": true,
	"such": true, "not": true, "only": true, "own": true, "same": true,
	"too": true, "very": true, "just": true, "before": true, "after": true,
	"during": true, "while": true,
	"market": true, "resolve": true, "yes": true, "no": true,
}

var nonWord = regexp.MustCompile(`[^\w\s]`)

// ExtractKeyTerms tokenizes free text into search terms: lower-cased,
// punctuation stripped, stop words and tokens of two characters or fewer
// dropped. Original token order is preserved; no dedup, no stemming.
func ExtractKeyTerms(text string) []string {
	text = strings.ToLower(text)
	text = nonWord.ReplaceAllString(text, " ")

	var terms []string
	for _, word := range strings.Fields(text) {
		if stopWords[word] || len(word) <= 2 {
			continue
		}
		terms = append(terms, word)
	}
	return terms
}
