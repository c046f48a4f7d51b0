package matching

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestExtractKeyTerms(t *testing.T) {
	terms := ExtractKeyTerms("The Fed will raise rates")

	assert.Equal(t, []string{"fed", "raise", "rates"}, terms)
}

func TestExtractKeyTermsPunctuationAndCase(t *testing.T) {
	terms := ExtractKeyTerms("Will Bitcoin reach $100,000?")

	assert.Equal(t, []string{"bitcoin", "reach", "100", "000"}, terms)
}

func TestExtractKeyTermsDomainStopWords(t *testing.T) {
	terms := ExtractKeyTerms("Market will resolve yes")

	assert.Equal(t, 0, len(terms))
}

func TestExtractKeyTermsShortTokens(t *testing.T) {
	// Tokens of two characters or fewer are dropped even when not stop words.
	terms := ExtractKeyTerms("US GDP up q3")

	assert.Equal(t, []string{"gdp"}, terms)
}

func TestExtractKeyTermsEmpty(t *testing.T) {
	assert.Equal(t, 0, len(ExtractKeyTerms("")))
	assert.Equal(t, 0, len(ExtractKeyTerms("   ")))
}

func TestExtractKeyTermsPreservesOrderAndDuplicates(t *testing.T) {
	terms := ExtractKeyTerms("rates rates again rates")

	assert.Equal(t, []string{"rates", "rates", "again", "rates"}, terms)
}
