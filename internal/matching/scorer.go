package matching

import (
	"fmt"
	"strings"
	"time"

	"github.com/frtsoysal/newsapi/pkg/news"
	"github.com/frtsoysal/newsapi/pkg/polymarket"
)

// ScoredArticle pairs an article with its relevance score and the reasons the
// score was awarded. Scores are an open-ended additive sum; higher is more
// relevant.
type ScoredArticle struct {
	Article      news.Article
	Score        float64
	MatchReasons []string
}

const (
	titleMatchWeight  = 3
	descMatchWeight   = 1
	entityMatchWeight = 5
	veryRecentBonus   = 2
	recentBonus       = 1
	qualityBonus      = 1
)

// qualitySources are reputable outlets whose presence in a source name earns
// a small bonus.
var qualitySources = []string{
	"reuters", "bloomberg", "associated press", "bbc", "cnn",
	"wall street journal", "new york times", "washington post",
	"financial times", "the economist", "politico", "axios",
}

// ScoreArticle computes the relevance of one article to one event. Substring
// matching is case-insensitive and does not require word boundaries. Quote
// markers on query terms are stripped, so quoted entities match as whole
// phrases. Missing description or publish date simply skips that rule.
func ScoreArticle(article news.Article, event polymarket.Event, queryTerms []string, now time.Time) ScoredArticle {
	var score float64
	var reasons []string

	articleTitle := strings.ToLower(article.Title)
	articleDesc := strings.ToLower(article.Description)

	titleMatches := 0
	descMatches := 0
	for _, term := range queryTerms {
		clean := strings.ToLower(strings.Trim(term, `"`))
		if clean == "" {
			continue
		}
		if strings.Contains(articleTitle, clean) {
			titleMatches++
		}
		if strings.Contains(articleDesc, clean) {
			descMatches++
		}
	}
	if titleMatches > 0 {
		score += float64(titleMatches * titleMatchWeight)
		reasons = append(reasons, fmt.Sprintf("title_match:%d", titleMatches))
	}
	if descMatches > 0 {
		score += float64(descMatches * descMatchWeight)
		reasons = append(reasons, fmt.Sprintf("desc_match:%d", descMatches))
	}

	for _, entity := range entityPattern.FindAllString(event.Title, -1) {
		if strings.Contains(articleTitle, strings.ToLower(entity)) {
			score += entityMatchWeight
			reasons = append(reasons, "entity:"+entity)
		}
	}

	if !article.PublishedAt.IsZero() {
		daysOld := int(now.Sub(article.PublishedAt).Hours() / 24)
		if daysOld <= 1 {
			score += veryRecentBonus
			reasons = append(reasons, "very_recent")
		} else if daysOld <= 3 {
			score += recentBonus
			reasons = append(reasons, "recent")
		}
	}

	sourceLower := strings.ToLower(article.SourceName)
	for _, quality := range qualitySources {
		if strings.Contains(sourceLower, quality) {
			score += qualityBonus
			reasons = append(reasons, "quality_source")
			break
		}
	}

	return ScoredArticle{Article: article, Score: score, MatchReasons: reasons}
}
