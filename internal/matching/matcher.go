package matching

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/frtsoysal/newsapi/pkg/news"
	"github.com/frtsoysal/newsapi/pkg/polymarket"
)

const (
	DefaultMaxArticles = 5
	DefaultMinScore    = 2.0

	// fetchPageSize exceeds DefaultMaxArticles so the scorer picks from a
	// larger candidate pool than the caller asked for.
	fetchPageSize = 20
)

// Matcher runs the matching pipeline for one event at a time. It holds no
// per-call state and is safe for concurrent use.
type Matcher struct {
	searcher news.Searcher
	now      func() time.Time
}

func NewMatcher(searcher news.Searcher) *Matcher {
	return &Matcher{searcher: searcher, now: time.Now}
}

// MatchNewsToEvent fetches, scores, filters, and ranks news for an event. A
// failed news search is logged and yields an empty result; it is never
// propagated. The result is sorted by score descending, holds no article
// below minScore, and is at most maxArticles long; ties keep fetch order.
func (m *Matcher) MatchNewsToEvent(event polymarket.Event, maxArticles int, minScore float64) []ScoredArticle {
	if maxArticles <= 0 {
		maxArticles = DefaultMaxArticles
	}
	now := m.now()

	queryTerms := buildQueryTerms(event, DefaultMaxTerms)
	query := strings.Join(queryTerms, " ")

	from, to := TimeWindow(event, now)

	articles, _, err := m.searcher.Search(query, from, to, news.SortRelevancy, fetchPageSize)
	if err != nil {
		slog.Error("news search failed", "event", event.Slug, "query", query, "error", err)
		return nil
	}

	var scored []ScoredArticle
	for _, article := range articles {
		sa := ScoreArticle(article, event, queryTerms, now)
		if sa.Score >= minScore {
			scored = append(scored, sa)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxArticles {
		scored = scored[:maxArticles]
	}
	return scored
}
