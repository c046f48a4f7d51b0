package matching

import (
	"reflect"
	"testing"
	"time"

	"github.com/frtsoysal/newsapi/pkg/news"
	"github.com/frtsoysal/newsapi/pkg/polymarket"

	"github.com/go-playground/assert/v2"
)

var scoreNow = time.Date(2026, 2, 26, 12, 0, 0, 0, time.UTC)

func TestScoreArticleTitleAndDescriptionMatches(t *testing.T) {
	article := news.Article{
		Title:       "Fed expected to cut rates next month",
		Description: "Analysts expect the fed to lower rates after inflation cooled.",
	}
	event := polymarket.Event{Title: "Fed rate decision"}

	scored := ScoreArticle(article, event, []string{"fed", "rates", "inflation"}, scoreNow)

	// fed + rates in the title (2*3), all three in the description (3*1).
	assert.Equal(t, 9.0, scored.Score)
	assert.Equal(t, []string{"title_match:2", "desc_match:3"}, scored.MatchReasons)
}

func TestScoreArticleQuotedEntityMatchesAsPhrase(t *testing.T) {
	article := news.Article{Title: "Elon Musk announces new venture"}
	event := polymarket.Event{Title: "Startup launch"}

	scored := ScoreArticle(article, event, []string{`"Elon Musk"`}, scoreNow)

	assert.Equal(t, 3.0, scored.Score)
	assert.Equal(t, []string{"title_match:1"}, scored.MatchReasons)
}

func TestScoreArticleEntityBonus(t *testing.T) {
	article := news.Article{Title: "Federal Reserve signals patience on rate cuts"}
	event := polymarket.Event{Title: "Will the Federal Reserve cut rates?"}

	scored := ScoreArticle(article, event, nil, scoreNow)

	assert.Equal(t, 5.0, scored.Score)
	assert.Equal(t, []string{"entity:Federal Reserve"}, scored.MatchReasons)
}

func TestScoreArticleRecencyBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		published time.Time
		bonus     float64
		reason    string
	}{
		{name: "one day old", published: scoreNow.AddDate(0, 0, -1), bonus: 2, reason: "very_recent"},
		{name: "two days old", published: scoreNow.AddDate(0, 0, -2), bonus: 1, reason: "recent"},
		{name: "three days old", published: scoreNow.AddDate(0, 0, -3), bonus: 1, reason: "recent"},
		{name: "four days old", published: scoreNow.AddDate(0, 0, -4), bonus: 0, reason: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article := news.Article{Title: "unrelated", PublishedAt: tt.published}
			scored := ScoreArticle(article, polymarket.Event{Title: "something"}, nil, scoreNow)

			if scored.Score != tt.bonus {
				t.Errorf("score = %v, want %v", scored.Score, tt.bonus)
			}
			if tt.reason == "" {
				if len(scored.MatchReasons) != 0 {
					t.Errorf("unexpected reasons %v", scored.MatchReasons)
				}
			} else if !reflect.DeepEqual(scored.MatchReasons, []string{tt.reason}) {
				t.Errorf("reasons = %v, want [%s]", scored.MatchReasons, tt.reason)
			}
		})
	}
}

func TestScoreArticleMissingPublishDateSkipsRecency(t *testing.T) {
	article := news.Article{Title: "unrelated"}

	scored := ScoreArticle(article, polymarket.Event{Title: "something"}, nil, scoreNow)

	assert.Equal(t, 0.0, scored.Score)
	assert.Equal(t, 0, len(scored.MatchReasons))
}

func TestScoreArticleQualitySource(t *testing.T) {
	article := news.Article{Title: "unrelated", SourceName: "Reuters UK"}

	scored := ScoreArticle(article, polymarket.Event{Title: "something"}, nil, scoreNow)

	assert.Equal(t, 1.0, scored.Score)
	assert.Equal(t, []string{"quality_source"}, scored.MatchReasons)
}

func TestScoreArticleReasonOrder(t *testing.T) {
	article := news.Article{
		Title:       "Federal Reserve holds rates, says Reuters",
		Description: "The fed kept rates steady.",
		SourceName:  "Reuters",
		PublishedAt: scoreNow.Add(-2 * time.Hour),
	}
	event := polymarket.Event{Title: "Federal Reserve rate decision"}

	scored := ScoreArticle(article, event, []string{"fed", "rates"}, scoreNow)

	// title (fed in "federal", rates): 2*3; desc (fed, rates): 2*1;
	// entity Federal Reserve: 5; very recent: 2; quality source: 1.
	assert.Equal(t, 16.0, scored.Score)
	assert.Equal(t, []string{
		"title_match:2",
		"desc_match:2",
		"entity:Federal Reserve",
		"very_recent",
		"quality_source",
	}, scored.MatchReasons)
}

func TestScoreArticleIdempotent(t *testing.T) {
	article := news.Article{
		Title:       "Fed cuts rates",
		Description: "Rates lowered.",
		SourceName:  "Bloomberg",
		PublishedAt: scoreNow.AddDate(0, 0, -2),
	}
	event := polymarket.Event{Title: "Fed rate decision"}
	terms := []string{"fed", "rates"}

	first := ScoreArticle(article, event, terms, scoreNow)
	second := ScoreArticle(article, event, terms, scoreNow)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.MatchReasons, second.MatchReasons)
}
