package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/frtsoysal/newsapi/internal/matching"
	"github.com/frtsoysal/newsapi/pkg/llm"
	"github.com/frtsoysal/newsapi/pkg/news"
	"github.com/frtsoysal/newsapi/pkg/polymarket"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	newsAPIKey := os.Getenv("NEWSAPI_KEY")
	if newsAPIKey == "" {
		log.Fatalf("NEWSAPI_KEY is required")
	}

	eventLimit := getEnvInt("PIPELINE_EVENT_LIMIT", 10)
	maxArticles := getEnvInt("PIPELINE_MAX_ARTICLES", matching.DefaultMaxArticles)

	newsClient := news.NewNewsAPIClient(newsAPIKey)
	marketClient := polymarket.NewClient()
	matcher := matching.NewMatcher(newsClient)

	var summarizer llm.Summarizer
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		summarizer = llm.NewOpenAIClient(key)
	} else if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		summarizer = llm.NewAnthropicClient(key)
	}

	events, err := marketClient.GetEvents(eventLimit, 0, true, false, "volume", false)
	if err != nil {
		log.Fatalf("error fetching events: %v", err)
	}

	slog.Info("matching news to events", "events", len(events), "max_articles", maxArticles)

	var matched, empty int

	now := time.Now()

	for _, event := range events {
		query := matching.BuildNewsQuery(event, matching.DefaultMaxTerms)
		from, to := matching.TimeWindow(event, now)
		slog.Info("searching news", "event", event.Slug, "query", query,
			"from", from.Format("2006-01-02"), "to", to.Format("2006-01-02"))

		articles := matcher.MatchNewsToEvent(event, maxArticles, matching.DefaultMinScore)

		if len(articles) == 0 {
			slog.Info("no relevant news", "event", event.Slug)
			empty++
			continue
		}

		matched++

		for _, sa := range articles {
			slog.Info("matched article",
				"event", event.Slug,
				"score", sa.Score,
				"reasons", sa.MatchReasons,
				"source", sa.Article.SourceName,
				"title", sa.Article.Title,
			)
		}

		if summarizer == nil {
			continue
		}

		inputs := make([]llm.ArticleInput, 0, len(articles))
		for _, sa := range articles {
			inputs = append(inputs, llm.ArticleInput{
				SourceName:  sa.Article.SourceName,
				Title:       sa.Article.Title,
				Description: sa.Article.Description,
			})
		}

		summary, err := summarizer.SummarizeEvent(event.Title, event.Description, inputs, firstYesPrice(event))
		if err != nil {
			slog.Error("error generating summary", "event", event.Slug, "error", err)
			summary = llm.FallbackSummary(event.Title, inputs)
		}

		slog.Info("event summary",
			"event", event.Slug,
			"summary", summary.Summary,
			"sentiment", summary.Sentiment,
			"confidence", summary.Confidence,
			"sources", summary.SourcesUsed,
		)
	}

	slog.Info("pipeline run complete", "events", len(events), "matched", matched, "empty", empty)
}

func firstYesPrice(event polymarket.Event) float64 {
	if len(event.Markets) > 0 && len(event.Markets[0].OutcomePrices) > 0 {
		return event.Markets[0].OutcomePrices[0]
	}
	return 0
}

func getEnvInt(name string, defaultValue int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid env value, using default", "name", name, "value", raw, "error", err)
		return defaultValue
	}
	return value
}
