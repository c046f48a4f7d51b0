package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/frtsoysal/newsapi/internal/matching"
	"github.com/frtsoysal/newsapi/pkg/llm"
	"github.com/frtsoysal/newsapi/pkg/news"
	"github.com/frtsoysal/newsapi/pkg/polymarket"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

type EventSource interface {
	GetEvents(limit, offset int, active, closed bool, order string, ascending bool) ([]polymarket.Event, error)
	GetEventBySlug(slug string) (*polymarket.Event, error)
	SearchEvents(query string, limit int) ([]polymarket.Event, error)
}

type NewsMatcher interface {
	MatchNewsToEvent(event polymarket.Event, maxArticles int, minScore float64) []matching.ScoredArticle
}

type HeadlineSource interface {
	TopHeadlines(country string, pageSize int) ([]news.Article, int, error)
}

type EventHandler struct {
	events     EventSource
	matcher    NewsMatcher
	headlines  HeadlineSource
	summarizer llm.Summarizer
}

// NewEventHandler wires the handler's collaborators. summarizer may be nil;
// the deterministic fallback is used instead.
func NewEventHandler(events EventSource, matcher NewsMatcher, headlines HeadlineSource, summarizer llm.Summarizer) *EventHandler {
	return &EventHandler{
		events:     events,
		matcher:    matcher,
		headlines:  headlines,
		summarizer: summarizer,
	}
}

func (h *EventHandler) GetEvents(c *gin.Context) {
	limit := getQueryBounded("limit", 10, 1, 50, c)
	page := getQueryBounded("page", 1, 1, 1<<30, c)
	active := getQueryBool("active", true, c)
	closed := getQueryBool("closed", false, c)
	includeNews := getQueryBool("include_news", true, c)
	includeSummary := getQueryBool("include_summary", true, c)
	maxArticles := getQueryBounded("max_articles", matching.DefaultMaxArticles, 1, 10, c)

	offset := (page - 1) * limit

	events, err := h.events.GetEvents(limit, offset, active, closed, "volume", false)
	if err != nil {
		slog.Error("error fetching events", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Market data unavailable"})
		return
	}

	results := make([]EventResponse, 0, len(events))
	for _, event := range events {
		var articles []matching.ScoredArticle
		if includeNews {
			articles = h.matcher.MatchNewsToEvent(event, maxArticles, matching.DefaultMinScore)
		}

		var summary *llm.EventSummary
		if includeSummary && len(articles) > 0 {
			summary = h.summarize(event, articles)
		}

		results = append(results, toEventResponse(event, articles, summary))
	}

	c.JSON(http.StatusOK, EventListResponse{
		Events: results,
		Total:  len(results),
		Page:   page,
		Limit:  limit,
	})
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	slug := c.Param("slug")
	maxArticles := getQueryBounded("max_articles", matching.DefaultMaxArticles, 1, 10, c)
	includeSummary := getQueryBool("include_summary", true, c)

	event, err := h.events.GetEventBySlug(slug)
	if err != nil {
		slog.Error("error fetching event", "slug", slug, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Market data unavailable"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	articles := h.matcher.MatchNewsToEvent(*event, maxArticles, matching.DefaultMinScore)

	var summary *llm.EventSummary
	if includeSummary && len(articles) > 0 {
		summary = h.summarize(*event, articles)
	}

	c.JSON(http.StatusOK, toEventResponse(*event, articles, summary))
}

func (h *EventHandler) GetEventNews(c *gin.Context) {
	slug := c.Param("slug")
	maxArticles := getQueryBounded("max_articles", 10, 1, 20, c)

	event, err := h.events.GetEventBySlug(slug)
	if err != nil {
		slog.Error("error fetching event", "slug", slug, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Market data unavailable"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	articles := h.matcher.MatchNewsToEvent(*event, maxArticles, matching.DefaultMinScore)

	res := make([]ArticleResponse, 0, len(articles))
	for _, sa := range articles {
		res = append(res, toArticleResponse(sa))
	}

	c.JSON(http.StatusOK, res)
}

func (h *EventHandler) SearchEvents(c *gin.Context) {
	query := c.Query("q")
	if len(query) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query must be at least 2 characters"})
		return
	}
	limit := getQueryBounded("limit", 10, 1, 20, c)
	includeNews := getQueryBool("include_news", false, c)

	events, err := h.events.SearchEvents(query, limit)
	if err != nil {
		slog.Error("error searching events", "query", query, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Market data unavailable"})
		return
	}

	results := make([]EventResponse, 0, len(events))
	for _, event := range events {
		var articles []matching.ScoredArticle
		if includeNews {
			articles = h.matcher.MatchNewsToEvent(event, 3, matching.DefaultMinScore)
		}
		results = append(results, toEventResponse(event, articles, nil))
	}

	c.JSON(http.StatusOK, SearchResponse{
		Query:   query,
		Results: results,
		Count:   len(results),
	})
}

func (h *EventHandler) GetHealth(c *gin.Context) {
	polyOK := false
	if events, err := h.events.GetEvents(1, 0, true, false, "volume", false); err == nil && len(events) > 0 {
		polyOK = true
	}

	newsOK := false
	if articles, _, err := h.headlines.TopHeadlines("us", 1); err == nil && len(articles) > 0 {
		newsOK = true
	}

	status := "ok"
	if !polyOK || !newsOK {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:  status,
		Version: apiVersion,
		Services: map[string]bool{
			"polymarket": polyOK,
			"newsapi":    newsOK,
		},
	})
}

func (h *EventHandler) summarize(event polymarket.Event, articles []matching.ScoredArticle) *llm.EventSummary {
	inputs := make([]llm.ArticleInput, 0, len(articles))
	for _, sa := range articles {
		inputs = append(inputs, llm.ArticleInput{
			SourceName:  sa.Article.SourceName,
			Title:       sa.Article.Title,
			Description: sa.Article.Description,
		})
	}

	if h.summarizer == nil {
		return llm.FallbackSummary(event.Title, inputs)
	}

	summary, err := h.summarizer.SummarizeEvent(event.Title, event.Description, inputs, firstOutcomePrice(event))
	if err != nil {
		slog.Error("error generating summary", "event", event.Slug, "error", err)
		return llm.FallbackSummary(event.Title, inputs)
	}
	return summary
}

// firstOutcomePrice returns the current Yes price of the event's first
// market, or 0 when unknown.
func firstOutcomePrice(event polymarket.Event) float64 {
	if len(event.Markets) > 0 && len(event.Markets[0].OutcomePrices) > 0 {
		return event.Markets[0].OutcomePrices[0]
	}
	return 0
}

func toEventResponse(event polymarket.Event, articles []matching.ScoredArticle, summary *llm.EventSummary) EventResponse {
	markets := make([]MarketResponse, 0, len(event.Markets))
	for _, m := range event.Markets {
		markets = append(markets, MarketResponse{
			ID:       m.ID,
			Question: m.Question,
			Outcomes: m.Outcomes,
			Prices:   m.OutcomePrices,
		})
	}

	articleRes := make([]ArticleResponse, 0, len(articles))
	for _, sa := range articles {
		articleRes = append(articleRes, toArticleResponse(sa))
	}

	var summaryRes *EventSummaryResponse
	if summary != nil {
		summaryRes = &EventSummaryResponse{
			Summary:     summary.Summary,
			KeyPoints:   summary.KeyPoints,
			Sentiment:   summary.Sentiment,
			Confidence:  summary.Confidence,
			SourcesUsed: summary.SourcesUsed,
		}
	}

	return EventResponse{
		ID:          event.ID,
		Slug:        event.Slug,
		Title:       event.Title,
		Description: event.Description,
		Category:    event.Category,
		Tags:        event.Tags,
		StartDate:   formatTime(event.StartDate),
		EndDate:     formatTime(event.EndDate),
		Volume:      event.Volume,
		Active:      event.Active,
		Closed:      event.Closed,
		Markets:     markets,
		Articles:    articleRes,
		Summary:     summaryRes,
	}
}

func toArticleResponse(sa matching.ScoredArticle) ArticleResponse {
	return ArticleResponse{
		SourceName:     sa.Article.SourceName,
		Title:          sa.Article.Title,
		Description:    sa.Article.Description,
		URL:            sa.Article.URL,
		ImageURL:       sa.Article.ImageURL,
		PublishedAt:    formatTime(sa.Article.PublishedAt),
		RelevanceScore: sa.Score,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}
	return value
}

func getQueryBounded(name string, defaultValue, min, max int, c *gin.Context) int {
	value := getQueryInt(name, defaultValue, c)
	if value < min {
		slog.Warn("query parameter below minimum, using default", "param", name, "value", value, "default", defaultValue)
		return defaultValue
	}
	if value > max {
		slog.Warn("query parameter exceeds max, clamping", "param", name, "value", value, "max", max)
		return max
	}
	return value
}

func getQueryBool(name string, defaultValue bool, c *gin.Context) bool {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}
	return value
}
