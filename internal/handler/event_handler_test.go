package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frtsoysal/newsapi/internal/matching"
	"github.com/frtsoysal/newsapi/pkg/llm"
	"github.com/frtsoysal/newsapi/pkg/news"
	"github.com/frtsoysal/newsapi/pkg/polymarket"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeEventSource struct {
	events []polymarket.Event
	event  *polymarket.Event
	err    error
}

func (f *fakeEventSource) GetEvents(limit, offset int, active, closed bool, order string, ascending bool) ([]polymarket.Event, error) {
	return f.events, f.err
}

func (f *fakeEventSource) GetEventBySlug(slug string) (*polymarket.Event, error) {
	return f.event, f.err
}

func (f *fakeEventSource) SearchEvents(query string, limit int) ([]polymarket.Event, error) {
	return f.events, f.err
}

type fakeMatcher struct {
	articles    []matching.ScoredArticle
	maxArticles int
}

func (f *fakeMatcher) MatchNewsToEvent(event polymarket.Event, maxArticles int, minScore float64) []matching.ScoredArticle {
	f.maxArticles = maxArticles
	return f.articles
}

type fakeHeadlines struct {
	articles []news.Article
	err      error
}

func (f *fakeHeadlines) TopHeadlines(country string, pageSize int) ([]news.Article, int, error) {
	return f.articles, len(f.articles), f.err
}

type fakeSummarizer struct {
	summary *llm.EventSummary
	err     error
}

func (f *fakeSummarizer) SummarizeEvent(eventTitle, eventDescription string, articles []llm.ArticleInput, marketPrice float64) (*llm.EventSummary, error) {
	return f.summary, f.err
}

func testEvent() polymarket.Event {
	return polymarket.Event{
		ID:    "100",
		Slug:  "fed-rate-cut-2025",
		Title: "Fed rate cut by December?",
		Tags:  []string{"Economy"},
		Markets: []polymarket.Market{
			{
				ID:            "200",
				Question:      "Will the Fed cut rates?",
				Outcomes:      []string{"Yes", "No"},
				OutcomePrices: []float64{0.62, 0.38},
			},
		},
		Active: true,
		Volume: 1500000,
	}
}

func testScoredArticle() matching.ScoredArticle {
	return matching.ScoredArticle{
		Article: news.Article{
			SourceName:  "Reuters",
			Title:       "Fed signals rate cut",
			URL:         "https://example.com/fed",
			PublishedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		Score:        8,
		MatchReasons: []string{"title_match:2"},
	}
}

func newTestRouter(events EventSource, matcher NewsMatcher, headlines HeadlineSource, summarizer llm.Summarizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewEventHandler(events, matcher, headlines, summarizer)
	v1 := r.Group("/api/v1")
	v1.GET("/health", h.GetHealth)
	v1.GET("/events", h.GetEvents)
	v1.GET("/events/:slug", h.GetEvent)
	v1.GET("/events/:slug/news", h.GetEventNews)
	v1.GET("/search", h.SearchEvents)
	return r
}

func TestGetEvents_ReturnsMatchedNews(t *testing.T) {
	source := &fakeEventSource{events: []polymarket.Event{testEvent()}}
	matcher := &fakeMatcher{articles: []matching.ScoredArticle{testScoredArticle()}}

	r := newTestRouter(source, matcher, &fakeHeadlines{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/events?limit=5", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res EventListResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 5, res.Limit)
	assert.Equal(t, "fed-rate-cut-2025", res.Events[0].Slug)
	assert.Equal(t, 1, len(res.Events[0].Articles))
	assert.Equal(t, 8.0, res.Events[0].Articles[0].RelevanceScore)
	// fallback summary since no summarizer is configured
	assert.NotEqual(t, res.Events[0].Summary, nil)
}

func TestGetEvents_SkipsNewsWhenDisabled(t *testing.T) {
	source := &fakeEventSource{events: []polymarket.Event{testEvent()}}
	matcher := &fakeMatcher{articles: []matching.ScoredArticle{testScoredArticle()}}

	r := newTestRouter(source, matcher, &fakeHeadlines{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/events?include_news=false", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res EventListResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 0, len(res.Events[0].Articles))
	assert.Equal(t, res.Events[0].Summary, (*EventSummaryResponse)(nil))
}

func TestGetEvents_ClampsMaxArticles(t *testing.T) {
	source := &fakeEventSource{events: []polymarket.Event{testEvent()}}
	matcher := &fakeMatcher{}

	r := newTestRouter(source, matcher, &fakeHeadlines{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/events?max_articles=50", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, matcher.maxArticles)
}

func TestGetEvents_UpstreamError(t *testing.T) {
	source := &fakeEventSource{err: errors.New("gamma down")}

	r := newTestRouter(source, &fakeMatcher{}, &fakeHeadlines{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/events", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetEvent_UsesSummarizer(t *testing.T) {
	event := testEvent()
	source := &fakeEventSource{event: &event}
	matcher := &fakeMatcher{articles: []matching.ScoredArticle{testScoredArticle()}}
	summarizer := &fakeSummarizer{summary: &llm.EventSummary{
		EventTitle:  event.Title,
		Summary:     "Markets expect a cut.",
		KeyPoints:   []string{"Fed signals rate cut"},
		Sentiment:   "bullish",
		Confidence:  "high",
		SourcesUsed: 1,
	}}

	r := newTestRouter(source, matcher, &fakeHeadlines{}, summarizer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/events/fed-rate-cut-2025", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res EventResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Markets expect a cut.", res.Summary.Summary)
	assert.Equal(t, "bullish", res.Summary.Sentiment)
}

func TestGetEvent_FallsBackOnSummarizerError(t *testing.T) {
	event := testEvent()
	source := &fakeEventSource{event: &event}
	matcher := &fakeMatcher{articles: []matching.ScoredArticle{testScoredArticle()}}
	summarizer := &fakeSummarizer{err: errors.New("rate limited")}

	r := newTestRouter(source, matcher, &fakeHeadlines{}, summarizer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/events/fed-rate-cut-2025", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res EventResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Summary.SourcesUsed)
	assert.Equal(t, "neutral", res.Summary.Sentiment)
}

func TestGetEvent_NotFound(t *testing.T) {
	source := &fakeEventSource{}

	r := newTestRouter(source, &fakeMatcher{}, &fakeHeadlines{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/events/nope", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEventNews_ReturnsArticles(t *testing.T) {
	event := testEvent()
	source := &fakeEventSource{event: &event}
	matcher := &fakeMatcher{articles: []matching.ScoredArticle{testScoredArticle()}}

	r := newTestRouter(source, matcher, &fakeHeadlines{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/events/fed-rate-cut-2025/news", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res []ArticleResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, "Reuters", res[0].SourceName)
	assert.Equal(t, 10, matcher.maxArticles)
}

func TestSearchEvents_RejectsShortQuery(t *testing.T) {
	r := newTestRouter(&fakeEventSource{}, &fakeMatcher{}, &fakeHeadlines{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/search?q=f", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEvents_ReturnsResults(t *testing.T) {
	source := &fakeEventSource{events: []polymarket.Event{testEvent()}}

	r := newTestRouter(source, &fakeMatcher{}, &fakeHeadlines{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/search?q=fed", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res SearchResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "fed", res.Query)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, 0, len(res.Results[0].Articles))
}

func TestGetHealth_AllUp(t *testing.T) {
	source := &fakeEventSource{events: []polymarket.Event{testEvent()}}
	headlines := &fakeHeadlines{articles: []news.Article{{Title: "headline"}}}

	r := newTestRouter(source, &fakeMatcher{}, headlines, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res HealthResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, true, res.Services["polymarket"])
	assert.Equal(t, true, res.Services["newsapi"])
}

func TestGetHealth_Degraded(t *testing.T) {
	source := &fakeEventSource{events: []polymarket.Event{testEvent()}}
	headlines := &fakeHeadlines{err: errors.New("newsapi down")}

	r := newTestRouter(source, &fakeMatcher{}, headlines, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res HealthResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "degraded", res.Status)
	assert.Equal(t, false, res.Services["newsapi"])
}
