package handler

type ArticleResponse struct {
	SourceName     string  `json:"source_name"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	URL            string  `json:"url"`
	ImageURL       string  `json:"image_url"`
	PublishedAt    string  `json:"published_at,omitempty"`
	RelevanceScore float64 `json:"relevance_score"`
}

type MarketResponse struct {
	ID       string    `json:"id"`
	Question string    `json:"question"`
	Outcomes []string  `json:"outcomes"`
	Prices   []float64 `json:"prices"`
}

type EventSummaryResponse struct {
	Summary     string   `json:"summary"`
	KeyPoints   []string `json:"key_points"`
	Sentiment   string   `json:"sentiment"`
	Confidence  string   `json:"confidence"`
	SourcesUsed int      `json:"sources_used"`
}

type EventResponse struct {
	ID          string                `json:"id"`
	Slug        string                `json:"slug"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Tags        []string              `json:"tags"`
	StartDate   string                `json:"start_date,omitempty"`
	EndDate     string                `json:"end_date,omitempty"`
	Volume      float64               `json:"volume"`
	Active      bool                  `json:"active"`
	Closed      bool                  `json:"closed"`
	Markets     []MarketResponse      `json:"markets"`
	Articles    []ArticleResponse     `json:"articles"`
	Summary     *EventSummaryResponse `json:"summary,omitempty"`
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
	Total  int             `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

type SearchResponse struct {
	Query   string          `json:"query"`
	Results []EventResponse `json:"results"`
	Count   int             `json:"count"`
}

type HealthResponse struct {
	Status   string          `json:"status"`
	Version  string          `json:"version"`
	Services map[string]bool `json:"services"`
}
