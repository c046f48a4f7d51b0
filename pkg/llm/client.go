package llm

// ArticleInput is the slice of a matched article the summarizer needs.
type ArticleInput struct {
	SourceName  string
	Title       string
	Description string
}

// EventSummary is an AI-generated (or fallback) digest of the news around one
// prediction-market event.
type EventSummary struct {
	EventTitle  string
	Summary     string
	KeyPoints   []string
	Sentiment   string // bullish, bearish, neutral
	Confidence  string // high, medium, low
	SourcesUsed int
}

// Summarizer produces an event summary from ranked articles. marketPrice is
// the current Yes price in [0, 1]; pass 0 when unknown.
type Summarizer interface {
	SummarizeEvent(eventTitle, eventDescription string, articles []ArticleInput, marketPrice float64) (*EventSummary, error)
}
