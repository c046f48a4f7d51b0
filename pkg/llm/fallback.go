package llm

import "fmt"

const maxFallbackPoints = 3

// FallbackSummary builds a deterministic summary without any AI call, used
// when no LLM is configured or the request failed.
func FallbackSummary(eventTitle string, articles []ArticleInput) *EventSummary {
	if len(articles) == 0 {
		return &EventSummary{
			EventTitle: eventTitle,
			Summary:    "No news articles found.",
			Sentiment:  "neutral",
			Confidence: "low",
		}
	}

	var keyPoints []string
	for i, a := range articles {
		if i == maxFallbackPoints {
			break
		}
		keyPoints = append(keyPoints, fmt.Sprintf("[%s] %s", a.SourceName, truncate(a.Title, 80)))
	}

	return &EventSummary{
		EventTitle:  eventTitle,
		Summary:     fmt.Sprintf("Found %d relevant news articles. AI summary unavailable.", len(articles)),
		KeyPoints:   keyPoints,
		Sentiment:   "neutral",
		Confidence:  "low",
		SourcesUsed: len(articles),
	}
}

func noNewsSummary(eventTitle string) *EventSummary {
	return &EventSummary{
		EventTitle: eventTitle,
		Summary:    "No relevant news articles found for this event.",
		KeyPoints:  []string{"No recent news coverage"},
		Sentiment:  "neutral",
		Confidence: "low",
	}
}
