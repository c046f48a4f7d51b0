package llm

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a financial analyst assistant that summarizes news for prediction market events.

Your task:
1. Analyze the provided news articles related to a prediction market event
2. Generate a concise, objective summary
3. Extract key points that might influence the market
4. Assess the overall sentiment (bullish = event likely to happen, bearish = unlikely, neutral = unclear)
5. Rate your confidence based on news quality and relevance

IMPORTANT:
- Be objective, don't predict outcomes
- Focus on facts from the news
- Note any conflicting information
- Keep summary under 150 words
- Return JSON format only

Output as JSON only, no other text:
{
  "summary": "Brief 2-3 sentence overview of the situation",
  "key_points": ["Point 1", "Point 2", "Point 3"],
  "sentiment": "bullish|bearish|neutral",
  "confidence": "high|medium|low"
}`

const (
	maxPromptArticles   = 5
	maxDescriptionChars = 200
	maxEventDescription = 300
)

func buildUserPrompt(eventTitle, eventDescription string, articles []ArticleInput, marketPrice float64) string {
	var sb strings.Builder

	sb.WriteString("Prediction Market Event:\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", eventTitle))

	description := "N/A"
	if eventDescription != "" {
		description = truncate(eventDescription, maxEventDescription)
	}
	sb.WriteString(fmt.Sprintf("Description: %s\n", description))

	price := "N/A"
	if marketPrice > 0 {
		price = fmt.Sprintf("%.0f%% Yes", marketPrice*100)
	}
	sb.WriteString(fmt.Sprintf("Current Market Price: %s\n", price))

	sb.WriteString("\nRelated News Articles:\n")
	for i, a := range articles {
		if i == maxPromptArticles {
			break
		}
		sb.WriteString(fmt.Sprintf("\n%d. [%s] %s\n", i+1, a.SourceName, a.Title))
		if a.Description != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", truncate(a.Description, maxDescriptionChars)))
		}
	}

	return sb.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
