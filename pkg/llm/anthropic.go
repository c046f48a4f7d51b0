package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.ModelClaudeHaiku4_5,
		modelName: "claude-4.5-haiku",
	}
}

func (c *AnthropicClient) SummarizeEvent(eventTitle, eventDescription string, articles []ArticleInput, marketPrice float64) (*EventSummary, error) {
	if len(articles) == 0 {
		return noNewsSummary(eventTitle), nil
	}

	userPrompt := buildUserPrompt(eventTitle, eventDescription, articles, marketPrice)

	resp, err := c.client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	content := cleanJSONResponse(resp.Content[0].Text)

	var parsed struct {
		Summary    string   `json:"summary"`
		KeyPoints  []string `json:"key_points"`
		Sentiment  string   `json:"sentiment"`
		Confidence string   `json:"confidence"`
	}

	err = json.Unmarshal([]byte(content), &parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	return &EventSummary{
		EventTitle:  eventTitle,
		Summary:     parsed.Summary,
		KeyPoints:   parsed.KeyPoints,
		Sentiment:   parsed.Sentiment,
		Confidence:  parsed.Confidence,
		SourcesUsed: len(articles),
	}, nil
}

// cleanJSONResponse strips markdown fences and surrounding prose from a model
// reply so only the JSON object remains.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
