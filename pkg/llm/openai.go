package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}
}

func (c *OpenAIClient) SummarizeEvent(eventTitle, eventDescription string, articles []ArticleInput, marketPrice float64) (*EventSummary, error) {
	if len(articles) == 0 {
		return noNewsSummary(eventTitle), nil
	}

	userPrompt := buildUserPrompt(eventTitle, eventDescription, articles, marketPrice)

	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(500),
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

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
