package news

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const newsAPIBase = "https://newsapi.org/v2"

const maxPageSize = 100

type NewsAPIClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

// Search queries the /everything endpoint. Zero from/to values leave the
// corresponding bound unset. Returns the articles and the API's total result
// count, which can exceed len(articles).
func (c *NewsAPIClient) Search(query string, from, to time.Time, sortBy SortBy, pageSize int) ([]Article, int, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", string(sortBy))
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	params.Set("pageSize", strconv.Itoa(pageSize))
	if !from.IsZero() {
		params.Set("from", from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		params.Set("to", to.Format("2006-01-02"))
	}

	raw, err := c.get("/everything", params)
	if err != nil {
		return nil, 0, err
	}

	return parseArticles(raw.Articles), raw.TotalResults, nil
}

// TopHeadlines queries the /top-headlines endpoint for a country feed.
func (c *NewsAPIClient) TopHeadlines(country string, pageSize int) ([]Article, int, error) {
	params := url.Values{}
	if country == "" {
		country = "us"
	}
	params.Set("country", country)
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	params.Set("pageSize", strconv.Itoa(pageSize))

	raw, err := c.get("/top-headlines", params)
	if err != nil {
		return nil, 0, err
	}

	return parseArticles(raw.Articles), raw.TotalResults, nil
}

func (c *NewsAPIClient) get(endpoint string, params url.Values) (*newsAPIResponse, error) {
	params.Set("apiKey", c.apiKey)

	resp, err := c.httpClient.Get(newsAPIBase + endpoint + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	// NewsAPI answers errors with a JSON body too, so decode before checking
	// the status code to surface the API's own message.
	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	if raw.Status != "ok" {
		if raw.Message != "" {
			return nil, fmt.Errorf("newsapi error: %s", raw.Message)
		}
		return nil, fmt.Errorf("newsapi returned status %d", resp.StatusCode)
	}

	return &raw, nil
}

func parseArticles(items []newsAPIArticle) []Article {
	articles := make([]Article, 0, len(items))
	for _, item := range items {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			SourceID:    item.Source.ID,
			SourceName:  item.Source.Name,
			Author:      item.Author,
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			ImageURL:    item.URLToImage,
			PublishedAt: publishedAt,
			Content:     item.Content,
		})
	}
	return articles
}

type newsAPIResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source      newsAPISource `json:"source"`
	Author      string        `json:"author"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	URLToImage  string        `json:"urlToImage"`
	PublishedAt string        `json:"publishedAt"`
	Content     string        `json:"content"`
}

type newsAPISource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
