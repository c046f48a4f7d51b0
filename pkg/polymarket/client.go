package polymarket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const gammaAPIBase = "https://gamma-api.polymarket.com"

// Market is a single outcome market under an event.
type Market struct {
	ID            string
	Question      string
	Slug          string
	Outcomes      []string
	OutcomePrices []float64
	Volume        float64
	Active        bool
	Closed        bool
}

// Event is a prediction-market event. StartDate and EndDate are zero when the
// API did not supply them.
type Event struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Category    string
	Tags        []string
	StartDate   time.Time
	EndDate     time.Time
	Active      bool
	Closed      bool
	Volume      float64
	Markets     []Market
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:    gammaAPIBase,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetEvents fetches events ordered by the given field (volume, startDate,
// endDate).
func (c *Client) GetEvents(limit, offset int, active, closed bool, order string, ascending bool) ([]Event, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("active", strconv.FormatBool(active))
	params.Set("closed", strconv.FormatBool(closed))
	params.Set("order", order)
	params.Set("ascending", strconv.FormatBool(ascending))

	return c.fetchEvents(params)
}

// GetEventBySlug looks up a single event. Returns nil without error when no
// event carries the slug.
func (c *Client) GetEventBySlug(slug string) (*Event, error) {
	params := url.Values{}
	params.Set("slug", slug)

	events, err := c.fetchEvents(params)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

// SearchEvents filters active events by a case-insensitive substring over
// title, description, and tags. The Gamma API has no search endpoint, so this
// fetches a page and filters client-side.
func (c *Client) SearchEvents(query string, limit int) ([]Event, error) {
	events, err := c.GetEvents(100, 0, true, false, "volume", false)
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(query)
	var matches []Event
	for _, event := range events {
		searchable := strings.ToLower(event.Title + " " + event.Description + " " + strings.Join(event.Tags, " "))
		if strings.Contains(searchable, queryLower) {
			matches = append(matches, event)
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches, nil
}

func (c *Client) fetchEvents(params url.Values) ([]Event, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/events?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("gamma fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gamma returned status %d", resp.StatusCode)
	}

	// The API answers with either a bare array or an object wrapping one.
	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("gamma decode: %w", err)
	}

	var items []rawEvent
	if err := json.Unmarshal(body, &items); err != nil {
		var wrapped struct {
			Events []rawEvent `json:"events"`
			Data   []rawEvent `json:"data"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("gamma decode: %w", err)
		}
		items = wrapped.Events
		if len(items) == 0 {
			items = wrapped.Data
		}
	}

	events := make([]Event, 0, len(items))
	for _, item := range items {
		events = append(events, item.toEvent())
	}
	return events, nil
}

type rawEvent struct {
	ID          json.RawMessage   `json:"id"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	StartDate   string            `json:"startDate"`
	EndDate     string            `json:"endDate"`
	Active      bool              `json:"active"`
	Closed      bool              `json:"closed"`
	Volume      json.RawMessage   `json:"volume"`
	Tags        []json.RawMessage `json:"tags"`
	Markets     []rawMarket       `json:"markets"`
}

type rawMarket struct {
	ID            json.RawMessage `json:"id"`
	Question      string          `json:"question"`
	Slug          string          `json:"slug"`
	Outcomes      json.RawMessage `json:"outcomes"`
	OutcomePrices json.RawMessage `json:"outcomePrices"`
	Volume        json.RawMessage `json:"volume"`
	VolumeNum     json.RawMessage `json:"volumeNum"`
	Active        bool            `json:"active"`
	Closed        bool            `json:"closed"`
}

func (re rawEvent) toEvent() Event {
	// Tags arrive either as {"label": "..."} objects or as plain strings.
	tags := make([]string, 0, len(re.Tags))
	for _, t := range re.Tags {
		var label string
		if err := json.Unmarshal(t, &label); err == nil {
			tags = append(tags, label)
			continue
		}
		var obj struct {
			Label string `json:"label"`
		}
		if err := json.Unmarshal(t, &obj); err == nil && obj.Label != "" {
			tags = append(tags, obj.Label)
		}
	}

	markets := make([]Market, 0, len(re.Markets))
	for _, m := range re.Markets {
		volume := decodeFloat(m.VolumeNum)
		if volume == 0 {
			volume = decodeFloat(m.Volume)
		}
		markets = append(markets, Market{
			ID:            decodeID(m.ID),
			Question:      m.Question,
			Slug:          m.Slug,
			Outcomes:      decodeStringList(m.Outcomes),
			OutcomePrices: decodeFloatList(m.OutcomePrices),
			Volume:        volume,
			Active:        m.Active,
			Closed:        m.Closed,
		})
	}

	return Event{
		ID:          decodeID(re.ID),
		Slug:        re.Slug,
		Title:       re.Title,
		Description: re.Description,
		Category:    re.Category,
		Tags:        tags,
		StartDate:   parseDate(re.StartDate),
		EndDate:     parseDate(re.EndDate),
		Active:      re.Active,
		Closed:      re.Closed,
		Volume:      decodeFloat(re.Volume),
		Markets:     markets,
	}
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// decodeID accepts string or numeric ids.
func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// decodeFloat accepts numbers and numeric strings.
func decodeFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}

// decodeStringList accepts a JSON array or a JSON-encoded string holding one,
// which is how the Gamma API ships market outcomes.
func decodeStringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &list); err == nil {
			return list
		}
	}
	return nil
}

func decodeFloatList(raw json.RawMessage) []float64 {
	items := decodeStringList(raw)
	if items == nil {
		var list []float64
		if err := json.Unmarshal(raw, &list); err == nil {
			return list
		}
		return nil
	}
	prices := make([]float64, 0, len(items))
	for _, item := range items {
		f, err := strconv.ParseFloat(item, 64)
		if err != nil {
			continue
		}
		prices = append(prices, f)
	}
	return prices
}
