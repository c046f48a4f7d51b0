package news

import "time"

type Article struct {
	SourceID    string
	SourceName  string
	Author      string
	Title       string
	Description string
	URL         string
	ImageURL    string
	PublishedAt time.Time
	Content     string
}

type SortBy string

const (
	SortRelevancy   SortBy = "relevancy"
	SortPopularity  SortBy = "popularity"
	SortPublishedAt SortBy = "publishedAt"
)

type Searcher interface {
	Search(query string, from, to time.Time, sortBy SortBy, pageSize int) ([]Article, int, error)
}
