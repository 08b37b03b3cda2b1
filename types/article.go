package types

import "time"

// Strategy names the extraction path that produced an article.
type Strategy string

const (
	StrategyPrimary  Strategy = "primary"
	StrategyFallback Strategy = "fallback"
)

// Article is the structured content extracted from one page
type Article struct {
	Title       string     `json:"title"`
	Text        string     `json:"text"`
	Authors     []string   `json:"authors"`
	PublishDate *time.Time `json:"publish_date"`
	URL         string     `json:"url"`
}

// ExtractionResult is the outcome of extracting one URL. A failed result
// carries no article, only the error that ended the attempt.
type ExtractionResult struct {
	URL      string
	Article  *Article
	Strategy Strategy
	Err      error
}

// OK reports whether extraction produced an article.
func (r ExtractionResult) OK() bool {
	return r.Article != nil
}
