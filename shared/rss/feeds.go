package rss

import (
	"strings"

	"topstories/types"
)

// feedPresets lists the top-story feeds in display order.
var feedPresets = []types.FeedSource{
	{Name: "Fox", URL: "https://moxie.foxnews.com/google-publisher/politics.xml"},
	{Name: "NBC", URL: "https://feeds.nbcnews.com/nbcnews/public/news"},
	{Name: "NYPost - Politics", URL: "https://nypost.com/feed/"},
	{Name: "NYPost - US News", URL: "https://nypost.com/us-news/feed/"},
	{Name: "CBS", URL: "https://www.cbsnews.com/latest/rss/politics"},
	{Name: "ABC", URL: "https://abcnews.go.com/abcnews/politicsheadlines"},
	{Name: "Guardian", URL: "https://www.theguardian.com/us-news/us-politics/rss"},
}

// homepagePresets are scraped directly; their feeds are missing or unusable.
var homepagePresets = []types.HomepageSource{
	{Name: "AP", URL: "https://apnews.com/politics", Selector: "a[href*='/article/']"},
	{Name: "Reuters", URL: "https://www.reuters.com/world/us/", Selector: "a[data-testid='Heading']"},
}

// FeedSources returns a copy of the feed table.
func FeedSources() []types.FeedSource {
	out := make([]types.FeedSource, len(feedPresets))
	copy(out, feedPresets)
	return out
}

// HomepageSources returns a copy of the homepage table.
func HomepageSources() []types.HomepageSource {
	out := make([]types.HomepageSource, len(homepagePresets))
	copy(out, homepagePresets)
	return out
}

// ResolveSource resolves a feed name to its source.
// Unknown names that look like URLs are returned as an ad-hoc source named after the URL.
func ResolveSource(input string) (types.FeedSource, bool) {
	for _, s := range feedPresets {
		if s.Name == input {
			return s, true
		}
	}
	if hasScheme(input) {
		return types.FeedSource{Name: input, URL: input}, true
	}
	return types.FeedSource{}, false
}

// SelectSources resolves each name in order. An empty list selects every preset.
func SelectSources(names []string) ([]types.FeedSource, error) {
	if len(names) == 0 {
		return FeedSources(), nil
	}
	out := make([]types.FeedSource, 0, len(names))
	for _, n := range names {
		s, ok := ResolveSource(n)
		if !ok {
			return nil, &UnknownSourceError{Name: n}
		}
		out = append(out, s)
	}
	return out, nil
}

// UnknownSourceError is returned for names that match no preset and are not URLs.
type UnknownSourceError struct {
	Name string
}

func (e *UnknownSourceError) Error() string {
	return "unknown feed source: " + e.Name
}

func hasScheme(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
