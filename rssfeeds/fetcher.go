package rssfeeds

import (
	"context"
	"fmt"
	"net/http"

	"topstories/config"
	"topstories/types"

	"github.com/mmcdole/gofeed"
)

// FetchFeed retrieves and parses an RSS/Atom feed into entries, in feed order.
func FetchFeed(ctx context.Context, client *http.Client, feedURL string) ([]types.FeedEntry, error) {
	parser := gofeed.NewParser()
	parser.UserAgent = config.PrimaryUserAgent
	if client != nil {
		parser.Client = client
	}

	ctx, cancel := context.WithTimeout(ctx, config.FeedTimeout)
	defer cancel()

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	return entriesFromFeed(feed), nil
}

func entriesFromFeed(feed *gofeed.Feed) []types.FeedEntry {
	entries := make([]types.FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		link := item.Link
		if link == "" && len(item.Links) > 0 {
			link = item.Links[0]
		}

		// Get description/summary
		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		entries = append(entries, types.FeedEntry{
			Link:            link,
			Title:           item.Title,
			ID:              item.GUID,
			Summary:         summary,
			Published:       item.Published,
			Updated:         item.Updated,
			PublishedParsed: item.PublishedParsed,
			UpdatedParsed:   item.UpdatedParsed,
		})
	}
	return entries
}
