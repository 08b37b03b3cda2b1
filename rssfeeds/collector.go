package rssfeeds

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"topstories/config"
	"topstories/deduplication"
	"topstories/types"
)

// Collector turns feed sources into deduplicated, filtered article links.
// The zero value is not usable; use NewCollector.
type Collector struct {
	// Client is used for feed downloads and redirect pages.
	Client *http.Client
	// UserAgent is sent when resolving aggregator redirects.
	UserAgent string
	// AggregatorHost is the redirect domain resolved before filtering.
	AggregatorHost string
	// AggregatorTagPrefix identifies entries relayed through the aggregator.
	AggregatorTagPrefix string
	// Now and Location define "today" for the date filter.
	Now      func() time.Time
	Location *time.Location

	fetch func(ctx context.Context, client *http.Client, feedURL string) ([]types.FeedEntry, error)
}

// NewCollector returns a Collector with production defaults
func NewCollector() *Collector {
	return &Collector{
		Client:              &http.Client{},
		UserAgent:           config.FallbackUserAgent,
		AggregatorHost:      config.AggregatorHost,
		AggregatorTagPrefix: config.AggregatorTagPrefix,
		Now:                 time.Now,
		Location:            time.Local,
		fetch:               FetchFeed,
	}
}

// CollectAll fetches every source in order. A source whose feed cannot be
// fetched yields an empty link list; the remaining sources still run.
func (c *Collector) CollectAll(ctx context.Context, sources []types.FeedSource) types.LinkSets {
	out := make(types.LinkSets, 0, len(sources))
	for _, src := range sources {
		log.Printf("Fetching RSS for %s...", src.Name)
		out = append(out, types.SourceLinks{Source: src.Name, Links: c.Links(ctx, src)})
	}
	return out
}

// Links returns the accepted links for one source, never nil.
func (c *Collector) Links(ctx context.Context, src types.FeedSource) []string {
	entries, err := c.FetchSource(ctx, src.URL)
	if err != nil {
		log.Printf("  ❌ %s: %v", src.Name, err)
		return []string{}
	}

	links := make([]string, 0, len(entries))
	for _, e := range entries {
		links = append(links, e.Link)
	}
	log.Printf("  ✅ %s: %d link(s)", src.Name, len(links))
	return links
}

// FetchSource downloads one feed and runs the filtering pass over it.
func (c *Collector) FetchSource(ctx context.Context, feedURL string) ([]types.AcceptedEntry, error) {
	entries, err := c.fetch(ctx, c.Client, feedURL)
	if err != nil {
		return nil, err
	}
	return c.Filter(ctx, entries), nil
}

// Filter applies the decision procedure to entries in order and returns the
// accepted ones. Dedup state is local to this call.
func (c *Collector) Filter(ctx context.Context, entries []types.FeedEntry) []types.AcceptedEntry {
	seen := deduplication.NewLinkSet()
	accepted := make([]types.AcceptedEntry, 0, len(entries))
	for _, e := range entries {
		decision, link := c.Decide(ctx, e, seen)
		if decision != Accept {
			continue
		}
		accepted = append(accepted, types.AcceptedEntry{
			Title:     e.Title,
			Link:      link,
			Published: e.Published,
			Summary:   e.Summary,
		})
	}
	return accepted
}

// Decide evaluates a single entry. It returns the verdict and the resolved
// link; an accepted link is recorded in seen.
func (c *Collector) Decide(ctx context.Context, e types.FeedEntry, seen *deduplication.LinkSet) (Decision, string) {
	link := c.ResolveLink(ctx, strings.TrimSpace(e.Link))

	if d := screenURL(link); d != Accept {
		return d, link
	}

	// Aggregator relay timestamps are unreliable, so they skip the date check
	if !c.IsAggregatorEntry(e) {
		ts, ok := e.Timestamp(c.Location)
		if !ok || !IsSameLocalDay(ts, c.Now(), c.Location) {
			return RejectStale, link
		}
	}

	if !seen.Add(link) {
		return RejectDuplicate, link
	}
	return Accept, link
}

// IsAggregatorEntry reports whether the entry was relayed by the aggregator.
func (c *Collector) IsAggregatorEntry(e types.FeedEntry) bool {
	return c.AggregatorTagPrefix != "" && strings.HasPrefix(e.ID, c.AggregatorTagPrefix)
}

// ResolveLink follows aggregator redirects. Any failure returns raw unchanged.
func (c *Collector) ResolveLink(ctx context.Context, raw string) string {
	if raw == "" || !isAggregatorLink(raw, c.AggregatorHost) {
		return raw
	}
	target, err := resolveRedirect(ctx, c.Client, c.UserAgent, raw)
	if err != nil {
		log.Printf("  ⚠️  Redirect resolution failed for %s: %v", raw, err)
		return raw
	}
	return target
}
