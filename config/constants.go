package config

import "time"

// Aggregator Constants
const (
	// AggregatorHost is the redirect domain whose links must be resolved
	AggregatorHost = "news.google.com"

	// AggregatorTagPrefix marks entry IDs relayed through the aggregator
	AggregatorTagPrefix = "tag:news.google.com"
)

// HTTP Timeout Constants
const (
	// FeedTimeout bounds a single feed download
	FeedTimeout = 20 * time.Second

	// RedirectTimeout bounds fetching an aggregator redirect page
	RedirectTimeout = 5 * time.Second

	// PrimaryTimeout bounds the primary article fetch
	PrimaryTimeout = 10 * time.Second

	// FallbackTimeout bounds the fallback article fetch and homepage scrapes
	FallbackTimeout = 15 * time.Second
)

// User Agent Constants
const (
	// PrimaryUserAgent is sent by the feed parser and primary extractor
	PrimaryUserAgent = "topstories/1.0 (+article extractor)"

	// FallbackUserAgent is sent on direct HTML fetches
	FallbackUserAgent = "Mozilla/5.0 (compatible; NewsScraper/1.0)"
)

// Worker Constants
const (
	// DefaultExtractWorkers is the extraction pool size per batch
	DefaultExtractWorkers = 5

	// DefaultWatchSchedule runs a collection at the top of every hour
	DefaultWatchSchedule = "0 * * * *"
)
