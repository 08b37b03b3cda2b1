package extractor

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"topstories/config"
	"topstories/types"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Extractor downloads article pages and extracts their content. The primary
// strategy reads page metadata and a readability body; the fallback refetches
// the raw HTML with its own client and user agent and keeps only title and text.
type Extractor struct {
	PrimaryClient     *http.Client
	PrimaryUserAgent  string
	FallbackClient    *http.Client
	FallbackUserAgent string
	// Workers bounds concurrent extractions within one batch.
	Workers int
}

// NewExtractor returns an Extractor with production defaults
func NewExtractor() *Extractor {
	return &Extractor{
		PrimaryClient:     &http.Client{},
		PrimaryUserAgent:  config.PrimaryUserAgent,
		FallbackClient:    &http.Client{},
		FallbackUserAgent: config.FallbackUserAgent,
		Workers:           config.DefaultExtractWorkers,
	}
}

// Extract runs the primary strategy and, on any failure, the fallback.
// A failed result has a nil Article and the error that ended the attempt.
func (e *Extractor) Extract(ctx context.Context, rawURL string) types.ExtractionResult {
	if strings.TrimSpace(rawURL) == "" {
		return types.ExtractionResult{URL: rawURL, Err: ErrEmptyURL}
	}
	rawURL = strings.TrimSpace(rawURL)

	article, err := e.extractPrimary(ctx, rawURL)
	if err == nil {
		return types.ExtractionResult{URL: rawURL, Article: article, Strategy: types.StrategyPrimary}
	}
	log.Printf("  ⚠️  Primary extraction failed for %s: %v (falling back)", rawURL, err)

	article, err = e.extractFallback(ctx, rawURL)
	if err != nil {
		return types.ExtractionResult{URL: rawURL, Strategy: types.StrategyFallback, Err: err}
	}
	return types.ExtractionResult{URL: rawURL, Article: article, Strategy: types.StrategyFallback}
}

func (e *Extractor) extractPrimary(ctx context.Context, rawURL string) (*types.Article, error) {
	body, pageURL, err := fetchPage(ctx, e.PrimaryClient, e.PrimaryUserAgent, rawURL, config.PrimaryTimeout)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	md := readMetadata(doc)

	parsed, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability extraction failed: %w", err)
	}

	title := md.Title
	if title == "" {
		title = strings.TrimSpace(parsed.Title)
	}
	text := strings.TrimSpace(parsed.TextContent)
	if title == "" || text == "" {
		return nil, ErrNoContent
	}

	authors := md.Authors
	if len(authors) == 0 {
		authors = cleanAuthors([]string{parsed.Byline})
	}

	return &types.Article{
		Title:       title,
		Text:        text,
		Authors:     authors,
		PublishDate: md.PublishDate,
		URL:         rawURL,
	}, nil
}

func (e *Extractor) extractFallback(ctx context.Context, rawURL string) (*types.Article, error) {
	body, pageURL, err := fetchPage(ctx, e.FallbackClient, e.FallbackUserAgent, rawURL, config.FallbackTimeout)
	if err != nil {
		return nil, fmt.Errorf("fallback fetch: %w", err)
	}

	parsed, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, fmt.Errorf("fallback parse: %w", err)
	}

	return &types.Article{
		Title:   strings.TrimSpace(parsed.Title),
		Text:    htmlText(parsed.Content),
		Authors: []string{},
		URL:     rawURL,
	}, nil
}
