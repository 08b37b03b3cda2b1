package rssfeeds

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"topstories/config"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoRefreshTarget is returned when a redirect page has no usable refresh meta tag.
var ErrNoRefreshTarget = errors.New("no refresh target on redirect page")

// isAggregatorLink reports whether link points at the aggregator redirect host.
func isAggregatorLink(link, host string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Hostname(), host)
}

// resolveRedirect fetches an aggregator redirect page and returns the target
// of its <meta http-equiv="refresh"> tag, resolved against the page URL.
func resolveRedirect(ctx context.Context, client *http.Client, userAgent, link string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.RedirectTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching redirect page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing redirect page: %w", err)
	}

	var target string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		equiv, _ := s.Attr("http-equiv")
		if !strings.EqualFold(strings.TrimSpace(equiv), "refresh") {
			return true
		}
		content, _ := s.Attr("content")
		target = refreshTarget(content)
		return target == ""
	})
	if target == "" {
		return "", ErrNoRefreshTarget
	}

	base := resp.Request.URL
	ref, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parsing refresh target: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}

// refreshTarget extracts the URL from a refresh content value such as
// `0;url=https://example.com/a` or `5; URL='https://example.com/a'`.
func refreshTarget(content string) string {
	for _, part := range strings.Split(content, ";") {
		part = strings.TrimSpace(part)
		if len(part) < 4 || !strings.EqualFold(part[:4], "url=") {
			continue
		}
		return strings.Trim(strings.TrimSpace(part[4:]), `'"`)
	}
	return ""
}
