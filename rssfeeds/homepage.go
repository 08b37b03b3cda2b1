package rssfeeds

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"topstories/config"
	"topstories/deduplication"
	"topstories/types"

	"github.com/PuerkitoBio/goquery"
)

// CollectHomepages scrapes each homepage source in order. Failures yield an
// empty list for that source.
func (c *Collector) CollectHomepages(ctx context.Context, sources []types.HomepageSource) types.LinkSets {
	out := make(types.LinkSets, 0, len(sources))
	for _, src := range sources {
		log.Printf("Scraping homepage for %s...", src.Name)
		links, err := c.HomepageLinks(ctx, src)
		if err != nil {
			log.Printf("  ❌ %s: %v", src.Name, err)
			links = []string{}
		} else {
			log.Printf("  ✅ %s: %d link(s)", src.Name, len(links))
		}
		out = append(out, types.SourceLinks{Source: src.Name, Links: links})
	}
	return out
}

// HomepageLinks returns the filtered links selected from one homepage.
// Homepages carry no dates, so only the URL rules and dedup apply.
func (c *Collector) HomepageLinks(ctx context.Context, src types.HomepageSource) ([]string, error) {
	doc, base, err := c.fetchDocument(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	seen := deduplication.NewLinkSet()
	doc.Find(src.Selector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		link := absoluteLink(base, href)
		if link == "" {
			return
		}
		link = c.ResolveLink(ctx, link)
		if screenURL(link) != Accept {
			return
		}
		seen.Add(link)
	})
	return seen.Links(), nil
}

func (c *Collector) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, *url.URL, error) {
	ctx, cancel := context.WithTimeout(ctx, config.FallbackTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching homepage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing homepage: %w", err)
	}
	return doc, resp.Request.URL, nil
}

// absoluteLink resolves href against base, dropping fragments and non-HTTP schemes.
func absoluteLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Fragment = ""
	return u.String()
}
