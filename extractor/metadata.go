package extractor

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// pageMetadata is what the primary strategy reads from <head> and JSON-LD.
type pageMetadata struct {
	Title       string
	Authors     []string
	PublishDate *time.Time
}

var authorSelectors = []string{
	`meta[name="author"]`,
	`meta[property="article:author"]`,
	`meta[name="byl"]`,
	`meta[name="sailthru.author"]`,
	`meta[name="parsely-author"]`,
}

var dateSelectors = []string{
	`meta[property="article:published_time"]`,
	`meta[name="pubdate"]`,
	`meta[name="publishdate"]`,
	`meta[name="date"]`,
	`meta[itemprop="datePublished"]`,
	`meta[name="parsely-pub-date"]`,
}

func readMetadata(doc *goquery.Document) pageMetadata {
	var md pageMetadata

	md.Title = strings.TrimSpace(doc.Find(`meta[property="og:title"]`).First().AttrOr("content", ""))
	if md.Title == "" {
		md.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	ld := readJSONLD(doc)

	var raw []string
	for _, sel := range authorSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			raw = append(raw, s.AttrOr("content", ""))
		})
	}
	raw = append(raw, ld.authors...)
	md.Authors = cleanAuthors(raw)

	var dates []string
	for _, sel := range dateSelectors {
		dates = append(dates, doc.Find(sel).First().AttrOr("content", ""))
	}
	dates = append(dates, ld.datePublished)
	dates = append(dates, doc.Find("time[datetime]").First().AttrOr("datetime", ""))
	for _, d := range dates {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if t, err := dateparse.ParseAny(d); err == nil {
			md.PublishDate = &t
			break
		}
	}
	return md
}

type jsonLD struct {
	authors       []string
	datePublished string
}

// readJSONLD collects author names and datePublished from NewsArticle-like
// JSON-LD blocks. Malformed blocks are skipped.
func readJSONLD(doc *goquery.Document) jsonLD {
	var out jsonLD
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var v any
		if err := json.Unmarshal([]byte(s.Text()), &v); err != nil {
			return
		}
		walkLD(v, &out)
	})
	return out
}

func walkLD(v any, out *jsonLD) {
	switch n := v.(type) {
	case []any:
		for _, item := range n {
			walkLD(item, out)
		}
	case map[string]any:
		if graph, ok := n["@graph"]; ok {
			walkLD(graph, out)
		}
		if out.datePublished == "" {
			if d, ok := n["datePublished"].(string); ok {
				out.datePublished = d
			}
		}
		if a, ok := n["author"]; ok {
			out.authors = append(out.authors, ldNames(a)...)
		}
	}
}

func ldNames(v any) []string {
	switch n := v.(type) {
	case string:
		return []string{n}
	case map[string]any:
		if name, ok := n["name"].(string); ok {
			return []string{name}
		}
	case []any:
		var names []string
		for _, item := range n {
			names = append(names, ldNames(item)...)
		}
		return names
	}
	return nil
}

// cleanAuthors strips "By" prefixes, splits joint bylines, drops profile URLs
// and removes case-insensitive duplicates while keeping first-seen order.
func cleanAuthors(raw []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range raw {
		for _, name := range splitByline(r) {
			if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
				continue
			}
			key := strings.ToLower(name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

func splitByline(s string) []string {
	s = strings.TrimSpace(s)
	if len(s) >= 3 && strings.EqualFold(s[:3], "by ") {
		s = s[3:]
	}
	s = strings.ReplaceAll(s, " and ", ",")
	s = strings.ReplaceAll(s, " & ", ",")

	var names []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.Join(strings.Fields(part), " "); p != "" {
			names = append(names, p)
		}
	}
	return names
}
