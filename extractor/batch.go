package extractor

import (
	"context"
	"log"
	"strings"
	"sync"

	"topstories/types"
)

// ExtractResults extracts every distinct URL using a bounded worker pool and
// returns one result per distinct URL, in input order. URLs are compared after
// trimming whitespace; a blank input is kept as given so its failure names it.
func (e *Extractor) ExtractResults(ctx context.Context, urls []string) []types.ExtractionResult {
	unique := make([]string, 0, len(urls))
	index := make(map[string]int, len(urls))
	for _, u := range urls {
		key := strings.TrimSpace(u)
		if _, ok := index[key]; ok {
			continue
		}
		index[key] = len(unique)
		if key != "" {
			u = key
		}
		unique = append(unique, u)
	}

	results := make([]types.ExtractionResult, len(unique))
	if len(unique) == 0 {
		return results
	}

	workers := e.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(unique) {
		workers = len(unique)
	}

	var wg sync.WaitGroup
	jobs := make(chan int, len(unique))

	// Start worker pool
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				u := unique[i]
				log.Printf("[%d/%d] Scraping: %s", i+1, len(unique), u)
				r := e.Extract(ctx, u)
				if !r.OK() {
					log.Printf("  ❌ Failed to extract %s: %v", u, r.Err)
				}
				results[i] = r
			}
		}()
	}

	for i := range unique {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// ExtractAll returns the extracted articles keyed by URL. Failed URLs are absent.
func (e *Extractor) ExtractAll(ctx context.Context, urls []string) map[string]*types.Article {
	return articlesByURL(e.ExtractResults(ctx, urls))
}

// ExtractResultsBySource extracts each source's links, one source at a time,
// keeping every result including failures.
func (e *Extractor) ExtractResultsBySource(ctx context.Context, sets types.LinkSets) map[string][]types.ExtractionResult {
	out := make(map[string][]types.ExtractionResult, len(sets))
	for _, s := range sets {
		log.Printf("=== Scraping articles from %s ===", s.Source)
		out[s.Source] = e.ExtractResults(ctx, s.Links)
	}
	return out
}

// ExtractBySource extracts each source's links, one source at a time.
func (e *Extractor) ExtractBySource(ctx context.Context, sets types.LinkSets) map[string]map[string]*types.Article {
	bySource := e.ExtractResultsBySource(ctx, sets)
	out := make(map[string]map[string]*types.Article, len(bySource))
	for source, results := range bySource {
		out[source] = articlesByURL(results)
	}
	return out
}

func articlesByURL(results []types.ExtractionResult) map[string]*types.Article {
	out := make(map[string]*types.Article, len(results))
	for _, r := range results {
		if r.OK() {
			out[r.URL] = r.Article
		}
	}
	return out
}
