package orchestrator

import (
	"context"
	"errors"
	"log"

	"topstories/config"
	"topstories/extractor"
	"topstories/rssfeeds"
	"topstories/shared/rss"
	"topstories/types"
)

// ErrNoSources is returned when a run has nothing to collect from.
var ErrNoSources = errors.New("no feed or homepage sources configured")

// Options selects what a single run does.
type Options struct {
	Sources   []types.FeedSource
	Homepages []types.HomepageSource
	// Extract hands the collected links to the article extractor.
	Extract bool
}

// Summary counts the outcome of one run.
type Summary struct {
	Sources   int `json:"sources"`
	Links     int `json:"links"`
	Extracted int `json:"extracted"`
	Fallback  int `json:"fallback"`
	Failed    int `json:"failed"`
}

// Report is everything one run produced. Nothing in it outlives the caller.
type Report struct {
	Links    types.LinkSets                       `json:"links"`
	Articles map[string]map[string]*types.Article `json:"articles,omitempty"`
	Summary  Summary                              `json:"summary"`
}

// Runner wires the collector and extractor stages together.
type Runner struct {
	Collector *rssfeeds.Collector
	Extractor *extractor.Extractor
}

// NewRunner builds a Runner from runtime configuration.
func NewRunner(cfg *config.Config) *Runner {
	col := rssfeeds.NewCollector()
	ext := extractor.NewExtractor()
	if cfg != nil {
		col.UserAgent = cfg.UserAgent
		ext.FallbackUserAgent = cfg.UserAgent
		ext.Workers = cfg.ExtractWorkers
	}
	return &Runner{Collector: col, Extractor: ext}
}

// OptionsFromConfig resolves the configured source names into run options.
func OptionsFromConfig(cfg *config.Config, extract bool) (Options, error) {
	sources, err := rss.SelectSources(cfg.Sources)
	if err != nil {
		return Options{}, err
	}
	opts := Options{Sources: sources, Extract: extract}
	if cfg.IncludeHomepages {
		opts.Homepages = rss.HomepageSources()
	}
	return opts, nil
}

// RunOnce executes a single cycle: collect links, optionally extract, summarize.
// Per-source and per-URL failures are logged and never abort the run.
func (r *Runner) RunOnce(ctx context.Context, opts Options) (*Report, error) {
	if len(opts.Sources) == 0 && len(opts.Homepages) == 0 {
		return nil, ErrNoSources
	}
	log.Println("=== Top Stories Run ===")

	// Step 1: Collect links
	links := r.Collector.CollectAll(ctx, opts.Sources)
	if len(opts.Homepages) > 0 {
		links = append(links, r.Collector.CollectHomepages(ctx, opts.Homepages)...)
	}

	report := &Report{
		Links: links,
		Summary: Summary{
			Sources: len(links),
			Links:   links.Total(),
		},
	}

	// Step 2: Extract articles, one source at a time
	if opts.Extract {
		bySource := r.Extractor.ExtractResultsBySource(ctx, links)
		report.Articles = make(map[string]map[string]*types.Article, len(bySource))
		for _, s := range links {
			articles := make(map[string]*types.Article)
			for _, res := range bySource[s.Source] {
				if !res.OK() {
					report.Summary.Failed++
					continue
				}
				articles[res.URL] = res.Article
				report.Summary.Extracted++
				if res.Strategy == types.StrategyFallback {
					report.Summary.Fallback++
				}
			}
			report.Articles[s.Source] = articles
		}
	}

	displaySummary(report.Summary, opts.Extract)
	log.Println("=== Run Complete ===")
	return report, nil
}

func displaySummary(s Summary, extracted bool) {
	log.Println("=== Summary ===")
	log.Printf("Sources:            %d", s.Sources)
	log.Printf("Links:              %d", s.Links)
	if extracted {
		log.Printf("Extracted:          %d", s.Extracted)
		log.Printf("  via fallback:     %d", s.Fallback)
		log.Printf("Failed:             %d", s.Failed)
	}
	log.Println("===============")
}
