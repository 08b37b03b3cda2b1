package types

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// FeedSource is one named RSS/Atom feed.
type FeedSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// HomepageSource is a site without a usable feed; links are scraped from its
// homepage with a CSS selector.
type HomepageSource struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Selector string `json:"selector"`
}

// FeedEntry is a single parsed feed item. Empty strings and nil pointers mean
// the field was absent from the feed.
type FeedEntry struct {
	Link            string
	Title           string
	ID              string
	Summary         string
	Published       string
	Updated         string
	PublishedParsed *time.Time
	UpdatedParsed   *time.Time
}

// Timestamp returns the entry's published time, falling back to the updated
// time. Raw strings without a zone are read in loc, since feed parsers default
// them to UTC; otherwise the parser's value wins. ok is false when no usable
// timestamp exists.
func (e FeedEntry) Timestamp(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	fields := []struct {
		raw    string
		parsed *time.Time
	}{
		{e.Published, e.PublishedParsed},
		{e.Updated, e.UpdatedParsed},
	}
	for _, f := range fields {
		t, zoneless, ok := parseRawDate(f.raw, loc)
		if ok && zoneless {
			return t, true
		}
		if f.parsed != nil {
			return *f.parsed, true
		}
		if ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseRawDate parses raw in loc. zoneless reports that raw carried no zone
// of its own, detected by the instant moving when read in UTC instead.
func parseRawDate(raw string, loc *time.Location) (t time.Time, zoneless, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, false
	}
	t, err := dateparse.ParseIn(raw, loc)
	if err != nil {
		return time.Time{}, false, false
	}
	inUTC, err := dateparse.ParseIn(raw, time.UTC)
	return t, err == nil && !inUTC.Equal(t), true
}

// AcceptedEntry is a feed entry that survived every collector filter.
type AcceptedEntry struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// SourceLinks holds the ordered, deduplicated links collected for one source.
type SourceLinks struct {
	Source string   `json:"source"`
	Links  []string `json:"links"`
}

// LinkSets is the collector output, ordered by source.
type LinkSets []SourceLinks

// Map returns the link sets keyed by source name.
func (ls LinkSets) Map() map[string][]string {
	out := make(map[string][]string, len(ls))
	for _, s := range ls {
		out[s.Source] = s.Links
	}
	return out
}

// Lookup returns the links for a source and whether the source was present.
func (ls LinkSets) Lookup(name string) ([]string, bool) {
	for _, s := range ls {
		if s.Source == name {
			return s.Links, true
		}
	}
	return nil, false
}

// Total counts links across all sources.
func (ls LinkSets) Total() int {
	n := 0
	for _, s := range ls {
		n += len(s.Links)
	}
	return n
}
