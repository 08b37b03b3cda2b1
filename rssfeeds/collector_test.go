package rssfeeds

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
	"time"

	"topstories/deduplication"
	"topstories/types"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func newTestCollector() *Collector {
	c := NewCollector()
	c.Now = func() time.Time { return fixedNow }
	c.Location = time.UTC
	return c
}

func TestDecide(t *testing.T) {
	today := ptr(fixedNow.Add(-2 * time.Hour))
	yesterday := ptr(fixedNow.Add(-26 * time.Hour))

	cases := []struct {
		name  string
		entry types.FeedEntry
		want  Decision
	}{
		{
			name:  "video rejected even when dated today",
			entry: types.FeedEntry{Link: "https://example.com/video/123", PublishedParsed: today},
			want:  RejectVideo,
		},
		{
			name:  "aggregator entry dated yesterday accepted",
			entry: types.FeedEntry{Link: "https://example.com/a", ID: "tag:news.google.com:abc", PublishedParsed: yesterday},
			want:  Accept,
		},
		{
			name:  "aggregator entry without date accepted",
			entry: types.FeedEntry{Link: "https://example.com/b", ID: "tag:news.google.com:def"},
			want:  Accept,
		},
		{
			name:  "aggregator podcast still rejected",
			entry: types.FeedEntry{Link: "https://example.com/podcasts/x", ID: "tag:news.google.com:ghi"},
			want:  RejectPodcast,
		},
		{
			name:  "direct entry dated yesterday rejected",
			entry: types.FeedEntry{Link: "https://example.com/c", PublishedParsed: yesterday},
			want:  RejectStale,
		},
		{
			name:  "direct entry with no date rejected",
			entry: types.FeedEntry{Link: "https://example.com/d"},
			want:  RejectStale,
		},
		{
			name:  "direct entry with unparseable date rejected",
			entry: types.FeedEntry{Link: "https://example.com/e", Published: "sometime soon"},
			want:  RejectStale,
		},
		{
			name:  "updated used when published missing",
			entry: types.FeedEntry{Link: "https://example.com/f", UpdatedParsed: today},
			want:  Accept,
		},
		{
			name:  "raw published string parsed",
			entry: types.FeedEntry{Link: "https://example.com/g", Published: "Mon, 19 Oct 2026 09:15:00 +0000"},
			want:  Accept,
		},
		{
			name:  "missing link",
			entry: types.FeedEntry{PublishedParsed: today},
			want:  RejectMissingLink,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			col := newTestCollector()
			got, _ := col.Decide(context.Background(), c.entry, deduplication.NewLinkSet())
			if got != c.want {
				t.Fatalf("Decide() = %v; want %v", got, c.want)
			}
		})
	}
}

func TestDecideZonelessDateUsesCollectorLocation(t *testing.T) {
	pdt := time.FixedZone("PDT", -7*3600)
	now := time.Date(2026, 10, 19, 20, 0, 0, 0, pdt)
	// gofeed reads a zone-less pubDate as UTC, which is 18 Oct 19:00 in PDT
	utcGuess := time.Date(2026, 10, 19, 2, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		entry types.FeedEntry
		want  Decision
	}{
		{
			name:  "zone-less pubDate is local today",
			entry: types.FeedEntry{Link: "https://example.com/h", Published: "Mon, 19 Oct 2026 02:00:00", PublishedParsed: &utcGuess},
			want:  Accept,
		},
		{
			name:  "explicit UTC pubDate is local yesterday",
			entry: types.FeedEntry{Link: "https://example.com/i", Published: "Mon, 19 Oct 2026 02:00:00 +0000", PublishedParsed: &utcGuess},
			want:  RejectStale,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			col := NewCollector()
			col.Now = func() time.Time { return now }
			col.Location = pdt
			got, _ := col.Decide(context.Background(), c.entry, deduplication.NewLinkSet())
			if got != c.want {
				t.Fatalf("Decide() = %v; want %v", got, c.want)
			}
		})
	}
}

func TestFilterDedupKeepsFirstInOrder(t *testing.T) {
	today := ptr(fixedNow.Add(-time.Hour))
	entries := []types.FeedEntry{
		{Title: "A", Link: "https://example.com/a", PublishedParsed: today, Published: "p-a", Summary: "s-a"},
		{Title: "B", Link: "https://example.com/b", PublishedParsed: today},
		{Title: "A again", Link: "https://example.com/a", PublishedParsed: today},
		{Title: "C", Link: "https://example.com/c", PublishedParsed: today},
		{Title: "B again", Link: " https://example.com/b ", PublishedParsed: today},
	}

	col := newTestCollector()
	got := col.Filter(context.Background(), entries)

	want := []types.AcceptedEntry{
		{Title: "A", Link: "https://example.com/a", Published: "p-a", Summary: "s-a"},
		{Title: "B", Link: "https://example.com/b"},
		{Title: "C", Link: "https://example.com/c"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter() = %+v; want %+v", got, want)
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	today := ptr(fixedNow.Add(-time.Hour))
	entries := []types.FeedEntry{
		{Link: "https://example.com/x", PublishedParsed: today},
		{Link: "https://example.com/y", ID: "tag:news.google.com:1"},
		{Link: "https://example.com/x", PublishedParsed: today},
	}

	col := newTestCollector()
	first := col.Filter(context.Background(), entries)
	second := col.Filter(context.Background(), entries)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Filter not idempotent: %v vs %v", first, second)
	}
	if len(first) != 2 {
		t.Fatalf("len(Filter()) = %d; want 2", len(first))
	}
}

// redirectServer serves aggregator-style pages that refresh to targets[path].
func redirectServer(t *testing.T, targets map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target, ok := targets[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `<html><head><meta http-equiv="Refresh" content="0;url=%s"></head><body></body></html>`, target)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func aggregatorCollector(t *testing.T, srv *httptest.Server) *Collector {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	col := newTestCollector()
	col.Client = srv.Client()
	col.AggregatorHost = u.Hostname()
	return col
}

func TestDecideResolvesRedirectBeforeFiltering(t *testing.T) {
	srv := redirectServer(t, map[string]string{
		"/rss/articles/story":   "https://example.com/politics/story",
		"/rss/articles/podcast": "https://example.com/podcasts/daily",
		"/rss/articles/dup":     "https://example.com/politics/story",
	})
	col := aggregatorCollector(t, srv)

	entries := []types.FeedEntry{
		{Link: srv.URL + "/rss/articles/story", ID: "tag:news.google.com:1"},
		{Link: srv.URL + "/rss/articles/podcast", ID: "tag:news.google.com:2"},
		{Link: srv.URL + "/rss/articles/dup", ID: "tag:news.google.com:3"},
	}

	seen := deduplication.NewLinkSet()
	wants := []struct {
		decision Decision
		link     string
	}{
		{Accept, "https://example.com/politics/story"},
		{RejectPodcast, "https://example.com/podcasts/daily"},
		{RejectDuplicate, "https://example.com/politics/story"},
	}
	for i, e := range entries {
		d, link := col.Decide(context.Background(), e, seen)
		if d != wants[i].decision || link != wants[i].link {
			t.Fatalf("entry %d: Decide() = (%v, %q); want (%v, %q)", i, d, link, wants[i].decision, wants[i].link)
		}
	}
}

func TestResolveLinkFallsBackToRawLink(t *testing.T) {
	srv := redirectServer(t, map[string]string{})
	col := aggregatorCollector(t, srv)

	raw := srv.URL + "/rss/articles/missing"
	if got := col.ResolveLink(context.Background(), raw); got != raw {
		t.Fatalf("ResolveLink() = %q; want raw link %q", got, raw)
	}

	// Non-aggregator links are never fetched
	direct := "https://example.com/a"
	if got := col.ResolveLink(context.Background(), direct); got != direct {
		t.Fatalf("ResolveLink() = %q; want %q", got, direct)
	}
}

func TestResolveLinkWithoutRefreshMeta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>consent</title></head></html>`)
	}))
	defer srv.Close()
	col := aggregatorCollector(t, srv)

	raw := srv.URL + "/rss/articles/x"
	if got := col.ResolveLink(context.Background(), raw); got != raw {
		t.Fatalf("ResolveLink() = %q; want %q", got, raw)
	}
}

func TestCollectAllIsolatesFailingSource(t *testing.T) {
	today := ptr(fixedNow.Add(-time.Hour))
	col := newTestCollector()
	col.fetch = func(_ context.Context, _ *http.Client, feedURL string) ([]types.FeedEntry, error) {
		switch feedURL {
		case "https://good.example/rss":
			return []types.FeedEntry{
				{Link: "https://good.example/one", PublishedParsed: today},
				{Link: "https://good.example/video/2", PublishedParsed: today},
				{Link: "https://good.example/three", PublishedParsed: today},
			}, nil
		default:
			return nil, errors.New("boom")
		}
	}

	got := col.CollectAll(context.Background(), []types.FeedSource{
		{Name: "Broken", URL: "https://broken.example/rss"},
		{Name: "Good", URL: "https://good.example/rss"},
	})

	want := types.LinkSets{
		{Source: "Broken", Links: []string{}},
		{Source: "Good", Links: []string{"https://good.example/one", "https://good.example/three"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CollectAll() = %+v; want %+v", got, want)
	}
}

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Sample</title>
  <link>https://example.com</link>
  <description>Sample feed</description>
  <item>
    <title>Today story</title>
    <link>https://example.com/politics/today-story</link>
    <guid>https://example.com/politics/today-story</guid>
    <pubDate>%s</pubDate>
    <description>fresh</description>
  </item>
  <item>
    <title>Old story</title>
    <link>https://example.com/politics/old-story</link>
    <pubDate>%s</pubDate>
  </item>
  <item>
    <title>Clip</title>
    <link>https://example.com/video/555</link>
    <pubDate>%s</pubDate>
  </item>
  <item>
    <title>Relayed</title>
    <link>https://example.com/world/relayed</link>
    <guid isPermaLink="false">tag:news.google.com,2005:abc</guid>
    <pubDate>%s</pubDate>
  </item>
</channel>
</rss>`

func TestFetchSourceParsesRealFeed(t *testing.T) {
	today := fixedNow.Add(-time.Hour).Format(time.RFC1123Z)
	old := fixedNow.Add(-72 * time.Hour).Format(time.RFC1123Z)

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, sampleRSS, today, old, today, old)
	}))
	defer srv.Close()

	col := newTestCollector()
	col.Client = srv.Client()

	got, err := col.FetchSource(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchSource() error: %v", err)
	}

	want := []types.AcceptedEntry{
		{Title: "Today story", Link: "https://example.com/politics/today-story", Published: today, Summary: "fresh"},
		{Title: "Relayed", Link: "https://example.com/world/relayed", Published: old},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FetchSource() = %+v; want %+v", got, want)
	}
	if gotUA == "" {
		t.Fatal("feed request carried no User-Agent")
	}
}

const zonelessRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Zoneless</title>
  <item>
    <title>Late local story</title>
    <link>https://example.com/us/late-local-story</link>
    <pubDate>Mon, 19 Oct 2026 02:00:00</pubDate>
  </item>
</channel>
</rss>`

func TestFetchSourceReadsZonelessDateInLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, zonelessRSS)
	}))
	defer srv.Close()

	pdt := time.FixedZone("PDT", -7*3600)
	col := NewCollector()
	col.Client = srv.Client()
	col.Location = pdt
	col.Now = func() time.Time { return time.Date(2026, 10, 19, 20, 0, 0, 0, pdt) }

	got, err := col.FetchSource(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchSource() error: %v", err)
	}
	if len(got) != 1 || got[0].Link != "https://example.com/us/late-local-story" {
		t.Fatalf("FetchSource() = %+v; want the zone-less story accepted", got)
	}
}

func TestFetchSourceHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	col := newTestCollector()
	col.Client = srv.Client()
	if _, err := col.FetchSource(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 410 feed")
	}

	links := col.Links(context.Background(), types.FeedSource{Name: "Gone", URL: srv.URL})
	if links == nil || len(links) != 0 {
		t.Fatalf("Links() = %v; want empty non-nil slice", links)
	}
}
