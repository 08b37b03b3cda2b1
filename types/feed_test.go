package types

import (
	"reflect"
	"testing"
	"time"
)

func TestFeedEntryTimestamp(t *testing.T) {
	pub := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	upd := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		entry  FeedEntry
		want   time.Time
		wantOK bool
	}{
		{"published preferred", FeedEntry{PublishedParsed: &pub, UpdatedParsed: &upd}, pub, true},
		{"updated fallback", FeedEntry{UpdatedParsed: &upd}, upd, true},
		{"raw published", FeedEntry{Published: "Mon, 19 Oct 2026 09:00:00 +0000"}, pub, true},
		{"raw updated after bad published", FeedEntry{Published: "garbage", Updated: "2026-10-18T09:00:00Z"}, upd, true},
		{"nothing", FeedEntry{}, time.Time{}, false},
		{"unparseable", FeedEntry{Published: "yesterday-ish"}, time.Time{}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := c.entry.Timestamp(time.UTC)
			if ok != c.wantOK {
				t.Fatalf("Timestamp() ok = %v; want %v", ok, c.wantOK)
			}
			if ok && !got.Equal(c.want) {
				t.Fatalf("Timestamp() = %v; want %v", got, c.want)
			}
		})
	}
}

func TestFeedEntryTimestampZonelessUsesLocation(t *testing.T) {
	pdt := time.FixedZone("PDT", -7*3600)
	// What a feed parser hands back for a zone-less pubDate: the wall clock in UTC
	utcGuess := time.Date(2026, 10, 19, 2, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		entry FeedEntry
		want  time.Time
	}{
		{
			name:  "zone-less raw overrides parsed value",
			entry: FeedEntry{Published: "Mon, 19 Oct 2026 02:00:00", PublishedParsed: &utcGuess},
			want:  time.Date(2026, 10, 19, 2, 0, 0, 0, pdt),
		},
		{
			name:  "explicit zone keeps parsed value",
			entry: FeedEntry{Published: "Mon, 19 Oct 2026 02:00:00 +0000", PublishedParsed: &utcGuess},
			want:  utcGuess,
		},
		{
			name:  "zone-less updated",
			entry: FeedEntry{Updated: "2026-10-19 02:00:00"},
			want:  time.Date(2026, 10, 19, 2, 0, 0, 0, pdt),
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := c.entry.Timestamp(pdt)
			if !ok || !got.Equal(c.want) {
				t.Fatalf("Timestamp() = %v, %v; want %v", got, ok, c.want)
			}
		})
	}
}

func TestLinkSets(t *testing.T) {
	ls := LinkSets{
		{Source: "NBC", Links: []string{"a", "b"}},
		{Source: "CBS", Links: []string{}},
	}

	if ls.Total() != 2 {
		t.Fatalf("Total() = %d; want 2", ls.Total())
	}
	want := map[string][]string{"NBC": {"a", "b"}, "CBS": {}}
	if got := ls.Map(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Map() = %v; want %v", got, want)
	}
	if links, ok := ls.Lookup("CBS"); !ok || len(links) != 0 {
		t.Fatalf("Lookup(CBS) = %v, %v", links, ok)
	}
	if _, ok := ls.Lookup("ABC"); ok {
		t.Fatal("Lookup(ABC) found a missing source")
	}
}

func TestExtractionResultOK(t *testing.T) {
	if (ExtractionResult{URL: "u"}).OK() {
		t.Fatal("result without article reported OK")
	}
	if !(ExtractionResult{URL: "u", Article: &Article{}}).OK() {
		t.Fatal("result with article reported not OK")
	}
}
