package rssfeeds

import (
	"regexp"
	"strings"
	"time"
)

// Decision is the collector's verdict on one entry.
type Decision int

const (
	Accept Decision = iota
	RejectMissingLink
	RejectPodcast
	RejectVideo
	RejectStale
	RejectDuplicate
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case RejectMissingLink:
		return "missing link"
	case RejectPodcast:
		return "podcast"
	case RejectVideo:
		return "video"
	case RejectStale:
		return "not published today"
	case RejectDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

var trailingNumericSegment = regexp.MustCompile(`/\d+$`)

// IsPodcastURL reports links under a podcast or program section.
func IsPodcastURL(link string) bool {
	return strings.Contains(link, "/programs/") || strings.Contains(link, "/podcasts/")
}

// IsVideoURL reports video and shorts pages, and bare numeric clip IDs.
func IsVideoURL(link string) bool {
	return strings.Contains(link, "/video/") ||
		strings.Contains(link, "/shorts/") ||
		trailingNumericSegment.MatchString(link)
}

// screenURL applies the URL-only rules. Podcast is checked before video.
func screenURL(link string) Decision {
	if link == "" {
		return RejectMissingLink
	}
	if IsPodcastURL(link) {
		return RejectPodcast
	}
	if IsVideoURL(link) {
		return RejectVideo
	}
	return Accept
}

// IsSameLocalDay reports whether t falls on the same calendar date as now in loc.
func IsSameLocalDay(t, now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	ty, tm, td := t.In(loc).Date()
	ny, nm, nd := now.In(loc).Date()
	return ty == ny && tm == nm && td == nd
}
