package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrEmptyURL is returned for blank input URLs
	ErrEmptyURL = errors.New("article URL is empty")
	// ErrNoContent is returned when a page yields no title or no body text
	ErrNoContent = errors.New("no article content found")
	// ErrStatus wraps non-2xx responses
	ErrStatus = errors.New("unexpected status code")
)

// maxPageBytes caps how much of a page is read into memory.
const maxPageBytes = 10 << 20

// fetchPage downloads rawURL and returns the body and the final URL after redirects.
func fetchPage(ctx context.Context, client *http.Client, userAgent, rawURL string, timeout time.Duration) ([]byte, *url.URL, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, resp.Request.URL, nil
}
