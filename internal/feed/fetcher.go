package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/atareao/podmixer/internal/models"
)

const (
	defaultFetchTimeout = 30 * time.Second

	// Some podcast hosts answer 403 to unknown clients, so we present a
	// regular browser user agent like any feed reader does.
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_10_1) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/39.0.2171.95 Safari/537.36"
)

// FetchError collapses every way a podcast retrieval can fail (network,
// non-2xx status, malformed XML) into one value carrying the cause.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves an upstream feed over HTTP and parses it into a Channel.
type Fetcher struct {
	client *http.Client
	parser *gofeed.Parser
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		parser: gofeed.NewParser(),
	}
}

// Fetch issues a single GET and parses the body. Any failure is reported as
// a *FetchError; the caller decides whether to skip the podcast for the pass.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Channel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	parsed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	return newChannel(parsed), nil
}

func newChannel(parsed *gofeed.Feed) *Channel {
	episodes := make([]models.Episode, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		description := item.Description
		if description == "" {
			description = item.Content
		}
		episode := models.Episode{
			Title:       item.Title,
			Description: description,
			Link:        item.Link,
			PubDate:     ResolvePubDate(item.Published),
			RawPubDate:  item.Published,
		}
		if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
			episode.EnclosureURL = item.Enclosures[0].URL
		}
		episodes = append(episodes, episode)
	}
	return &Channel{
		Title:    parsed.Title,
		Episodes: episodes,
	}
}
