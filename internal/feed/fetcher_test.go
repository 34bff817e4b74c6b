package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Podcast</title>
    <link>https://example.com</link>
    <description>A test feed</description>
    <item>
      <title>Episode two</title>
      <link>https://example.com/ep2</link>
      <description>&lt;p&gt;Second&lt;/p&gt;</description>
      <pubDate>Mon, 15 Jul 2024 10:00:00 +0000</pubDate>
      <enclosure url="https://example.com/ep2.mp3" length="1000" type="audio/mpeg"/>
    </item>
    <item>
      <title>Episode one</title>
      <link>https://example.com/ep1</link>
      <description>First</description>
      <pubDate>Mon, 1 Jul 2024 10:00:00 +0000</pubDate>
      <enclosure url="https://example.com/ep1.mp3" length="1000" type="audio/mpeg"/>
    </item>
  </channel>
</rss>`

func TestFetcherFetch(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, feedFixture)
	}))
	defer server.Close()

	channel, err := NewFetcher(0).Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Contains(t, gotUserAgent, "Mozilla/5.0")
	assert.Equal(t, "Test Podcast", channel.Title)
	require.Len(t, channel.Episodes, 2)

	first := channel.Episodes[0]
	assert.Equal(t, "Episode two", first.Title)
	assert.Equal(t, "https://example.com/ep2", first.Link)
	assert.Equal(t, "https://example.com/ep2.mp3", first.EnclosureURL)
	assert.True(t, first.PubDate.Equal(time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)))
}

func TestFetcherFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewFetcher(0).Fetch(context.Background(), server.URL)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, server.URL, fetchErr.URL)
	assert.Contains(t, fetchErr.Error(), "HTTP 500")
}

func TestFetcherFetchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not XML")
	}))
	defer server.Close()

	_, err := NewFetcher(0).Fetch(context.Background(), server.URL)

	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))
}

func TestFetcherFetchNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := NewFetcher(0).Fetch(context.Background(), server.URL)

	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))
}
