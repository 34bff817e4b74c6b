package worker

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atareao/podmixer/internal/db"
	"github.com/atareao/podmixer/internal/feed"
	"github.com/atareao/podmixer/pkg/tasks"
)

const upstreamFeedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Upstream Show</title>
    <item>
      <title>Fresh Episode</title>
      <link>https://example.com/fresh</link>
      <description>brand new</description>
      <pubDate>%s</pubDate>
      <enclosure url="https://example.com/fresh.mp3" length="1" type="audio/mpeg"/>
    </item>
  </channel>
</rss>`

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })

	originalDB := db.DB
	db.DB = sqlx.NewDb(mockDb, "sqlmock")
	t.Cleanup(func() { db.DB = originalDB })
	return mock
}

func podcastRows(feedURL string, lastPubDate time.Time) *sqlmock.Rows {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{"id", "name", "url", "active", "last_pub_date", "created_at", "updated_at"}).
		AddRow(1, "Upstream Show", feedURL, true, lastPubDate, now, now)
}

func paramRows(pairs map[string]string) *sqlmock.Rows {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "key", "value", "created_at", "updated_at"})
	id := int64(1)
	for key, value := range pairs {
		rows.AddRow(id, key, value, now, now)
		id++
	}
	return rows
}

func TestHandleRunPassTaskPublishesNewEpisodes(t *testing.T) {
	// Inside the trailing window, so the episode lands in both feeds.
	pubDate := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, upstreamFeedTemplate, pubDate.Format(time.RFC1123Z))
	}))
	defer upstream.Close()

	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT value FROM config WHERE key = \$1`).
		WithArgs("older_than").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("30"))
	mock.ExpectQuery(`SELECT \* FROM podcasts WHERE active = TRUE ORDER BY last_pub_date DESC`).
		WillReturnRows(podcastRows(upstream.URL, pubDate.Add(-24*time.Hour)))
	mock.ExpectExec(`UPDATE podcasts SET last_pub_date = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(pubDate, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM config WHERE key LIKE \$1`).
		WithArgs("telegram_%").
		WillReturnRows(paramRows(map[string]string{"telegram_active": "FALSE"}))
	mock.ExpectQuery(`SELECT \* FROM config WHERE key LIKE \$1`).
		WithArgs("twitter_%").
		WillReturnRows(paramRows(map[string]string{"twitter_active": "FALSE"}))
	mock.ExpectQuery(`SELECT \* FROM config WHERE key LIKE \$1`).
		WithArgs("feed_%").
		WillReturnRows(paramRows(map[string]string{
			"feed_title":       "Mixed Shows",
			"feed_link":        "https://example.com/feed",
			"feed_description": "merged",
		}))

	rssDir := t.TempDir()
	handler := NewTaskHandler(db.Registry{}, feed.NewFetcher(0), rssDir, t.TempDir())

	task, err := tasks.NewRunPassTask()
	require.NoError(t, err)
	require.NoError(t, handler.HandleRunPassTask(context.Background(), task))

	short, err := os.ReadFile(filepath.Join(rssDir, "short.xml"))
	require.NoError(t, err)
	long, err := os.ReadFile(filepath.Join(rssDir, "long.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(short), "Fresh Episode")
	assert.Contains(t, string(long), "Fresh Episode")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleRunPassTaskSkipsPublishWhenNothingNew(t *testing.T) {
	pubDate := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, upstreamFeedTemplate, pubDate.Format(time.RFC1123Z))
	}))
	defer upstream.Close()

	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT value FROM config WHERE key = \$1`).
		WithArgs("older_than").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("30"))
	// Watermark already at the newest episode: nothing to notify or publish.
	mock.ExpectQuery(`SELECT \* FROM podcasts WHERE active = TRUE ORDER BY last_pub_date DESC`).
		WillReturnRows(podcastRows(upstream.URL, pubDate))

	rssDir := t.TempDir()
	handler := NewTaskHandler(db.Registry{}, feed.NewFetcher(0), rssDir, t.TempDir())

	task, err := tasks.NewRunPassTask()
	require.NoError(t, err)
	require.NoError(t, handler.HandleRunPassTask(context.Background(), task))

	entries, err := os.ReadDir(rssDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleRunPassTaskSurvivesFetchFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT value FROM config WHERE key = \$1`).
		WithArgs("older_than").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("30"))
	mock.ExpectQuery(`SELECT \* FROM podcasts WHERE active = TRUE ORDER BY last_pub_date DESC`).
		WillReturnRows(podcastRows(upstream.URL, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	handler := NewTaskHandler(db.Registry{}, feed.NewFetcher(0), t.TempDir(), t.TempDir())

	task, err := tasks.NewRunPassTask()
	require.NoError(t, err)
	require.NoError(t, handler.HandleRunPassTask(context.Background(), task))

	assert.NoError(t, mock.ExpectationsWereMet())
}
