package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tgbot "github.com/go-telegram/bot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atareao/podmixer/internal/models"
)

func telegramConfig() models.TelegramConfig {
	return models.TelegramConfig{
		Active:   true,
		Token:    "12345:token",
		ChatID:   "-1001234",
		ThreadID: "7",
		Template: "{{.Title}}",
	}
}

func newTestTelegram(t *testing.T, botHandler http.HandlerFunc) (*Telegram, string) {
	t.Helper()
	botServer := httptest.NewServer(botHandler)
	t.Cleanup(botServer.Close)

	scratchDir := t.TempDir()
	telegram, err := NewTelegram(telegramConfig(), scratchDir,
		tgbot.WithServerURL(botServer.URL), tgbot.WithSkipGetMe())
	require.NoError(t, err)
	return telegram, scratchDir
}

func TestTelegramNotifyUploadsAudio(t *testing.T) {
	enclosure := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("audio-bytes"))
	}))
	defer enclosure.Close()

	var gotPath, gotCaption, gotThread string
	telegram, scratchDir := newTestTelegram(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		gotCaption = r.FormValue("caption")
		gotThread = r.FormValue("message_thread_id")
		w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	})

	episode := models.Episode{
		Title:        "Episode One",
		EnclosureURL: enclosure.URL + "/audio/episode-one.mp3",
	}
	err := telegram.Notify(context.Background(), "caption text", episode)

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(gotPath, "/sendAudio"), "unexpected bot path %q", gotPath)
	assert.Equal(t, "caption text", gotCaption)
	assert.Equal(t, "7", gotThread)

	// Scratch file is cleaned up after the upload.
	entries, err := os.ReadDir(scratchDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTelegramNotifyCleansScratchOnUploadFailure(t *testing.T) {
	enclosure := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("audio-bytes"))
	}))
	defer enclosure.Close()

	telegram, scratchDir := newTestTelegram(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request"}`))
	})

	episode := models.Episode{
		Title:        "Episode One",
		EnclosureURL: enclosure.URL + "/audio/episode-one.mp3",
	}
	err := telegram.Notify(context.Background(), "caption text", episode)

	require.Error(t, err)
	entries, readErr := os.ReadDir(scratchDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestTelegramNotifyRequiresEnclosure(t *testing.T) {
	telegram, _ := newTestTelegram(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("bot API should not be called")
	})

	err := telegram.Notify(context.Background(), "caption", models.Episode{Title: "No Audio"})
	require.Error(t, err)
}

func TestTelegramNotifyDownloadFailure(t *testing.T) {
	enclosure := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer enclosure.Close()

	telegram, scratchDir := newTestTelegram(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("bot API should not be called")
	})

	episode := models.Episode{
		Title:        "Missing",
		EnclosureURL: enclosure.URL + "/gone.mp3",
	}
	err := telegram.Notify(context.Background(), "caption", episode)

	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(scratchDir, "Missing.mp3"))
	assert.True(t, os.IsNotExist(statErr))
}
