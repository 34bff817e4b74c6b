package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tgbot "github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	"github.com/atareao/podmixer/internal/models"
)

const downloadTimeout = 5 * time.Minute

// Telegram announces episodes to a chat (optionally a forum topic thread) by
// uploading the enclosure audio with the rendered message as caption.
type Telegram struct {
	cfg        models.TelegramConfig
	bot        *tgbot.Bot
	threadID   int
	client     *http.Client
	scratchDir string
}

func NewTelegram(cfg models.TelegramConfig, scratchDir string, opts ...tgbot.Option) (*Telegram, error) {
	b, err := tgbot.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}

	threadID, err := strconv.Atoi(cfg.ThreadID)
	if err != nil {
		threadID = 0
	}

	return &Telegram{
		cfg:        cfg,
		bot:        b,
		threadID:   threadID,
		client:     &http.Client{Timeout: downloadTimeout},
		scratchDir: scratchDir,
	}, nil
}

func (t *Telegram) Name() string {
	return "telegram"
}

func (t *Telegram) Active() bool {
	return t.cfg.Active
}

func (t *Telegram) Template() string {
	return t.cfg.Template
}

// Notify downloads the enclosure to the scratch dir, uploads it with the
// caption, and removes the scratch file whatever the upload outcome.
func (t *Telegram) Notify(ctx context.Context, message string, episode models.Episode) error {
	if episode.EnclosureURL == "" {
		return &ChannelError{Channel: t.Name(), Err: errors.New("episode has no enclosure")}
	}

	filename := SafeFilename(episode.Title, episode.EnclosureURL)
	scratchPath := filepath.Join(t.scratchDir, filename)

	if err := t.download(ctx, episode.EnclosureURL, scratchPath); err != nil {
		return &ChannelError{Channel: t.Name(), Err: err}
	}
	defer os.Remove(scratchPath)

	audio, err := os.Open(scratchPath)
	if err != nil {
		return &ChannelError{Channel: t.Name(), Err: err}
	}
	defer audio.Close()

	_, err = t.bot.SendAudio(ctx, &tgbot.SendAudioParams{
		ChatID:          t.cfg.ChatID,
		MessageThreadID: t.threadID,
		Audio:           &tgmodels.InputFileUpload{Filename: filename, Data: audio},
		Caption:         message,
		ParseMode:       tgmodels.ParseModeHTML,
	})
	if err != nil {
		return &ChannelError{Channel: t.Name(), Err: fmt.Errorf("sendAudio: %w", err)}
	}
	return nil
}

// SendMessage posts a plain text message, used by channels without audio.
func (t *Telegram) SendMessage(ctx context.Context, message string) error {
	_, err := t.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:          t.cfg.ChatID,
		MessageThreadID: t.threadID,
		Text:            message,
		ParseMode:       tgmodels.ParseModeHTML,
	})
	if err != nil {
		return &ChannelError{Channel: t.Name(), Err: fmt.Errorf("sendMessage: %w", err)}
	}
	return nil
}

func (t *Telegram) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("download enclosure: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("download enclosure: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("download enclosure: HTTP %d", resp.StatusCode)
	}

	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create scratch file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		os.Remove(dest)
		return fmt.Errorf("write scratch file: %w", err)
	}
	return nil
}
