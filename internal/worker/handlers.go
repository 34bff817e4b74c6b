package worker

import (
	"context"
	"fmt"
	"log"

	tgbot "github.com/go-telegram/bot"
	"github.com/hibiken/asynq"

	"github.com/atareao/podmixer/internal/aggregator"
	"github.com/atareao/podmixer/internal/db"
	"github.com/atareao/podmixer/internal/notify"
	"github.com/atareao/podmixer/internal/publisher"
)

// TaskHandler drives one pipeline pass per task: aggregate, then (only when
// something new appeared) notify and republish.
type TaskHandler struct {
	registry   aggregator.Registry
	fetcher    aggregator.Fetcher
	rssDir     string
	scratchDir string

	// telegramOpts lets tests point the bot client at a fake server.
	telegramOpts []tgbot.Option
}

func NewTaskHandler(registry aggregator.Registry, fetcher aggregator.Fetcher, rssDir, scratchDir string) *TaskHandler {
	return &TaskHandler{
		registry:   registry,
		fetcher:    fetcher,
		rssDir:     rssDir,
		scratchDir: scratchDir,
	}
}

func (h *TaskHandler) HandleRunPassTask(ctx context.Context, t *asynq.Task) (err error) {
	// The pass boundary: nothing that happens inside a pass may take the
	// worker down. asynq handles retries for returned errors.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Pass panicked: %v", r)
			err = nil
		}
	}()

	windowDays := db.GetOlderThan()

	report, err := aggregator.New(h.registry, h.fetcher).RunPass(ctx, windowDays)
	if err != nil {
		return fmt.Errorf("failed to run pass: %w", err)
	}

	log.Printf("Pass done: %d podcasts ok, %d failed, %d new, %d recent, %d total",
		report.PodcastsOK, report.PodcastsFailed,
		len(report.New), len(report.Recent), len(report.All))

	if !report.Generate {
		return nil
	}

	notifier := notify.New(h.buildChannels()...)
	notifier.Notify(ctx, report.New)

	feedCfg, err := db.GetFeedConfig()
	if err != nil {
		return fmt.Errorf("failed to get feed config: %w", err)
	}

	if err := publisher.New(h.rssDir).Publish(feedCfg, report.Recent, report.All); err != nil {
		// Already logged per document; the pass itself is done and the
		// watermarks are committed, so this is not worth a retry.
		log.Printf("Publish finished with errors: %v", err)
	}

	return nil
}

// buildChannels reads the channel configurations fresh from the config
// store; credentials and templates may have changed since the last pass.
func (h *TaskHandler) buildChannels() []notify.Channel {
	var channels []notify.Channel

	telegramCfg, err := db.GetTelegramConfig()
	if err != nil {
		log.Printf("Error reading telegram config: %v", err)
	} else if telegramCfg.Active {
		telegram, err := notify.NewTelegram(telegramCfg, h.scratchDir, h.telegramOpts...)
		if err != nil {
			log.Printf("Error creating telegram channel: %v", err)
		} else {
			channels = append(channels, telegram)
		}
	}

	twitterCfg, err := db.GetTwitterConfig()
	if err != nil {
		log.Printf("Error reading twitter config: %v", err)
	} else if twitterCfg.Active {
		channels = append(channels, notify.NewTwitter(twitterCfg, db.Params{}))
	}

	return channels
}
