package main

import (
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/atareao/podmixer/internal/config"
	"github.com/atareao/podmixer/internal/db"
	"github.com/atareao/podmixer/internal/feed"
	"github.com/atareao/podmixer/internal/worker"
	"github.com/atareao/podmixer/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	db.InitDB(cfg.DatabaseURL)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{
			// One pass at a time: podcasts are fetched sequentially
			// and the channels are rate limited anyway.
			Concurrency: 1,
			// Custom retry delay function for exponential backoff
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				delay := 5 * time.Minute
				maxDelay := 24 * time.Hour

				// Exponential backoff: 5min, 10min, 20min, 40min, 80min, etc.
				for i := 0; i < n; i++ {
					delay *= 2
					if delay > maxDelay {
						delay = maxDelay
						break
					}
				}

				log.Printf("Task %s failed %d times, retrying in %v", task.Type(), n+1, delay)
				return delay
			},
		},
	)

	taskHandler := worker.NewTaskHandler(
		db.Registry{},
		feed.NewFetcher(0),
		cfg.RSSDir,
		cfg.ScratchDir,
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeRunPass, taskHandler.HandleRunPassTask)

	log.Printf("Worker starting (commit: %s)", CommitSHA)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
