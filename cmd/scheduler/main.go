package main

import (
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/atareao/podmixer/internal/config"
	"github.com/atareao/podmixer/internal/db"
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

	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		&asynq.SchedulerOpts{},
	)

	task, err := tasks.NewRunPassTask()
	if err != nil {
		log.Fatalf("could not create task: %v", err)
	}

	// sleep_time comes from the config table, like the rest of the
	// pipeline's runtime knobs.
	sleepTime := db.GetSleepTime()
	spec := fmt.Sprintf("@every %ds", sleepTime)

	if _, err := scheduler.Register(spec, task); err != nil {
		log.Fatalf("could not register task: %v", err)
	}

	log.Printf("Scheduler starting, one pass every %ds (commit: %s)", sleepTime, CommitSHA)
	if err := scheduler.Run(); err != nil {
		log.Fatalf("could not run scheduler: %v", err)
	}
}
