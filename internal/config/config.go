package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the process-level environment: connections and paths. Runtime
// knobs that the admin UI edits (sleep_time, older_than, channel and feed
// settings) live in the database config table instead and are re-read every
// pass.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	Port        string `env:"PORT" envDefault:"8080"`
	RSSDir      string `env:"RSS_DIR" envDefault:"rss"`
	ScratchDir  string `env:"SCRATCH_DIR" envDefault:"/tmp"`
	AdminToken  string `env:"ADMIN_TOKEN"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
