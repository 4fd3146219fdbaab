package config

import (
	"fmt"
	"log"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppHost                string `envconfig:"APP_HOST" default:"127.0.0.1"`
	AppPort                string `envconfig:"APP_PORT" default:"8080"`
	DatabaseDSN            string `envconfig:"DATABASE_DSN" default:"market.db"`
	RedisHost              string `envconfig:"REDIS_HOST" default:"127.0.0.1"`
	RedisPort              string `envconfig:"REDIS_PORT" default:"6379"`
	RateLimit              int    `envconfig:"RATE_LIMIT_PER_MINUTE" default:"60"`
	WebhookSecret          string `envconfig:"WEBHOOK_SECRET" default:""`
	WebhookToleranceSecs   int    `envconfig:"WEBHOOK_TOLERANCE_SECONDS" default:"300"`
	DedupPolicy            string `envconfig:"DEDUP_POLICY" default:"block-non-rejected"`
	SweepWorkers           int    `envconfig:"SWEEP_WORKERS" default:"2"`
	SweepQueueSize         int    `envconfig:"SWEEP_QUEUE_SIZE" default:"50"`
	SweepIntervalSeconds   int    `envconfig:"SWEEP_INTERVAL_SECONDS" default:"60"`
	SweepStaleAfterSeconds int    `envconfig:"SWEEP_STALE_AFTER_SECONDS" default:"300"`
	SweepBatchSize         int    `envconfig:"SWEEP_BATCH_SIZE" default:"50"`
	ShutdownTimeoutSeconds int    `envconfig:"SHUTDOWN_TIMEOUT_SECONDS" default:"20"`
}

func Load() Config {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	validate(cfg)
	return cfg
}

func (c Config) AppURL() string {
	return fmt.Sprintf("%s:%s", c.AppHost, c.AppPort)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func validate(cfg Config) {
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.WebhookSecret == "" {
		log.Fatal("WEBHOOK_SECRET must not be empty")
	}
	if cfg.WebhookToleranceSecs <= 0 {
		log.Fatal("WEBHOOK_TOLERANCE_SECONDS must be greater than 0")
	}
	if cfg.DedupPolicy != "block-non-rejected" && cfg.DedupPolicy != "block-success-only" {
		log.Fatal("DEDUP_POLICY must be block-non-rejected or block-success-only")
	}
	if cfg.SweepWorkers <= 0 {
		log.Fatal("SWEEP_WORKERS must be greater than 0")
	}
	if cfg.SweepQueueSize <= 0 {
		log.Fatal("SWEEP_QUEUE_SIZE must be greater than 0")
	}
	if cfg.SweepIntervalSeconds <= 0 {
		log.Fatal("SWEEP_INTERVAL_SECONDS must be greater than 0")
	}
	if cfg.SweepStaleAfterSeconds <= 0 {
		log.Fatal("SWEEP_STALE_AFTER_SECONDS must be greater than 0")
	}
	if cfg.SweepBatchSize <= 0 {
		log.Fatal("SWEEP_BATCH_SIZE must be greater than 0")
	}
}
