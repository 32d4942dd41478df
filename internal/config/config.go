// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Load layers defaults, optional YAML file, and TP_-prefixed env vars.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// EventQueueSize bounds the in-memory event queue.
	EventQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingestion workers.
	WorkerCount int `koanf:"worker_count"`

	// MaxLimit caps ?limit on the ranking endpoints.
	MaxLimit int `koanf:"max_limit"`

	// DBPath locates the SQLite registry database file.
	DBPath string `koanf:"db_path"`

	// RankingCacheTTLMin and HighlightsCacheTTLMin control query cache expiry.
	RankingCacheTTLMin    int `koanf:"ranking_cache_ttl_min"`
	HighlightsCacheTTLMin int `koanf:"highlights_cache_ttl_min"`

	// KafkaBrokers enables the broker bridge when non-empty.
	KafkaBrokers []string `koanf:"kafka_brokers"`

	// KafkaTopic is the match completed events topic.
	KafkaTopic string `koanf:"kafka_topic"`

	// KafkaGroup is the consumer group id.
	KafkaGroup string `koanf:"kafka_group"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":9080",
		EventQueueSize:        10_000,
		WorkerCount:           runtime.NumCPU() * 4,
		MaxLimit:              100,
		DBPath:                "tennispulse.db",
		RankingCacheTTLMin:    30,
		HighlightsCacheTTLMin: 60,
		KafkaTopic:            "match-completed-events",
		KafkaGroup:            "tennispulse-analytics",
	}
}
