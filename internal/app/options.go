package service

import (
	"time"

	"github.com/fermano/TennisPulse/internal/adapters/registry"
	"github.com/fermano/TennisPulse/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingestion workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the event queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDBPath sets the SQLite registry database location.
func WithDBPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithRegistry injects an already-open registry, mainly for tests.
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Service) {
		s.registry = reg
	}
}

// WithCacheTTLs overrides the ranking and highlights cache expiry.
func WithCacheTTLs(ranking, highlights time.Duration) Option {
	return func(s *Service) {
		if ranking > 0 {
			s.rankingTTL = ranking
		}
		if highlights > 0 {
			s.highlightsTTL = highlights
		}
	}
}

// WithKafka enables the broker bridge.
func WithKafka(brokers []string, topic, group string) Option {
	return func(s *Service) {
		s.kafkaBrokers = brokers
		s.kafkaTopic = topic
		s.kafkaGroup = group
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
