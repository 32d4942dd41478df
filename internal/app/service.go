// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/fermano/TennisPulse/internal/adapters/mq/kafka"
	eventqueue "github.com/fermano/TennisPulse/internal/adapters/mq/queue"
	workerpool "github.com/fermano/TennisPulse/internal/adapters/mq/worker"
	"github.com/fermano/TennisPulse/internal/adapters/registry"
	"github.com/fermano/TennisPulse/internal/adapters/repository"
	"github.com/fermano/TennisPulse/internal/aggregate"
	"github.com/fermano/TennisPulse/internal/cache"
	"github.com/fermano/TennisPulse/internal/domain/model"
	"github.com/fermano/TennisPulse/internal/domain/rules"
	"github.com/fermano/TennisPulse/internal/domain/window"
	"github.com/fermano/TennisPulse/pkg/logger"
	"github.com/fermano/TennisPulse/pkg/metrics"
)

// Service wires the ingestion pipeline, the analytics store, the registry
// and the query services, and implements the API dependency bundle.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	registry   *registry.Registry
	eventQueue eventqueue.Queue
	engine     rules.Engine
	workerPool *workerpool.Pool
	queryCache *cache.TTLCache
	ranking    *cache.CachedRanking
	highlights *cache.CachedHighlights
	timeline   *aggregate.TimelineService
	consumer   *kafka.Consumer
	publisher  *kafka.Publisher

	// Configuration
	workerCount   int
	queueSize     int
	dbPath        string
	rankingTTL    time.Duration
	highlightsTTL time.Duration
	kafkaBrokers  []string
	kafkaTopic    string
	kafkaGroup    string

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU() * 2,
		queueSize:     10_000,
		dbPath:        "tennispulse.db",
		rankingTTL:    cache.DefaultRankingTTL,
		highlightsTTL: cache.DefaultHighlightsTTL,
		stopCh:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting analytics service...")

	s.store = repository.NewMemStore()
	s.engine = rules.NewThresholdEngine()
	s.eventQueue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
		eventqueue.WithBufferSize(s.queueSize),
	)
	s.queryCache = cache.New()

	// Registry publishes completed matches back through the pipeline:
	// to kafka when configured, straight onto the queue otherwise.
	s.publisher = kafka.NewPublisher(s.kafkaBrokers, s.kafkaTopic)
	var pub registry.Publisher
	if s.publisher != nil {
		pub = s.publisher
	} else {
		pub = &queuePublisher{queue: s.eventQueue}
	}

	if s.registry == nil {
		reg, err := registry.Open(s.dbPath)
		if err != nil {
			return err
		}
		s.registry = reg
	}
	s.registry.SetPublisher(pub)

	ranking := aggregate.NewRanking(s.store, s.registry, s.registry)
	highlights := aggregate.NewHighlights(s.store, s.registry)
	s.timeline = aggregate.NewTimeline(s.store)
	s.ranking = cache.NewCachedRanking(ranking, s.queryCache, s.rankingTTL)
	s.highlights = cache.NewCachedHighlights(highlights, s.queryCache, s.highlightsTTL)

	s.workerPool = workerpool.NewPool(
		s.workerCount,
		s.eventQueue,
		s.engine,
		s.store,
		workerpool.WithInvalidator(s.queryCache),
	)
	s.workerPool.Start(ctx)

	if len(s.kafkaBrokers) > 0 {
		s.consumer = kafka.NewConsumer(s.kafkaBrokers, s.kafkaTopic, s.kafkaGroup, s)
		go func() {
			if err := s.consumer.Run(ctx); err != nil {
				s.logger.Error(ctx, "kafka consumer stopped", logger.Error(err))
			}
		}()
	}

	s.started = true
	s.logger.Info(ctx, "analytics service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.String("dbPath", s.dbPath),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping analytics service...")

	if s.consumer != nil {
		_ = s.consumer.Close()
	}
	// Close the queue first so workers drain and exit promptly.
	if q, ok := s.eventQueue.(*eventqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.workerPool != nil {
		s.workerPool.Stop()
	}
	if s.publisher != nil {
		_ = s.publisher.Close()
	}
	if s.registry != nil {
		_ = s.registry.Close()
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(ctx, "analytics service stopped")
}

// queuePublisher satisfies registry.Publisher by writing straight to the
// in-memory queue when no broker is configured.
type queuePublisher struct {
	queue eventqueue.Queue
}

func (p *queuePublisher) PublishMatchCompleted(ctx context.Context, event model.MatchCompletedEvent) error {
	if !p.queue.Enqueue(ctx, event) {
		return eventqueue.ErrQueueFull
	}
	return nil
}

// Enqueue submits an event for asynchronous processing.
func (s *Service) Enqueue(ctx context.Context, event model.MatchCompletedEvent) bool {
	s.logger.Debug(ctx, "received event",
		logger.String("matchID", event.MatchID),
		logger.Int("players", len(event.PlayerStats)),
	)

	success := s.eventQueue.Enqueue(ctx, event)
	if success {
		metrics.RecordEventConsumed()
		metrics.UpdateQueueSize(s.eventQueue.Len(ctx))
	}
	return success
}

// TopWins returns the wins ranking for the window.
func (s *Service) TopWins(ctx context.Context, w window.Window, limit int) ([]aggregate.WinsEntry, error) {
	return s.ranking.TopWins(ctx, w, limit)
}

// TopPerformance returns the performance ranking for the window.
func (s *Service) TopPerformance(ctx context.Context, w window.Window, limit int) ([]aggregate.PerformanceEntry, error) {
	return s.ranking.TopPerformance(ctx, w, limit)
}

// Highlights returns the highlights dashboard for the window.
func (s *Service) Highlights(ctx context.Context, w window.Window) (aggregate.Dashboard, error) {
	return s.highlights.Dashboard(ctx, w)
}

// Timeline returns the monthly metric timeline for one player.
func (s *Service) Timeline(ctx context.Context, playerID string, w window.Window) (aggregate.Timeline, error) {
	return s.timeline.ForPlayer(ctx, playerID, w)
}

// Registry exposes the club/player/match registry to the API layer.
func (s *Service) Registry() *registry.Registry {
	return s.registry
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}

	if s.started {
		queueLen := s.eventQueue.Len(ctx)
		records := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["records"] = records
		stats["cacheEntries"] = s.queryCache.Len()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoreRecords(records)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
