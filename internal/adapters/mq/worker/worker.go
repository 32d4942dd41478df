// Package worker defines worker contracts for asynchronous match analysis.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/fermano/TennisPulse/internal/domain/metric"
	"github.com/fermano/TennisPulse/internal/domain/model"
	"github.com/fermano/TennisPulse/internal/domain/rules"
	"github.com/fermano/TennisPulse/pkg/logger"
	"github.com/fermano/TennisPulse/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 4 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Event abstracts what workers read off the queue.
type Event = model.MatchCompletedEvent

// Engine classifies a player's raw match metrics.
type Engine interface {
	Analyze(matchID, playerID string, raw map[metric.Kind]float64) rules.Analysis
}

// Writer persists analytics records.
type Writer interface {
	Upsert(ctx context.Context, rec model.Record) error
}

// Invalidator is notified after a record lands so stale query results
// can be dropped.
type Invalidator interface {
	InvalidateRankings()
}

// Queue defines how workers receive events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// Worker processes match completed events and writes analytics records.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining events before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing events.
type InMemoryWorker struct {
	queue       Queue
	engine      Engine
	writer      Writer
	invalidator Invalidator
	name        string
	now         func() time.Time

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, engine Engine, writer Writer, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		engine:   engine,
		writer:   writer,
		name:     "worker",
		now:      time.Now,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	eventChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case event, ok := <-eventChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.processEvent(ctx, event); err != nil {
				w.logger.Error(ctx, "error processing event", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processEvent analyzes every player line in the event and upserts one
// analytics record per player. Events with no player stats are skipped,
// not failed: a match without stats is valid but carries nothing to score.
func (w *InMemoryWorker) processEvent(ctx context.Context, event Event) error {
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordWorkerProcessingLatency(float64(latency))
	}()

	if len(event.PlayerStats) == 0 {
		w.logger.Warn(ctx, "event has no player stats, skipping",
			logger.String("matchID", event.MatchID),
		)
		metrics.RecordEventSkipped()
		return nil
	}

	createdAt := w.now()
	for i := range event.PlayerStats {
		stats := event.PlayerStats[i]

		classifyStart := time.Now()
		analysis := w.engine.Analyze(event.MatchID, stats.PlayerID, stats.RawMetrics())
		metrics.RecordClassificationLatency(float64(time.Since(classifyStart).Milliseconds()))

		rec := model.Record{
			ID:             model.RecordID(event.MatchID, stats.PlayerID),
			MatchID:        event.MatchID,
			PlayerID:       stats.PlayerID,
			WinnerID:       event.WinnerID,
			FinalScore:     event.FinalScore,
			RawStats:       stats,
			Metrics:        analysis.Metrics,
			CoachingStatus: analysis.CoachingStatus,
			Tips:           analysis.Tips,
			EngineVersion:  analysis.EngineVersion,
			CreatedAt:      createdAt,
		}

		if err := w.writer.Upsert(ctx, rec); err != nil {
			metrics.RecordRecordWriteError()
			metrics.RecordWorkerError()
			w.logger.Error(ctx, "record write failed",
				logger.String("recordID", rec.ID),
				logger.Error(err),
			)
			return fmt.Errorf("failed to store record %s: %w", rec.ID, err)
		}

		metrics.RecordRecordWritten()
	}

	if w.invalidator != nil {
		w.invalidator.InvalidateRankings()
	}

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	engine  Engine
	writer  Writer

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, engine Engine, writer Writer, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    queue,
		engine:   engine,
		writer:   writer,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		workerOpts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		pool.workers[i] = NewInMemoryWorker(queue, engine, writer, workerOpts...)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		select {
		case <-worker.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// First close the queue to stop new events
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
