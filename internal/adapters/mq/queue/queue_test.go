package queue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fermano/TennisPulse/internal/domain/model"
)

func event(matchID string) model.MatchCompletedEvent {
	return model.MatchCompletedEvent{
		MatchID:    matchID,
		WinnerID:   "p1",
		FinalScore: "6-4 6-4",
		OccurredAt: time.Now(),
		PlayerStats: []model.PlayerStats{
			{PlayerID: "p1", FirstServeIn: 70},
			{PlayerID: "p2", FirstServeIn: 55},
		},
	}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if !q.Enqueue(ctx, event("m1")) {
		t.Error("expected enqueue to succeed")
	}

	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue(ctx)
	if got.MatchID != "m1" {
		t.Errorf("expected m1, got %v", got.MatchID)
	}
	if len(got.PlayerStats) != 2 {
		t.Errorf("expected 2 player stats, got %d", len(got.PlayerStats))
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, event("m1")) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, event("m2")) {
		t.Error("expected enqueue to succeed")
	}

	// Full queue rejects without blocking.
	if q.Enqueue(ctx, event("m3")) {
		t.Error("expected enqueue to fail when full")
	}

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(100))
	ctx := context.Background()
	numGoroutines := 10
	numEvents := 50

	done := make(chan bool, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			for j := 0; j < numEvents; j++ {
				e := event(fmt.Sprintf("m%d_%d", id, j))
				for !q.Enqueue(ctx, e) {
					time.Sleep(time.Millisecond)
				}
			}
			done <- true
		}(i)
	}

	consumed := make(chan string, numGoroutines*numEvents)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			for e := range q.Dequeue(ctx) {
				consumed <- e.MatchID
			}
		}()
	}

	for i := 0; i < numGoroutines; i++ {
		<-done
	}

	time.Sleep(100 * time.Millisecond)

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected final length 0, got %d", l)
	}
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	if !q.Enqueue(ctx, event("m1")) {
		t.Error("expected enqueue to succeed")
	}

	if err := q.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to report closed")
	}

	// Closed queue rejects new events.
	if q.Enqueue(ctx, event("m2")) {
		t.Error("expected enqueue to fail after close")
	}

	// Buffered events drain, then the channel closes.
	ch := q.Dequeue(ctx)
	if got := <-ch; got.MatchID != "m1" {
		t.Errorf("expected m1, got %v", got.MatchID)
	}
	if _, ok := <-ch; ok {
		t.Error("expected dequeue channel to be closed")
	}

	// Double close is a no-op.
	if err := q.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}
}
