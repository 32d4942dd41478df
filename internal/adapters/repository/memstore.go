package repository

import (
	"context"
	"sync"
	"time"

	"github.com/fermano/TennisPulse/internal/domain/model"
	"github.com/fermano/TennisPulse/pkg/metrics"
)

// MemStore is an in-memory Store implementation: a flat map keyed by the
// composite id under a read/write lock. Aggregation services scan and group
// in memory, so no secondary indexes are maintained beyond a per-player one.
type MemStore struct {
	mu       sync.RWMutex
	records  map[string]model.Record
	byPlayer map[string][]string // playerID -> composite ids
	maxSize  int                 // 0 or negative = unbounded
}

// NewMemStore creates an in-memory analytics store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		records:  make(map[string]model.Record),
		byPlayer: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upsert writes a record under its composite id. Re-delivery of the same
// (match, player) pair overwrites; last writer wins.
func (s *MemStore) Upsert(ctx context.Context, rec model.Record) error {
	if rec.ID == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.records[rec.ID]
	if !exists && s.maxSize > 0 && len(s.records) >= s.maxSize {
		return ErrStoreFull
	}

	s.records[rec.ID] = rec
	if !exists {
		s.byPlayer[rec.PlayerID] = append(s.byPlayer[rec.PlayerID], rec.ID)
	}

	metrics.UpdateStoreRecords(len(s.records))
	return nil
}

// Get returns the record for the composite id.
func (s *MemStore) Get(ctx context.Context, id string) (model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return model.Record{}, ErrNotFound
	}
	return rec, nil
}

// All returns every record in the store.
func (s *MemStore) All(ctx context.Context) ([]model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out, nil
}

// ByPlayer returns all records for one player.
func (s *MemStore) ByPlayer(ctx context.Context, playerID string) ([]model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byPlayer[playerID]
	out := make([]model.Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := s.records[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Between returns records created in [from, to). Zero bounds are open.
func (s *MemStore) Between(ctx context.Context, from, to time.Time) ([]model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Record
	for _, rec := range s.records {
		if !from.IsZero() && rec.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !rec.CreatedAt.Before(to) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Count returns the number of records tracked.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
