// Package repository defines the analytics store interface and errors.
//
// The store holds exactly one record per (match, player) pair, keyed by the
// composite `matchId:playerId` identity. Writes are idempotent upserts so
// at-least-once event delivery never duplicates records.
package repository

import (
	"context"
	"time"

	"github.com/fermano/TennisPulse/internal/domain/model"
)

// Store provides read/write access to analytics records.
type Store interface {
	// Upsert writes a record under its composite id, replacing any
	// previous record for the same (match, player) pair.
	Upsert(ctx context.Context, rec model.Record) error

	// Get returns the record for the composite id.
	// Returns ErrNotFound if no record exists.
	Get(ctx context.Context, id string) (model.Record, error)

	// All returns every record in the store.
	All(ctx context.Context) ([]model.Record, error)

	// ByPlayer returns all records for one player.
	ByPlayer(ctx context.Context, playerID string) ([]model.Record, error)

	// Between returns records whose creation time falls in [from, to).
	// A zero bound means unbounded on that side.
	Between(ctx context.Context, from, to time.Time) ([]model.Record, error)

	// Count returns the number of records tracked.
	Count(ctx context.Context) int
}
