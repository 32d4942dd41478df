// Package registry provides the SQLite-backed club, player and match
// registry. It is the system of record for match lifecycle; completing a
// match with a stats payload hands a MatchCompletedEvent to the configured
// Publisher and from there into the analytics pipeline.
package registry

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fermano/TennisPulse/internal/domain/model"
	"github.com/fermano/TennisPulse/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

// UnknownName is returned when a player id cannot be resolved.
const UnknownName = "Unknown"

// Publisher hands a completed match to the ingestion pipeline.
type Publisher interface {
	PublishMatchCompleted(ctx context.Context, event model.MatchCompletedEvent) error
}

// Registry wraps a sql.DB for the club/player/match registry.
type Registry struct {
	conn      *sql.DB
	publisher Publisher
	now       func() time.Time
	idgen     func() string
	logger    logger.Logger
}

// Open opens (or creates) the SQLite database at the given path, applies the
// schema and returns the registry.
func Open(path string, opts ...Option) (*Registry, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	r := &Registry{
		conn:   conn,
		now:    time.Now,
		idgen:  newID,
		logger: logger.Get().Named("registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Close closes the underlying connection.
func (r *Registry) Close() error {
	return r.conn.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullableTime maps an optional column to a time, zero when NULL.
func nullableTime(v sql.NullString) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return parseTime(v.String)
}
