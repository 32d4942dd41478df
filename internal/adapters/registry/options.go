package registry

import (
	"time"

	"github.com/google/uuid"

	"github.com/fermano/TennisPulse/pkg/logger"
)

// Option applies a configuration option to the Registry.
type Option func(*Registry)

// WithPublisher sets the publisher notified when a match completes with a
// stats payload.
func WithPublisher(pub Publisher) Option {
	return func(r *Registry) {
		r.publisher = pub
	}
}

// SetPublisher attaches the publisher after Open, for callers that wire the
// pipeline around an already-open registry.
func (r *Registry) SetPublisher(pub Publisher) {
	r.publisher = pub
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides how new entity ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(r *Registry) {
		if gen != nil {
			r.idgen = gen
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

func newID() string {
	return uuid.NewString()
}
