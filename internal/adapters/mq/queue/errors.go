package queue

import "errors"

// Sentinel errors for queue operations.
var (
	// ErrQueueFull signals backpressure: the queue rejected an enqueue.
	ErrQueueFull = errors.New("event queue full")

	// ErrQueueClosed signals an enqueue after shutdown began.
	ErrQueueClosed = errors.New("event queue closed")
)
