package repository

import "errors"

// Sentinel kinds for analytics store errors.
var (
	ErrNotFound  = errors.New("analytics record not found")
	ErrEmptyID   = errors.New("analytics record id must not be empty")
	ErrStoreFull = errors.New("analytics store capacity exceeded")
)
