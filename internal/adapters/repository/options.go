package repository

// Option configures a MemStore.
type Option func(*MemStore)

// WithMaxSize caps how many records the store will hold. Zero or negative
// means unbounded.
func WithMaxSize(n int) Option {
	return func(s *MemStore) {
		s.maxSize = n
	}
}
