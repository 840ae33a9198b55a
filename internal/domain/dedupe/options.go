package dedupe

type settings struct {
	capacity int
}

// Option applies a configuration option to NewTitleSet.
type Option func(*settings)

// WithCapacity pre-sizes the set for n keys.
func WithCapacity(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.capacity = n
		}
	}
}
