package repository

// storeConfig holds construction-time settings shared by the memory stores.
type storeConfig struct {
	initialCapacity int
}

// Option applies a configuration option to a memory store.
type Option func(*storeConfig)

// WithInitialCapacity pre-sizes the backing map.
func WithInitialCapacity(n int) Option {
	return func(c *storeConfig) {
		if n > 0 {
			c.initialCapacity = n
		}
	}
}

func newStoreConfig(opts ...Option) storeConfig {
	cfg := storeConfig{initialCapacity: 64}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
