package redis

// Config holds Redis connection settings
type Config struct {
	// URL is the Redis connection URL (redis://host:port/db)
	URL string

	// PoolSize is the maximum number of connections
	PoolSize int

	// MinIdleConns is the minimum number of idle connections to keep
	MinIdleConns int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379/0",
		PoolSize:     10,
		MinIdleConns: 2,
	}
}
