package ratelimit

import "time"

// Config holds the per-window request limits. A zero limit disables that
// window.
type Config struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

// Limiter throttles requests per key across sliding windows. Auth endpoints
// use the caller's client IP as the key.
type Limiter interface {
	Allow(key string, config Config) (bool, error)
	GetRemaining(key string, window time.Duration) (int64, error)
	Reset(key string) error
}
