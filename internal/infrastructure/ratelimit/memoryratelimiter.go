package ratelimit

import (
	"sync"
	"time"
)

// MemoryLimiter is an in-process sliding-window limiter used when redis is
// disabled. Counts are per instance and lost on restart.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string][]time.Time
}

func NewMemoryLimiter() Limiter {
	return &MemoryLimiter{
		buckets: make(map[string][]time.Time),
	}
}

func (l *MemoryLimiter) Allow(key string, config Config) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	windows := []struct {
		duration time.Duration
		limit    int
	}{
		{time.Minute, config.RequestsPerMinute},
		{time.Hour, config.RequestsPerHour},
	}

	for _, window := range windows {
		if window.limit <= 0 {
			continue
		}
		if l.countLocked(key, window.duration, now) >= int64(window.limit) {
			return false, nil
		}
	}

	l.buckets[key] = append(l.buckets[key], now)
	return true, nil
}

func (l *MemoryLimiter) GetRemaining(key string, window time.Duration) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.countLocked(key, window, time.Now()), nil
}

func (l *MemoryLimiter) Reset(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
	return nil
}

// countLocked prunes entries outside the largest window and counts those
// inside the requested one. Caller holds the mutex.
func (l *MemoryLimiter) countLocked(key string, window time.Duration, now time.Time) int64 {
	const retention = time.Hour

	kept := l.buckets[key][:0]
	for _, ts := range l.buckets[key] {
		if now.Sub(ts) < retention {
			kept = append(kept, ts)
		}
	}
	l.buckets[key] = kept

	var count int64
	cutoff := now.Add(-window)
	for _, ts := range kept {
		if ts.After(cutoff) {
			count++
		}
	}
	return count
}
