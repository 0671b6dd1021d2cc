// Package ratelimit provides cost-aware rate limiting using a token bucket
// per client. A single match costs one token; a batch costs one token per
// candidate-job pair, so large batches draw down the same budget they would
// have as individual calls.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket refilling at a steady rate.
type bucket struct {
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

// refill advances the bucket to now.
func (b *bucket) refill(now time.Time) {
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now
}

// Info reports the outcome of an Allow call.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	PerMinute       int           // sustained token budget per client per minute
	Burst           int           // bucket capacity; defaults to PerMinute
	CleanupInterval time.Duration // idle bucket eviction period
}

// Limiter manages per-client token buckets.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  Config
	ticker  *time.Ticker
	stop    chan struct{}
}

// NewLimiter creates a limiter. A nil config enables the defaults.
func NewLimiter(config *Config) *Limiter {
	cfg := Config{
		Enabled:         true,
		PerMinute:       600,
		CleanupInterval: 5 * time.Minute,
	}
	if config != nil {
		cfg = *config
	}
	if cfg.Burst == 0 {
		cfg.Burst = cfg.PerMinute
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  cfg,
	}

	if cfg.Enabled && cfg.CleanupInterval > 0 {
		l.ticker = time.NewTicker(cfg.CleanupInterval)
		l.stop = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow checks whether a request of the given cost is within the client's
// budget and consumes the tokens if so. Cost below one is treated as one.
func (l *Limiter) Allow(clientID string, cost int) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}
	if cost < 1 {
		cost = 1
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[clientID]
	if !ok {
		b = &bucket{
			capacity:   float64(l.config.Burst),
			refillRate: float64(l.config.PerMinute) / 60.0,
			tokens:     float64(l.config.Burst),
			lastRefill: now,
		}
		l.buckets[clientID] = b
	}
	b.refill(now)
	b.lastAccess = now

	info := Info{Limit: l.config.PerMinute}
	if b.tokens >= float64(cost) {
		b.tokens -= float64(cost)
		info.Allowed = true
		info.Remaining = int(b.tokens)
		return true, info
	}

	deficit := float64(cost) - b.tokens
	info.Remaining = int(b.tokens)
	info.RetryAfter = time.Duration(deficit / b.refillRate * float64(time.Second))
	return false, info
}

// Stop halts the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
		close(l.stop)
	}
}

// cleanupLoop evicts buckets idle long enough to have refilled completely.
func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.ticker.C:
			cutoff := time.Now().Add(-l.config.CleanupInterval)
			l.mu.Lock()
			for id, b := range l.buckets {
				if b.lastAccess.Before(cutoff) {
					delete(l.buckets, id)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}
