package auth

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Decision is the outcome of a rate limit check
type Decision struct {
	Allowed   bool
	Remaining int
}

// RateLimiter enforces a sliding-window request cap per client key. Distinct
// keys are bounded by an LRU so memory stays bounded under key churn.
// One limiter instance exists per endpoint class; instances are never shared
// across classes.
type RateLimiter struct {
	name   string
	limit  int
	window time.Duration

	mu      sync.Mutex
	buckets *lru.Cache[string, *bucket]
}

type bucket struct {
	stamps []time.Time
}

// NewRateLimiter creates a named limiter. maxKeys caps the number of
// distinct client keys tracked at once.
func NewRateLimiter(name string, limit int, window time.Duration, maxKeys int) (*RateLimiter, error) {
	if maxKeys <= 0 {
		maxKeys = 1000
	}
	cache, err := lru.New[string, *bucket](maxKeys)
	if err != nil {
		return nil, err
	}
	return &RateLimiter{
		name:    name,
		limit:   limit,
		window:  window,
		buckets: cache,
	}, nil
}

// Name returns the limiter's endpoint class name
func (rl *RateLimiter) Name() string {
	return rl.name
}

// Check prunes the key's window, then either denies with Remaining=0 or
// records the request and reports how many remain. An abandoned request
// still counts; at-least-once counting is acceptable.
func (rl *RateLimiter) Check(key string) Decision {
	now := time.Now()
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets.Get(key)
	if !ok {
		b = &bucket{}
		rl.buckets.Add(key, b)
	}

	// Drop timestamps that fell out of the window
	live := b.stamps[:0]
	for _, ts := range b.stamps {
		if ts.After(cutoff) {
			live = append(live, ts)
		}
	}
	b.stamps = live

	if len(b.stamps) >= rl.limit {
		return Decision{Allowed: false, Remaining: 0}
	}

	b.stamps = append(b.stamps, now)
	return Decision{Allowed: true, Remaining: rl.limit - len(b.stamps)}
}

// Len reports the number of tracked keys
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.buckets.Len()
}
