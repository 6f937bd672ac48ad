// Package ratelimit keeps one token bucket per key, typically a client IP.
// Buckets that go unused for the idle TTL are dropped by a janitor goroutine.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const DefaultTTL = 10 * time.Minute

type bucket struct {
	*rate.Limiter
	used time.Time
}

// Limiter is a set of rate.Limiters keyed by string. Call Stop to end the janitor.
type Limiter struct {
	limit rate.Limit
	burst int
	ttl   time.Duration
	clock func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	quit chan struct{}
	once sync.Once
}

// New allows rps events per second per key with the given burst.
func New(rps float64, burst int) *Limiter {
	return NewWithTTL(rps, burst, DefaultTTL)
}

func NewWithTTL(rps float64, burst int, ttl time.Duration) *Limiter {
	l := &Limiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
		clock:   time.Now,
		buckets: make(map[string]*bucket),
		quit:    make(chan struct{}),
	}
	go l.janitor()
	return l
}

// PerMinute converts n events per minute to the per-second rate New expects.
func PerMinute(n int) float64 {
	return float64(n) / 60
}

// Allow takes a token from key's bucket without blocking.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{Limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.used = l.clock()
	l.mu.Unlock()

	return b.Allow()
}

// Len reports how many keys currently hold a bucket.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.quit) })
}

// sweep drops buckets idle for longer than ttl and returns how many went.
func (l *Limiter) sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.clock().Add(-l.ttl)
	n := len(l.buckets)
	for key, b := range l.buckets {
		if b.used.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
	return n - len(l.buckets)
}

func (l *Limiter) janitor() {
	every := max(l.ttl/2, time.Second)
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-l.quit:
			return
		case <-t.C:
			l.sweep()
		}
	}
}
