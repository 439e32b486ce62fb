// Package ratelimit enforces a fixed daily query quota per client.
package ratelimit

import (
	"sync"
	"time"
)

// Result reports the outcome of one quota check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter counts queries per identifier within a rolling 24-hour window
// started by the identifier's first query. State is in-memory only and
// resets on restart, which is acceptable for a demo quota.
type Limiter struct {
	limit int
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

func New(limit int) *Limiter {
	return &Limiter{
		limit:   limit,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Check records one query attempt for identifier and reports whether it is
// allowed under the daily limit.
func (l *Limiter) Check(identifier string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	current, ok := l.entries[identifier]
	if ok && current.resetAt.Before(now) {
		delete(l.entries, identifier)
		ok = false
	}

	if !ok {
		resetAt := now.Add(24 * time.Hour)
		l.entries[identifier] = entry{count: 1, resetAt: resetAt}
		return Result{Allowed: true, Remaining: l.limit - 1, ResetAt: resetAt}
	}

	if current.count >= l.limit {
		return Result{Allowed: false, Remaining: 0, ResetAt: current.resetAt}
	}

	current.count++
	l.entries[identifier] = current
	return Result{Allowed: true, Remaining: l.limit - current.count, ResetAt: current.resetAt}
}

// Remaining reports how many queries identifier has left without counting
// an attempt.
func (l *Limiter) Remaining(identifier string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, ok := l.entries[identifier]
	if !ok || current.resetAt.Before(l.now()) {
		return l.limit
	}

	if remaining := l.limit - current.count; remaining > 0 {
		return remaining
	}
	return 0
}
