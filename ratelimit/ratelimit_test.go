package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func newTestLimiter(limit int, clock *fakeClock) *Limiter {
	l := New(limit)
	l.now = clock.Now
	return l
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestCheckCountsDownToZero(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	limiter := newTestLimiter(3, clock)

	for want := 2; want >= 0; want-- {
		res := limiter.Check("10.0.0.1")
		if !res.Allowed {
			t.Fatalf("expected request with %d remaining to be allowed", want)
		}
		if res.Remaining != want {
			t.Fatalf("expected %d remaining, got %d", want, res.Remaining)
		}
	}

	res := limiter.Check("10.0.0.1")
	if res.Allowed {
		t.Fatal("expected request over the limit to be denied")
	}
	if res.Remaining != 0 {
		t.Fatalf("expected 0 remaining when denied, got %d", res.Remaining)
	}
}

func TestWindowStartsAtFirstQuery(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	limiter := newTestLimiter(10, clock)

	clock.Advance(5 * time.Hour)
	res := limiter.Check("10.0.0.1")
	if got, want := res.ResetAt, start.Add(5*time.Hour).Add(24*time.Hour); !got.Equal(want) {
		t.Fatalf("expected reset at %v, got %v", want, got)
	}

	// Later queries in the same window keep the original reset time.
	clock.Advance(time.Hour)
	if got := limiter.Check("10.0.0.1").ResetAt; !got.Equal(res.ResetAt) {
		t.Fatalf("expected unchanged reset time, got %v", got)
	}
}

func TestQuotaResetsAfterWindowExpires(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	limiter := newTestLimiter(1, clock)

	if !limiter.Check("10.0.0.1").Allowed {
		t.Fatal("expected first request to be allowed")
	}
	if limiter.Check("10.0.0.1").Allowed {
		t.Fatal("expected second request to be denied")
	}

	clock.Advance(24*time.Hour + time.Second)

	res := limiter.Check("10.0.0.1")
	if !res.Allowed {
		t.Fatal("expected request after window expiry to be allowed")
	}
	if res.Remaining != 0 {
		t.Fatalf("expected fresh window with 0 remaining at limit 1, got %d", res.Remaining)
	}
}

func TestIdentifiersAreIndependent(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	limiter := newTestLimiter(1, clock)

	limiter.Check("10.0.0.1")
	if limiter.Check("10.0.0.1").Allowed {
		t.Fatal("expected first identifier to be exhausted")
	}
	if !limiter.Check("10.0.0.2").Allowed {
		t.Fatal("expected second identifier to have its own quota")
	}
}

func TestRemainingDoesNotConsumeQuota(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	limiter := newTestLimiter(5, clock)

	if got := limiter.Remaining("10.0.0.1"); got != 5 {
		t.Fatalf("expected full quota for unseen identifier, got %d", got)
	}

	limiter.Check("10.0.0.1")
	for i := 0; i < 10; i++ {
		if got := limiter.Remaining("10.0.0.1"); got != 4 {
			t.Fatalf("expected 4 remaining, got %d", got)
		}
	}
}

func TestConcurrentChecksNeverExceedLimit(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	limiter := newTestLimiter(10, clock)

	var wg sync.WaitGroup
	allowed := make(chan bool, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- limiter.Check("10.0.0.1").Allowed
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	if count != 10 {
		t.Fatalf("expected exactly 10 allowed requests, got %d", count)
	}
}
