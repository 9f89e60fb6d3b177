package source

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMinInterval is the default minimum spacing between requests to
// the same source.
const DefaultMinInterval = 100 * time.Millisecond

// Throttle enforces a minimum interval between requests per source key.
// Limiters are created lazily; the map is guarded so concurrent source
// fetches can share one Throttle.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	limiters map[string]*rate.Limiter
}

// NewThrottle creates a Throttle with the given minimum inter-request
// interval. Non-positive intervals fall back to DefaultMinInterval.
func NewThrottle(minInterval time.Duration) *Throttle {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &Throttle{
		interval: minInterval,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until the source identified by key may issue its next
// request, or the context is done.
func (t *Throttle) Wait(ctx context.Context, key string) error {
	t.mu.Lock()
	lim, ok := t.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(t.interval), 1)
		t.limiters[key] = lim
	}
	t.mu.Unlock()

	return lim.Wait(ctx)
}
