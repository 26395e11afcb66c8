package backend

import (
	"context"
	"sync"
	"time"
)

// throttle ensures a minimum interval between successive dial attempts.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

// touch restarts the interval from now.
func (t *throttle) touch() {
	if t == nil || t.interval <= 0 {
		return
	}
	t.mu.Lock()
	t.next = time.Now().Add(t.interval)
	t.mu.Unlock()
}

// wait blocks until the interval since the last touch has elapsed. It
// returns false if ctx is cancelled first.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.interval <= 0 {
		return ctx.Err() == nil
	}
	t.mu.Lock()
	wait := time.Until(t.next)
	t.mu.Unlock()
	if wait <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
