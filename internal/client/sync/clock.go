package sync

import (
	"context"
	"sort"
	gosync "sync"
	"time"
)

// Clock abstracts timer scheduling so tests can substitute a deterministic
// virtual clock for the real wall-clock timers that drive debounce, max-wait,
// backoff and rate-limit delays.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules f to run after d. The returned Timer can cancel
	// the callback before it fires.
	AfterFunc(d time.Duration, f func()) Timer

	// Sleep blocks until d has elapsed or ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

// Timer is a cancellable delayed task.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// callback from firing.
	Stop() bool
}

// NewClock returns a Clock backed by the time package.
func NewClock() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// VirtualClock is a manually advanced Clock for tests. Advance moves time
// forward and fires due timers in deadline order. Callbacks run outside the
// clock's own lock so they may schedule further timers.
type VirtualClock struct {
	mu     gosync.Mutex
	now    time.Time
	timers []*virtualTimer
}

// NewVirtualClock creates a VirtualClock starting at the given time.
func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{now: start}
}

type virtualTimer struct {
	clock    *VirtualClock
	deadline time.Time
	f        func()
	stopped  bool
	fired    bool
}

func (t *virtualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Now returns the virtual time.
func (c *VirtualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers f to fire once Advance moves time past d.
func (c *VirtualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &virtualTimer{clock: c, deadline: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Sleep blocks until Advance moves time past d or ctx is done.
func (c *VirtualClock) Sleep(ctx context.Context, d time.Duration) error {
	done := make(chan struct{})
	c.AfterFunc(d, func() { close(done) })
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Advance moves the virtual time forward by d and runs every timer whose
// deadline has been reached, in deadline order.
func (c *VirtualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now

	var due []*virtualTimer
	remaining := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.deadline.After(now) {
			t.fired = true
			due = append(due, t)
		} else if !t.stopped && !t.fired {
			remaining = append(remaining, t)
		}
	}
	c.timers = remaining
	sort.SliceStable(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}
