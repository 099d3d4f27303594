// Package connectivity tracks whether the writersroom API is reachable and
// notifies subscribers on edge transitions. Transitions come from two
// sources: a periodic health probe and explicit reports from components that
// just observed a network failure or success.
package connectivity

import (
	"context"
	"log/slog"
	gosync "sync"
	"time"

	"github.com/cjliu2003/writersroom-sub009/internal/client/sync"
)

// DefaultProbeInterval is how often the prober pings the health endpoint.
const DefaultProbeInterval = 15 * time.Second

// HealthChecker pings the API. A nil error means reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Prober polls a HealthChecker and publishes online/offline edges. Probing
// is advisory: callers may also report observed connectivity directly via
// Report, which takes effect immediately.
type Prober struct {
	checker  HealthChecker
	clock    sync.Clock
	logger   *slog.Logger
	interval time.Duration

	mu     gosync.Mutex
	online bool
	subs   []func(online bool)

	cancel context.CancelFunc
	done   chan struct{}
}

// NewProber creates a Prober that starts in the online state. Pass a
// non-positive interval to use DefaultProbeInterval.
func NewProber(checker HealthChecker, clock sync.Clock, logger *slog.Logger, interval time.Duration) *Prober {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &Prober{
		checker:  checker,
		clock:    clock,
		logger:   logger,
		interval: interval,
		online:   true,
	}
}

// Subscribe registers a callback invoked on every online/offline edge.
// Callbacks run synchronously under the Prober's lock and must not call
// back into the Prober.
func (p *Prober) Subscribe(fn func(online bool)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

// Online reports the last known connectivity state.
func (p *Prober) Online() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.online
}

// Report applies an externally observed connectivity state, e.g. a save that
// just hit a dead network or a request that just succeeded after an outage.
func (p *Prober) Report(online bool) {
	p.set(online)
}

// Start launches the background probe loop. It returns immediately; call
// Stop to shut the loop down.
func (p *Prober) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	go func() {
		defer close(done)
		for {
			if err := p.clock.Sleep(ctx, p.interval); err != nil {
				return
			}
			p.probe(ctx)
		}
	}()
}

// Stop cancels the probe loop and waits for it to exit.
func (p *Prober) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (p *Prober) probe(ctx context.Context) {
	err := p.checker.Health(ctx)
	if ctx.Err() != nil {
		return
	}
	p.set(err == nil)
}

func (p *Prober) set(online bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if online == p.online {
		return
	}
	p.online = online
	if online {
		p.logger.Info("connectivity restored")
	} else {
		p.logger.Warn("connectivity lost")
	}
	for _, fn := range p.subs {
		fn(online)
	}
}
