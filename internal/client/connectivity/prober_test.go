package connectivity

import (
	"context"
	"errors"
	"log/slog"
	"os"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syncpkg "github.com/cjliu2003/writersroom-sub009/internal/client/sync"
)

type fakeChecker struct {
	mu  gosync.Mutex
	err error
}

func (f *fakeChecker) Health(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakeChecker) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func TestProber_ReportEdgesNotifySubscribers(t *testing.T) {
	clock := syncpkg.NewVirtualClock(time.Unix(0, 0))
	p := NewProber(&fakeChecker{}, clock, testLogger(), 0)

	var edges []bool
	p.Subscribe(func(online bool) { edges = append(edges, online) })

	require.True(t, p.Online())

	p.Report(true) // no edge
	p.Report(false)
	p.Report(false) // no edge
	p.Report(true)

	assert.Equal(t, []bool{false, true}, edges)
	assert.True(t, p.Online())
}

func TestProber_ProbeLoopDetectsOutageAndRecovery(t *testing.T) {
	clock := syncpkg.NewVirtualClock(time.Unix(0, 0))
	checker := &fakeChecker{}
	p := NewProber(checker, clock, testLogger(), 10*time.Second)

	var mu gosync.Mutex
	var edges []bool
	p.Subscribe(func(online bool) {
		mu.Lock()
		edges = append(edges, online)
		mu.Unlock()
	})

	p.Start(context.Background())
	defer p.Stop()

	checker.setErr(errors.New("connection refused"))
	require.Eventually(t, func() bool {
		clock.Advance(time.Second)
		return !p.Online()
	}, 2*time.Second, 5*time.Millisecond)

	checker.setErr(nil)
	require.Eventually(t, func() bool {
		clock.Advance(time.Second)
		return p.Online()
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{false, true}, edges)
}

func TestProber_StopHaltsProbing(t *testing.T) {
	clock := syncpkg.NewVirtualClock(time.Unix(0, 0))
	checker := &fakeChecker{err: errors.New("down")}
	p := NewProber(checker, clock, testLogger(), 10*time.Second)

	p.Start(context.Background())
	p.Stop()

	// Time passing after Stop changes nothing
	clock.Advance(time.Minute)
	assert.True(t, p.Online())
}
