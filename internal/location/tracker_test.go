package location

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/geo"
)

type switchablePermission struct {
	granted atomic.Bool
}

func (p *switchablePermission) HasLocationPermission() bool { return p.granted.Load() }

type countingProvider struct {
	calls atomic.Int32
	fix   geo.Coordinate
	err   error
}

func (p *countingProvider) LastKnown(context.Context) (geo.Coordinate, error) {
	p.calls.Add(1)
	return p.fix, p.err
}

// gatedProvider blocks each call until the test releases it.
type gatedProvider struct {
	mu      sync.Mutex
	started chan int
	gates   []chan Outcome
}

func newGatedProvider() *gatedProvider {
	return &gatedProvider{started: make(chan int, 8)}
}

func (p *gatedProvider) LastKnown(ctx context.Context) (geo.Coordinate, error) {
	gate := make(chan Outcome, 1)
	p.mu.Lock()
	p.gates = append(p.gates, gate)
	n := len(p.gates) - 1
	p.mu.Unlock()
	p.started <- n

	o := <-gate
	return o.Coordinate, o.Err
}

func (p *gatedProvider) release(n int, o Outcome) {
	p.mu.Lock()
	gate := p.gates[n]
	p.mu.Unlock()
	gate <- o
}

func newTestTracker(t *testing.T, p Provider, perms PermissionChecker) *Tracker {
	return NewTracker(p, perms, TrackerConfig{Fallback: DefaultFallback, RequestTimeout: time.Second}, logger.NewTestLogger(t))
}

func TestTracker_RequestsOnFirstGrantedCheck(t *testing.T) {
	fix := geo.Coordinate{Latitude: 40, Longitude: -80}
	provider := &countingProvider{fix: fix}
	tracker := newTestTracker(t, provider, Granted(true))

	assert.True(t, tracker.Check(context.Background()))
	tracker.Wait()

	assert.Equal(t, int32(1), provider.calls.Load())
	assert.Equal(t, Status{Reference: fix}, tracker.Status())

	assert.False(t, tracker.Check(context.Background()), "no request while grant is unchanged")
	tracker.Wait()
	assert.Equal(t, int32(1), provider.calls.Load())
}

func TestTracker_RequestsOnPermissionFlip(t *testing.T) {
	perms := &switchablePermission{}
	provider := &countingProvider{fix: geo.Coordinate{Latitude: 1}}
	tracker := newTestTracker(t, provider, perms)

	assert.False(t, tracker.Check(context.Background()))
	assert.True(t, tracker.Status().PermissionMissing)
	assert.Equal(t, DefaultFallback, tracker.Status().Reference)

	perms.granted.Store(true)
	assert.True(t, tracker.Check(context.Background()))
	tracker.Wait()

	assert.Equal(t, int32(1), provider.calls.Load())
	assert.False(t, tracker.Status().PermissionMissing)

	perms.granted.Store(false)
	tracker.Check(context.Background())
	perms.granted.Store(true)
	tracker.Check(context.Background())
	tracker.Wait()
	assert.Equal(t, int32(2), provider.calls.Load())
}

func TestTracker_FailureKeepsReference(t *testing.T) {
	provider := &countingProvider{err: ErrUnavailable}
	tracker := newTestTracker(t, provider, Granted(true))

	tracker.Check(context.Background())
	tracker.Wait()

	st := tracker.Status()
	assert.True(t, st.Error)
	assert.Equal(t, DefaultFallback, st.Reference)
}

func TestTracker_DropsStaleResults(t *testing.T) {
	provider := newGatedProvider()
	tracker := newTestTracker(t, provider, Granted(true))

	var mu sync.Mutex
	var seen []Status
	tracker.OnChange(func(s Status) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	first := tracker.Request(context.Background())
	require.Equal(t, 0, <-provider.started)
	second := tracker.Request(context.Background())
	require.Equal(t, 1, <-provider.started)
	assert.NotEqual(t, first, second)

	newest := geo.Coordinate{Latitude: 2}
	provider.release(1, Success(newest))
	provider.release(0, Success(geo.Coordinate{Latitude: 1}))
	tracker.Wait()

	assert.Equal(t, newest, tracker.Status().Reference)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 1)
	assert.Equal(t, newest, seen[0].Reference)
}

func TestTracker_WatchStopsOnCancel(t *testing.T) {
	provider := &countingProvider{fix: geo.Coordinate{Latitude: 3}}
	tracker := newTestTracker(t, provider, Granted(true))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tracker.Watch(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return provider.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
	tracker.Wait()
	assert.Equal(t, int32(1), provider.calls.Load())
}
