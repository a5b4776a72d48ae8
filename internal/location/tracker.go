package location

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/geo"
)

// TrackerConfig configures a Tracker.
type TrackerConfig struct {
	Fallback       geo.Coordinate
	RequestTimeout time.Duration
}

// Tracker issues location requests when permission is granted and keeps the
// resulting Status. Only the newest request may change the status; results
// of superseded requests are dropped. The presentation layer owns a Tracker
// and forwards its changes into ranking.Store; the resolve-location worker
// replays a single outcome through Apply instead.
type Tracker struct {
	provider    Provider
	permissions PermissionChecker
	timeout     time.Duration
	log         logger.Logger

	mu        sync.Mutex
	status    Status
	checked   bool
	granted   bool
	pending   uuid.UUID
	listeners []func(Status)

	// publishMu serializes listener calls so the last call always carries
	// the newest status.
	publishMu sync.Mutex
	wg        sync.WaitGroup
}

func NewTracker(provider Provider, permissions PermissionChecker, cfg TrackerConfig, log logger.Logger) *Tracker {
	return &Tracker{
		provider:    provider,
		permissions: permissions,
		timeout:     cfg.RequestTimeout,
		log:         log.WithFields(map[string]interface{}{"component": "location-tracker"}),
		status:      NewStatus(cfg.Fallback, false),
	}
}

// OnChange registers fn to receive every new Status. fn runs on the goroutine
// that produced the change and must not call back into the Tracker.
func (t *Tracker) OnChange(fn func(Status)) {
	t.mu.Lock()
	t.listeners = append(t.listeners, fn)
	t.mu.Unlock()
}

// Status returns the latest status.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Check samples the permission checker. A request is started on the first
// check that sees the grant and on every later false to true flip. It
// reports whether a request was started.
func (t *Tracker) Check(ctx context.Context) bool {
	granted := t.permissions.HasLocationPermission()

	t.mu.Lock()
	changed := !t.checked || granted != t.granted
	start := granted && changed
	t.checked = true
	t.granted = granted
	t.status = t.status.WithPermission(granted)
	t.mu.Unlock()

	if changed {
		t.publish()
	}
	if start {
		t.Request(ctx)
	}
	return start
}

// Request starts a lookup and returns its id. Any request still in flight is
// superseded.
func (t *Tracker) Request(ctx context.Context) uuid.UUID {
	id := uuid.New()

	t.mu.Lock()
	t.pending = id
	t.mu.Unlock()

	t.log.Debug("Location request started", map[string]interface{}{"requestId": id.String()})

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		reqCtx := ctx
		if t.timeout > 0 {
			var cancel context.CancelFunc
			reqCtx, cancel = context.WithTimeout(ctx, t.timeout)
			defer cancel()
		}

		c, err := t.provider.LastKnown(reqCtx)
		t.resolve(id, Outcome{Coordinate: c, Err: err})
	}()
	return id
}

func (t *Tracker) resolve(id uuid.UUID, o Outcome) {
	t.mu.Lock()
	if id != t.pending {
		t.mu.Unlock()
		t.log.Debug("Dropping stale location result", map[string]interface{}{"requestId": id.String()})
		return
	}
	t.pending = uuid.Nil
	t.status = Apply(t.status, o)
	t.mu.Unlock()

	if o.Err != nil {
		t.log.Warn("Location request failed", map[string]interface{}{
			"requestId": id.String(),
			"error":     o.Err.Error(),
		})
	} else {
		t.log.Info("Location updated", map[string]interface{}{
			"requestId": id.String(),
			"latitude":  o.Coordinate.Latitude,
			"longitude": o.Coordinate.Longitude,
		})
	}
	t.publish()
}

// Watch calls Check every interval until ctx is done.
func (t *Tracker) Watch(ctx context.Context, interval time.Duration) {
	t.Check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Check(ctx)
		}
	}
}

// Wait blocks until every started request has resolved.
func (t *Tracker) Wait() {
	t.wg.Wait()
}

func (t *Tracker) publish() {
	t.publishMu.Lock()
	defer t.publishMu.Unlock()

	t.mu.Lock()
	status := t.status
	listeners := t.listeners
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(status)
	}
}
