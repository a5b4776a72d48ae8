package ranking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-workers/internal/catalog"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/filter"
	"restaurant-workers/internal/geo"
	"restaurant-workers/internal/location"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cat, err := catalog.New("test", threeRestaurants())
	require.NoError(t, err)
	return NewEngine(cat, FarthestFirst)
}

func resultIDs(s State) []string {
	return ids(s.Restaurants())
}

// ==========================
// State transitions
// ==========================

func TestState_InitialRanksEverything(t *testing.T) {
	s := NewState(newTestEngine(t), origin)

	assert.Equal(t, []string{"B", "C", "A"}, resultIDs(s))
	assert.Empty(t, s.Filters)
	assert.Zero(t, s.Version)
}

func TestState_TransitionsAreImmutable(t *testing.T) {
	s0 := NewState(newTestEngine(t), origin)

	s1 := s0.WithFilters(filter.Set{{Action: filter.Include, Tag: catalog.Burger}})

	assert.Equal(t, []string{"B", "C", "A"}, resultIDs(s0))
	assert.Equal(t, []string{"C", "A"}, resultIDs(s1))
	assert.Equal(t, s0.Version+1, s1.Version)
}

func TestState_ReferenceChangeReranks(t *testing.T) {
	s := NewState(newTestEngine(t), origin).
		WithFilters(filter.Set{{Action: filter.Include, Tag: catalog.Burger}}).
		WithReference(geo.Coordinate{Latitude: 1, Longitude: 0})

	assert.Equal(t, []string{"A", "C"}, resultIDs(s))
}

func TestState_LocationErrorKeepsResults(t *testing.T) {
	s0 := NewState(newTestEngine(t), origin)
	s1 := s0.WithLocationError(true)

	assert.True(t, s1.LocationError)
	assert.Equal(t, resultIDs(s0), resultIDs(s1))
	assert.Equal(t, s0.Reference, s1.Reference)
}

func TestState_WithLocation(t *testing.T) {
	s0 := NewState(newTestEngine(t), origin)

	same := s0.WithLocation(location.Status{Reference: origin, PermissionMissing: true})
	assert.Equal(t, s0.Version, same.Version)

	moved := s0.WithLocation(location.Status{Reference: geo.Coordinate{Latitude: 1}, Error: false})
	assert.False(t, moved.PermissionMissing)
	assert.Equal(t, []string{"B", "A", "C"}, resultIDs(moved))
}

// ==========================
// Store
// ==========================

func TestStore_SubscribeGetsCurrent(t *testing.T) {
	store := NewStore(NewState(newTestEngine(t), origin))
	defer store.Close()

	ch, cancel := store.Subscribe()
	defer cancel()

	got := <-ch
	assert.Equal(t, store.Current().Version, got.Version)
}

func TestStore_DropsSupersededSnapshots(t *testing.T) {
	store := NewStore(NewState(newTestEngine(t), origin))
	ch, cancel := store.Subscribe()
	defer cancel()

	store.AddFilters(filter.NewCriteria(filter.Include, catalog.Burger))
	store.AddFilters(filter.NewCriteria(filter.Exclude, catalog.Beer))
	last := store.RemoveFilter(filter.Filter{Action: filter.Include, Tag: catalog.Burger})

	got := <-ch
	assert.Equal(t, last.Version, got.Version)
	assert.Equal(t, []string{"B", "C"}, resultIDs(got))

	select {
	case extra := <-ch:
		t.Fatalf("unexpected queued snapshot %d", extra.Version)
	default:
	}
}

func TestStore_UnchangedUpdateIsNotPublished(t *testing.T) {
	store := NewStore(NewState(newTestEngine(t), origin))
	ch, cancel := store.Subscribe()
	defer cancel()
	<-ch

	store.Update(func(s State) State { return s })

	select {
	case <-ch:
		t.Fatal("no snapshot expected")
	default:
	}
}

func TestStore_ApplyLocation(t *testing.T) {
	store := NewStore(NewState(newTestEngine(t), origin))

	st := store.ApplyLocation(location.Status{Reference: origin, Error: true})

	assert.True(t, st.LocationError)
	assert.Equal(t, origin, st.Reference)
}

func TestStore_FollowsTracker(t *testing.T) {
	store := NewStore(NewState(newTestEngine(t), origin))
	sub, cancel := store.Subscribe()
	defer cancel()
	<-sub

	fix := geo.Coordinate{Latitude: 1}
	tracker := location.NewTracker(
		location.Static{Fix: &fix},
		location.Granted(true),
		location.TrackerConfig{Fallback: origin, RequestTimeout: time.Second},
		logger.NewTestLogger(t),
	)
	tracker.OnChange(func(s location.Status) { store.ApplyLocation(s) })

	require.True(t, tracker.Check(context.Background()))
	tracker.Wait()

	st := store.Current()
	assert.Equal(t, fix, st.Reference)
	assert.False(t, st.PermissionMissing)
	assert.Equal(t, []string{"B", "A", "C"}, resultIDs(st))

	select {
	case got := <-sub:
		assert.Equal(t, st.Version, got.Version)
	default:
		t.Fatal("expected a published snapshot")
	}
}

func TestStore_CancelAndClose(t *testing.T) {
	store := NewStore(NewState(newTestEngine(t), origin))

	ch, cancel := store.Subscribe()
	<-ch
	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)

	ch2, _ := store.Subscribe()
	<-ch2
	store.Close()
	_, open = <-ch2
	assert.False(t, open)

	ch3, cancel3 := store.Subscribe()
	defer cancel3()
	_, open = <-ch3
	assert.False(t, open)
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	store := NewStore(NewState(newTestEngine(t), origin))
	ch, cancel := store.Subscribe()
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.AddFilters(filter.NewCriteria(filter.Optional, catalog.Burger))
		}()
	}
	wg.Wait()

	final := store.Current()
	assert.Len(t, final.Filters, 50)
	assert.Equal(t, uint64(50), final.Version)

	got := <-ch
	assert.Equal(t, final.Version, got.Version)
}
