package ranking

import (
	"sync"

	"restaurant-workers/internal/filter"
	"restaurant-workers/internal/location"
)

// Store holds the latest State and publishes every new one to subscribers.
// It backs the presentation layer: a restaurant list view subscribes to it
// and feeds it filter edits and location.Tracker updates. The job workers
// compute single rankings through Engine and do not use it.
// Each subscriber channel has room for one snapshot; a snapshot nobody read
// yet is replaced by the newer one.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]chan State
	nextID int
	closed bool
}

func NewStore(initial State) *Store {
	return &Store{state: initial, subs: make(map[int]chan State)}
}

// Current returns the latest snapshot.
func (s *Store) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies fn to the latest snapshot and publishes the result.
func (s *Store) Update(fn func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.state)
	if next.Version == s.state.Version {
		return s.state
	}
	s.state = next
	for _, ch := range s.subs {
		offer(ch, next)
	}
	return next
}

// Subscribe returns a channel primed with the current snapshot and a cancel
// function. The channel is closed on cancel or Close.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan State, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.state

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// Close closes every subscriber channel. Later updates still change Current.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Store) AddFilters(c filter.Criteria) State {
	return s.Update(func(st State) State {
		return st.WithFilters(st.Filters.Add(c))
	})
}

func (s *Store) RemoveFilter(f filter.Filter) State {
	return s.Update(func(st State) State {
		return st.WithFilters(st.Filters.Remove(f))
	})
}

// ApplyLocation merges a location tracker status.
func (s *Store) ApplyLocation(status location.Status) State {
	return s.Update(func(st State) State {
		return st.WithLocation(status)
	})
}

// offer replaces any unread snapshot in ch with st. Only Update sends, under
// the store lock, so the drain always leaves room.
func offer(ch chan State, st State) {
	select {
	case <-ch:
	default:
	}
	ch <- st
}
