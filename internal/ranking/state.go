package ranking

import (
	"restaurant-workers/internal/catalog"
	"restaurant-workers/internal/filter"
	"restaurant-workers/internal/geo"
	"restaurant-workers/internal/location"
)

// State is an immutable snapshot of the engine. Results always reflect the
// Filters and Reference of the same snapshot. Treat Filters and Results as
// read-only; transitions never modify them in place.
type State struct {
	Filters           filter.Set
	Reference         geo.Coordinate
	LocationError     bool
	PermissionMissing bool
	Results           []Scored
	Version           uint64

	engine *Engine
}

// NewState builds the first snapshot: no filters, the given reference and
// the full catalog ranked.
func NewState(engine *Engine, ref geo.Coordinate) State {
	s := State{Reference: ref, PermissionMissing: true, engine: engine}
	s.Results = engine.Score(nil, ref)
	return s
}

// Restaurants returns the ranked restaurants without distances.
func (s State) Restaurants() []catalog.Restaurant {
	out := make([]catalog.Restaurant, len(s.Results))
	for i, r := range s.Results {
		out[i] = r.Restaurant
	}
	return out
}

// WithFilters replaces the filter set and re-ranks.
func (s State) WithFilters(set filter.Set) State {
	next := s.next()
	next.Filters = set
	next.Results = s.engine.Score(set, next.Reference)
	return next
}

// WithReference replaces the reference location and re-ranks.
func (s State) WithReference(ref geo.Coordinate) State {
	next := s.next()
	next.Reference = ref
	next.Results = s.engine.Score(next.Filters, ref)
	return next
}

// WithLocationError sets the location error flag. Results are kept.
func (s State) WithLocationError(failed bool) State {
	next := s.next()
	next.LocationError = failed
	return next
}

// WithPermission records whether location permission is held.
func (s State) WithPermission(granted bool) State {
	next := s.next()
	next.PermissionMissing = !granted
	return next
}

// WithLocation copies a tracker status into the snapshot. It only re-ranks
// when the reference moved.
func (s State) WithLocation(status location.Status) State {
	next := s
	if status.Reference != s.Reference {
		next = next.WithReference(status.Reference)
	}
	if status.Error != next.LocationError {
		next = next.WithLocationError(status.Error)
	}
	if status.PermissionMissing != next.PermissionMissing {
		next = next.WithPermission(!status.PermissionMissing)
	}
	return next
}

func (s State) next() State {
	s.Version++
	return s
}
