package catalog

import "restaurant-workers/internal/geo"

// Restaurant is a static catalog record. Tags may repeat; lookups are
// containment tests so repeats have no effect.
type Restaurant struct {
	ID       string
	Title    string
	Tags     []Tag
	Location geo.Coordinate
}

// HasTag reports whether t appears anywhere in r.Tags.
func (r Restaurant) HasTag(t Tag) bool {
	for _, rt := range r.Tags {
		if rt == t {
			return true
		}
	}
	return false
}
