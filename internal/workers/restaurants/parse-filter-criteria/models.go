// internal/workers/restaurants/parse-filter-criteria/models.go
package parsefiltercriteria

import "restaurant-workers/internal/workers/restaurants"

// Input is a tri-state selection: tags plus include, exclude or optional.
type Input struct {
	Tags   []string `json:"tags"`
	Action string   `json:"action,omitempty"`
}

type Output struct {
	Filters []restaurants.FilterSpec `json:"filters"`
}
