// internal/workers/restaurants/update-filter-set/models.go
package updatefilterset

import "restaurant-workers/internal/workers/restaurants"

const (
	OperationAdd    = "add"
	OperationRemove = "remove"
)

type Input struct {
	Filters   []restaurants.FilterSpec  `json:"filters"`
	Operation string                    `json:"operation"`
	Criteria  *restaurants.CriteriaSpec `json:"criteria,omitempty"`
	Filter    *restaurants.FilterSpec   `json:"filter,omitempty"`
}

type Output struct {
	Filters []restaurants.FilterSpec `json:"filters"`
	Removed bool                     `json:"removed"`
}
