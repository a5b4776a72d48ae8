// internal/workers/restaurants/rank-restaurants/models.go
package rankrestaurants

import (
	"restaurant-workers/internal/geo"
	"restaurant-workers/internal/workers/restaurants"
)

type Input struct {
	Filters           []restaurants.FilterSpec `json:"filters"`
	ReferenceLocation *geo.Coordinate          `json:"referenceLocation,omitempty"`
}

type Output struct {
	ResultID          string             `json:"resultId"`
	CatalogVersion    string             `json:"catalogVersion"`
	Order             string             `json:"order"`
	ReferenceLocation geo.Coordinate     `json:"referenceLocation"`
	Restaurants       []RankedRestaurant `json:"restaurants"`
	Total             int                `json:"total"`
	Cached            bool               `json:"cached"`
}

type RankedRestaurant struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Tags       []string `json:"tags"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	DistanceKm float64  `json:"distanceKm"`
}
