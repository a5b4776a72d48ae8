// internal/workers/restaurants/resolve-location/models.go
package resolvelocation

import "restaurant-workers/internal/geo"

// Input describes one device lookup. Fix and FixError are mutually
// exclusive; neither means the device had no last-known fix.
type Input struct {
	HasPermission bool            `json:"hasPermission"`
	Current       *geo.Coordinate `json:"current,omitempty"`
	Fix           *geo.Coordinate `json:"fix,omitempty"`
	FixError      string          `json:"fixError,omitempty"`
}

type Output struct {
	ReferenceLocation geo.Coordinate `json:"referenceLocation"`
	ShowLocationError bool           `json:"showLocationError"`
	PermissionMissing bool           `json:"permissionMissing"`
	LocationErrorCode string         `json:"locationErrorCode,omitempty"`
}
