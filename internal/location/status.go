package location

import "restaurant-workers/internal/geo"

// Status is the location side of the engine state.
type Status struct {
	Reference         geo.Coordinate `json:"referenceLocation"`
	Error             bool           `json:"showLocationError"`
	PermissionMissing bool           `json:"permissionMissing"`
}

// NewStatus starts at fallback with no error.
func NewStatus(fallback geo.Coordinate, granted bool) Status {
	return Status{Reference: fallback, PermissionMissing: !granted}
}

// Outcome is the result of one provider request.
type Outcome struct {
	Coordinate geo.Coordinate
	Err        error
}

func Success(c geo.Coordinate) Outcome { return Outcome{Coordinate: c} }

func Failure(err error) Outcome { return Outcome{Err: err} }

// Apply folds an outcome into prev. Success replaces the reference and clears
// the error flag. Failure sets the error flag and keeps the reference.
func Apply(prev Status, o Outcome) Status {
	next := prev
	if o.Err != nil {
		next.Error = true
		return next
	}
	next.Reference = o.Coordinate
	next.Error = false
	return next
}

// WithPermission records the current grant.
func (s Status) WithPermission(granted bool) Status {
	s.PermissionMissing = !granted
	return s
}
