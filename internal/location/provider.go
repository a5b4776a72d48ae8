// Package location models the one-shot device location lookup and how its
// outcomes move the reference coordinate used for ranking.
package location

import (
	"context"
	"errors"

	"restaurant-workers/internal/geo"
)

var (
	// ErrUnavailable means the provider has no last-known fix.
	ErrUnavailable = errors.New("location unavailable")
	// ErrPermissionDenied means the platform refused the lookup.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrProviderFailure covers any other provider error.
	ErrProviderFailure = errors.New("location provider failure")
)

// DefaultFallback is used until a fix arrives.
var DefaultFallback = geo.Coordinate{Latitude: 39.649680, Longitude: -79.897005}

// Provider returns the device's last-known fix. Each call yields exactly one
// outcome.
type Provider interface {
	LastKnown(ctx context.Context) (geo.Coordinate, error)
}

// PermissionChecker reports whether location access is granted. On platforms
// with separate precise and approximate grants, both must be held.
type PermissionChecker interface {
	HasLocationPermission() bool
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (geo.Coordinate, error)

func (f ProviderFunc) LastKnown(ctx context.Context) (geo.Coordinate, error) {
	return f(ctx)
}

// PermissionFunc adapts a function to PermissionChecker.
type PermissionFunc func() bool

func (f PermissionFunc) HasLocationPermission() bool { return f() }

// Static always returns the same fix, or ErrUnavailable when Fix is nil.
type Static struct {
	Fix *geo.Coordinate
}

func (s Static) LastKnown(ctx context.Context) (geo.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return geo.Coordinate{}, errors.Join(ErrProviderFailure, err)
	}
	if s.Fix == nil {
		return geo.Coordinate{}, ErrUnavailable
	}
	return *s.Fix, nil
}

// Granted is a PermissionChecker with a fixed answer.
type Granted bool

func (g Granted) HasLocationPermission() bool { return bool(g) }
