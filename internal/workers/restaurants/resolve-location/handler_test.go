package resolvelocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/geo"
	"restaurant-workers/internal/location"
	"restaurant-workers/internal/workers/restaurants"
)

func newTestHandler(t *testing.T) *Handler {
	cfg := &Config{
		JobConfig: restaurants.JobConfig{Timeout: 5 * time.Second},
		Fallback:  location.DefaultFallback,
	}
	return NewHandler(cfg, logger.NewTestLogger(t))
}

func TestExecute(t *testing.T) {
	home := geo.Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	fix := geo.Coordinate{Latitude: 51.5074, Longitude: -0.1278}

	tests := []struct {
		name  string
		input Input
		want  Output
	}{
		{
			name:  "fix replaces fallback",
			input: Input{HasPermission: true, Fix: &fix},
			want:  Output{ReferenceLocation: fix},
		},
		{
			name:  "fix replaces current",
			input: Input{HasPermission: true, Current: &home, Fix: &fix},
			want:  Output{ReferenceLocation: fix},
		},
		{
			name:  "no fix keeps fallback and flags error",
			input: Input{HasPermission: true},
			want: Output{
				ReferenceLocation: location.DefaultFallback,
				ShowLocationError: true,
				LocationErrorCode: string(commonerrors.ErrCodeLocationUnavailable),
			},
		},
		{
			name:  "provider error keeps current",
			input: Input{HasPermission: true, Current: &home, FixError: "GPS_TIMEOUT"},
			want: Output{
				ReferenceLocation: home,
				ShowLocationError: true,
				LocationErrorCode: string(commonerrors.ErrCodeLocationProviderFailure),
			},
		},
		{
			name:  "permission denied by platform",
			input: Input{HasPermission: true, FixError: "LOCATION_PERMISSION_DENIED"},
			want: Output{
				ReferenceLocation: location.DefaultFallback,
				ShowLocationError: true,
				LocationErrorCode: string(commonerrors.ErrCodeLocationPermissionDenied),
			},
		},
		{
			name:  "no permission ignores fix",
			input: Input{HasPermission: false, Fix: &fix},
			want:  Output{ReferenceLocation: location.DefaultFallback, PermissionMissing: true},
		},
		{
			name:  "no permission keeps current",
			input: Input{HasPermission: false, Current: &home},
			want:  Output{ReferenceLocation: home, PermissionMissing: true},
		},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *out)
		})
	}
}

func TestExecute_FixAndErrorTogether(t *testing.T) {
	h := newTestHandler(t)
	fix := geo.Coordinate{Latitude: 1, Longitude: 1}

	_, err := h.Execute(context.Background(), &Input{HasPermission: true, Fix: &fix, FixError: "LOCATION_UNAVAILABLE"})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeInputValidationFailed, stdErr.Code)
}

func TestInputSchema(t *testing.T) {
	h := newTestHandler(t)

	assert.NoError(t, h.schema.ValidateVariables(`{"hasPermission":true,"fix":{"latitude":1,"longitude":2}}`))
	assert.Error(t, h.schema.ValidateVariables(`{}`))
	assert.Error(t, h.schema.ValidateVariables(`{"hasPermission":"yes"}`))
	assert.Error(t, h.schema.ValidateVariables(`{"hasPermission":true,"fix":{"latitude":100,"longitude":0}}`))
}
