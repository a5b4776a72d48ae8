package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_IdenticalPointsIsZero(t *testing.T) {
	points := []Coordinate{
		{0, 0},
		{39.649680, -79.897005},
		{-33.8688, 151.2093},
		{90, 180},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p, p), "point %v", p)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]Coordinate{
		{{0, 0}, {0, 1}},
		{{39.678062, -79.858436}, {39.640844, -79.995884}},
		{{51.5074, -0.1278}, {40.7128, -74.0060}},
		{{-10, 200}, {95, -400}},
	}
	for _, p := range pairs {
		assert.InDelta(t, Distance(p[0], p[1]), Distance(p[1], p[0]), 1e-9)
	}
}

func TestDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinate
		want float64
	}{
		{
			name: "one degree of longitude on the equator",
			a:    Coordinate{0, 0},
			b:    Coordinate{0, 1},
			want: 111.195,
		},
		{
			name: "one degree of latitude",
			a:    Coordinate{0, 0},
			b:    Coordinate{1, 0},
			want: 111.195,
		},
		{
			name: "london to new york",
			a:    Coordinate{51.5074, -0.1278},
			b:    Coordinate{40.7128, -74.0060},
			want: 5570.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Distance(tt.a, tt.b), 0.5)
		})
	}
}

func TestDistance_Antipodal(t *testing.T) {
	d := Distance(Coordinate{0, 0}, Coordinate{0, 180})
	assert.InDelta(t, EarthRadiusKm*3.141592653589793, d, 1e-6)
}
