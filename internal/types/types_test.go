package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMidpoint(t *testing.T) {
	got := Midpoint(Point{Lat: 40.0, Lng: -73.0}, Point{Lat: 40.2, Lng: -73.2})
	assert.InDelta(t, 40.1, got.Lat, 1e-9)
	assert.InDelta(t, -73.1, got.Lng, 1e-9)
}

func TestMidpoint_SamePoint(t *testing.T) {
	p := Point{Lat: 40.783282, Lng: -73.950655}
	assert.Equal(t, p, Midpoint(p, p))
}

func TestUSDString(t *testing.T) {
	assert.Equal(t, "$12.50", USD(12.5).String())
	assert.Equal(t, "$3.10", USD(3.1).String())
	assert.Equal(t, "$0.00", USD(0).String())
}

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Point
		wantKm    float64
		tolerance float64
	}{
		{"same point", Point{40.7, -74.0}, Point{40.7, -74.0}, 0, 0.001},
		{"default NYC sample", Point{40.783282, -73.950655}, Point{40.769802, -73.984365}, 3.2, 0.3},
		{"New York to Los Angeles", Point{40.7128, -74.0060}, Point{34.0522, -118.2437}, 3944, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.a, tt.b)
			assert.InDelta(t, tt.wantKm, got, tt.tolerance)
			assert.InDelta(t, got, DistanceKm(tt.b, tt.a), 1e-9)
			assert.False(t, math.IsNaN(got))
		})
	}
}
