package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinate_DistanceKm(t *testing.T) {
	tests := []struct {
		name     string
		from, to Coordinate
		expected float64
		delta    float64
	}{
		{name: "Same point", from: Coordinate{30.6134, -96.3437}, to: Coordinate{30.6134, -96.3437}, expected: 0, delta: 1e-9},
		{name: "One degree of latitude", from: Coordinate{0, 0}, to: Coordinate{1, 0}, expected: 111.19, delta: 0.01},
		{name: "Campus block", from: Coordinate{30.6133793, -96.3436677}, to: Coordinate{30.6140, -96.3430}, expected: 0.095, delta: 0.005},
		{name: "Austin to College Station", from: Coordinate{30.2672, -97.7431}, to: Coordinate{30.6280, -96.3344}, expected: 140, delta: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.from.DistanceKm(tt.to), tt.delta)
			assert.InDelta(t, tt.expected, tt.to.DistanceKm(tt.from), tt.delta)
		})
	}
}
