package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKmZero(t *testing.T) {
	p := Point{Latitude: 12.9716, Longitude: 77.5946}
	assert.InDelta(t, 0, DistanceKm(p, p), 1e-9)
}

func TestDistanceKmKnownPairs(t *testing.T) {
	bangalore := Point{Latitude: 12.9716, Longitude: 77.5946}
	chennai := Point{Latitude: 13.0827, Longitude: 80.2707}
	// roughly 290 km apart
	assert.InDelta(t, 290, DistanceKm(bangalore, chennai), 10)

	london := Point{Latitude: 51.5074, Longitude: -0.1278}
	paris := Point{Latitude: 48.8566, Longitude: 2.3522}
	assert.InDelta(t, 344, DistanceKm(london, paris), 10)
}

func TestDistanceKmSymmetry(t *testing.T) {
	a := Point{Latitude: 40.7128, Longitude: -74.006}
	b := Point{Latitude: 34.0522, Longitude: -118.2437}
	assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9)
}
