package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ozleads/lead-engine/internal/gazetteer"
)

func TestHaversineIdentity(t *testing.T) {
	assert.Zero(t, Haversine(-33.8568, 151.2153, -33.8568, 151.2153))
}

func TestHaversineSymmetry(t *testing.T) {
	a := Haversine(-33.8568, 151.2153, -37.8136, 144.9631)
	b := Haversine(-37.8136, 144.9631, -33.8568, 151.2153)
	assert.InDelta(t, a, b, 1e-9)
}

func TestHaversineSydneyMelbourne(t *testing.T) {
	got := Haversine(-33.8568, 151.2153, -37.8136, 144.9631)
	assert.InDelta(t, 714, got, 5)
}

func TestHaversineAntipodal(t *testing.T) {
	got := Haversine(0, 0, 0, 180)
	assert.InDelta(t, math.Pi*6371, got, 0.01)
}

func TestHaversineOneDegreeLatitude(t *testing.T) {
	// One degree of latitude is R*pi/180 regardless of longitude.
	got := Haversine(0, 0, 1, 0)
	assert.InDelta(t, 6371*math.Pi/180, got, 0.001)
}

func TestDistanceBetweenRounds(t *testing.T) {
	a := gazetteer.Suburb{Lat: 0, Lng: 0}
	b := gazetteer.Suburb{Lat: 0.01, Lng: 0}

	// Raw distance is ~1.11195km; the public value carries one decimal.
	assert.Equal(t, 1.1, DistanceBetween(a, b))
	assert.Equal(t, 0.0, DistanceBetween(a, a))
}
