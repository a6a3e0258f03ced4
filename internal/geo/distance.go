// Package geo computes great-circle distances, radius queries, and area
// aggregations over the suburb gazetteer.
package geo

import (
	"math"

	"github.com/ozleads/lead-engine/internal/gazetteer"
)

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371

// Haversine returns the great-circle distance in kilometers between two
// lat/lng points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// DistanceBetween returns the distance between two suburbs in kilometers,
// rounded to one decimal place.
func DistanceBetween(a, b gazetteer.Suburb) float64 {
	return round1(Haversine(a.Lat, a.Lng, b.Lat, b.Lng))
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round3 rounds to three decimal places, used for centroid coordinates.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
