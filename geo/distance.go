package geo

import (
	"math"

	"github.com/bitmark-inc/mutual-aid-api/schema"
)

const (
	// EarthRadius is the mean radius of the earth in meters
	EarthRadius = 6371000.0

	// metersPerDegree approximates the length of one degree of latitude
	metersPerDegree = 111000.0
)

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance returns the great-circle distance in meters between two locations
// by the haversine formula
func Distance(a, b schema.Location) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLng := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// ValidCoordinates reports whether the latitude and longitude are in range
func ValidCoordinates(loc schema.Location) bool {
	if math.IsNaN(loc.Latitude) || math.IsNaN(loc.Longitude) {
		return false
	}
	return loc.Latitude >= -90 && loc.Latitude <= 90 &&
		loc.Longitude >= -180 && loc.Longitude <= 180
}
