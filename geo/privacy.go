package geo

import (
	"math"
	"math/rand"

	"github.com/bitmark-inc/mutual-aid-api/schema"
)

// Blur returns the location moved by a random offset of at most radius meters.
// The offset is drawn per call and never stored, so repeated reads of one
// location show different points.
func Blur(loc schema.Location, radius float64) schema.Location {
	return offset(loc, radius*rand.Float64(), 2*math.Pi*rand.Float64())
}

// offset moves a location by meters along the bearing angle in radians
func offset(loc schema.Location, meters, angle float64) schema.Location {
	if meters <= 0 {
		return loc
	}

	dLat := meters * math.Cos(angle) / metersPerDegree

	lngScale := math.Cos(radians(loc.Latitude))
	if lngScale < 1e-6 {
		lngScale = 1e-6
	}
	dLng := meters * math.Sin(angle) / (metersPerDegree * lngScale)

	blurred := loc
	blurred.Latitude = math.Max(-90, math.Min(90, loc.Latitude+dLat))
	blurred.Longitude = loc.Longitude + dLng
	if blurred.Longitude > 180 {
		blurred.Longitude -= 360
	} else if blurred.Longitude < -180 {
		blurred.Longitude += 360
	}
	return blurred
}
