package schema

import "time"

// Location is a WGS84 coordinate reported by a client
type Location struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
	Accuracy  float64 `json:"accuracy" bson:"accuracy" validate:"min=0"`
}

// TrackedLocation is a location along with the time it was reported
type TrackedLocation struct {
	Location  `bson:",inline"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// GeoJSON - mongo location format
type GeoJSON struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

// NewGeoJSONPoint converts a location into a GeoJSON point. Mongo expects
// the longitude first.
func NewGeoJSONPoint(loc Location) *GeoJSON {
	return &GeoJSON{
		Type:        "Point",
		Coordinates: []float64{loc.Longitude, loc.Latitude},
	}
}
