// Package geocoder resolves postal codes to coordinates.
package geocoder

import (
	"context"
	"math"
)

// EarthRadiusKm is the mean Earth radius used for every radius search.
const EarthRadiusKm = 6371.0

// Location is a resolved point.
type Location struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
}

// Geocoder looks up a postal code.
type Geocoder interface {
	Geocode(ctx context.Context, zipcode string) (Location, error)
}

// DistanceKm returns the great-circle (haversine) distance between two points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}
