// Package geo provides the distance/travel-time collaborator used by the
// location scorer: an HTTP client for an external routing service, a bounded
// TTL cache in front of it, and a coordinate-distance fallback.
package geo

import (
	"context"
	"math"
)

// Mode is a transport mode accepted by the distance service.
type Mode string

// Transport modes.
const (
	ModeDriving   Mode = "driving"
	ModeTransit   Mode = "transit"
	ModeWalking   Mode = "walking"
	ModeBicycling Mode = "bicycling"
)

// Point is a geographic coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Result is a distance service answer.
type Result struct {
	DistanceKm        float64 `json:"distance_km"`
	TravelTimeMinutes float64 `json:"travel_time_minutes"`
}

// Distancer resolves the distance and travel time between two points for a
// transport mode. Implementations must honor ctx cancellation.
type Distancer interface {
	Distance(ctx context.Context, a, b Point, mode Mode) (Result, error)
}

// earthRadiusKm is the mean Earth radius.
const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance between two points in
// kilometers.
func Haversine(a, b Point) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
