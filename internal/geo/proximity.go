// Package geo implements great-circle distances and the radius filter used
// to find suppliers near a vendor.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the spherical approximation
const EarthRadiusKm = 6371.0

// Point is a coordinate in decimal degrees
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Locatable is anything that may carry a position. ok is false when the
// position is unknown.
type Locatable interface {
	Position() (p Point, ok bool)
}

// Distance returns the haversine distance between a and b in kilometres.
// Inputs are not range checked; out-of-range values yield whatever the
// trigonometry produces, NaN included.
func Distance(a, b Point) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// DistanceFrom reports the distance from ref to c. ok is false when either
// side has no known position.
func DistanceFrom(ref *Point, c Locatable) (km float64, ok bool) {
	if ref == nil {
		return 0, false
	}
	p, known := c.Position()
	if !known {
		return 0, false
	}
	return Distance(*ref, p), true
}

// WithinRadius keeps the candidates no further than radiusKm from ref,
// preserving input order.
//
// A nil ref returns candidates unchanged. Candidates with an unknown position
// are always kept, whatever the radius.
func WithinRadius[T Locatable](ref *Point, candidates []T, radiusKm float64) []T {
	if ref == nil {
		return candidates
	}

	out := make([]T, 0, len(candidates))
	for _, c := range candidates {
		p, ok := c.Position()
		if !ok || Distance(*ref, p) <= radiusKm {
			out = append(out, c)
		}
	}
	return out
}

// RoundKm rounds a distance to one decimal place for display
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180)
}
