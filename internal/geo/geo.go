// Package geo contains pure geographic computation helpers used by dispatch.
package geo

import (
	"math"

	"github.com/mjperez2704/deli-back-office/internal/domain"
)

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometres between two
// points specified in decimal degrees, via the haversine formula.
func Distance(a, b domain.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// NearestDriver scans the candidates for the online driver with a known
// location closest to target. Ties resolve to the first-encountered driver,
// so input ordering is preserved. The boolean is false when no candidate
// qualifies; that is a valid outcome, not an error.
func NearestDriver(target domain.Point, drivers []domain.Driver) (domain.Driver, float64, bool) {
	var (
		best     domain.Driver
		bestDist float64
		found    bool
	)
	for _, d := range drivers {
		if !d.Online || !d.Locatable() {
			continue
		}
		dist := Distance(target, *d.Location)
		if !found || dist < bestDist {
			best = d
			bestDist = dist
			found = true
		}
	}
	return best, bestDist, found
}

// Average courier speed and fixed preparation buffer used for naive ETA.
const (
	averageSpeedKmh    = 30.0
	preparationMinutes = 15
)

// EstimateDeliveryTime converts a road distance into an estimated delivery
// time in minutes: travel at 30 km/h, rounded up, plus a 15-minute
// preparation buffer.
func EstimateDeliveryTime(distanceKm float64) int {
	travel := math.Ceil(distanceKm / averageSpeedKmh * 60)
	return int(travel) + preparationMinutes
}
