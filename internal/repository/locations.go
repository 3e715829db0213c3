package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mjperez2704/deli-back-office/internal/domain"
)

const driverGeoKey = "dispatch:drivers"

// NearbyDriver is one entry of a radius search around a point.
type NearbyDriver struct {
	DriverID   int64
	DistanceKm float64
}

// LocationIndex is a Redis GEO index of last-reported driver positions. It
// backs the back-office map view; the assignment engine itself reads driver
// rows from Postgres.
type LocationIndex struct {
	redis *redis.Client
}

// NewLocationIndex creates a new LocationIndex.
func NewLocationIndex(rdb *redis.Client) *LocationIndex {
	return &LocationIndex{redis: rdb}
}

// Upsert records a driver's reported position.
func (l *LocationIndex) Upsert(ctx context.Context, driverID int64, p domain.Point) error {
	return l.redis.GeoAdd(ctx, driverGeoKey, &redis.GeoLocation{
		Name:      strconv.FormatInt(driverID, 10),
		Longitude: p.Lng,
		Latitude:  p.Lat,
	}).Err()
}

// Remove drops a driver from the index, typically when going offline.
func (l *LocationIndex) Remove(ctx context.Context, driverID int64) error {
	return l.redis.ZRem(ctx, driverGeoKey, strconv.FormatInt(driverID, 10)).Err()
}

// Nearby returns drivers within radiusKm of p, closest first.
func (l *LocationIndex) Nearby(ctx context.Context, p domain.Point, radiusKm float64) ([]NearbyDriver, error) {
	results, err := l.redis.GeoSearchLocation(ctx, driverGeoKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  p.Lng,
			Latitude:   p.Lat,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
		},
		WithDist: true,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("geo search: %w", err)
	}

	out := make([]NearbyDriver, 0, len(results))
	for _, r := range results {
		id, err := strconv.ParseInt(r.Name, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, NearbyDriver{DriverID: id, DistanceKm: r.Dist})
	}
	return out, nil
}
