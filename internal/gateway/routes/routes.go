package routes

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"github.com/mjperez2704/deli-back-office/internal/domain"
)

// Estimate is a road travel estimate between two points.
type Estimate struct {
	Duration   time.Duration
	DistanceKm float64
}

// GoogleGateway is a route estimator backed by the Google Maps Directions API.
type GoogleGateway struct {
	client *maps.Client
}

// NewGoogleGateway creates a route gateway with the given API key.
func NewGoogleGateway(apiKey string) (*GoogleGateway, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}
	return &GoogleGateway{client: client}, nil
}

// Estimate returns the driving duration and distance from origin to destination.
func (g *GoogleGateway) Estimate(ctx context.Context, origin, destination domain.Point) (Estimate, error) {
	req := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", origin.Lat, origin.Lng),
		Destination: fmt.Sprintf("%f,%f", destination.Lat, destination.Lng),
		Mode:        maps.TravelModeDriving,
	}

	routesResp, _, err := g.client.Directions(ctx, req)
	if err != nil {
		return Estimate{}, fmt.Errorf("route gateway: Directions: %w", err)
	}
	if len(routesResp) == 0 || len(routesResp[0].Legs) == 0 {
		return Estimate{}, fmt.Errorf("route gateway: no route found")
	}

	leg := routesResp[0].Legs[0]
	return Estimate{
		Duration:   leg.Duration,
		DistanceKm: float64(leg.Distance.Meters) / 1000,
	}, nil
}
