package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/mjperez2704/deli-back-office/internal/config"
	"github.com/mjperez2704/deli-back-office/internal/gateway/routes"
	"github.com/mjperez2704/deli-back-office/internal/logx"
)

type routeGatewayIn struct {
	dig.In
	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

// newRouteGateway returns nil when no Maps API key is configured; the ETA
// service then falls back to the straight-line estimate.
func newRouteGateway(in routeGatewayIn) (*routes.RetryingGateway, error) {
	if in.Cfg.Maps.APIKey == "" {
		return nil, nil
	}
	gw, err := routes.NewGoogleGateway(in.Cfg.Maps.APIKey)
	if err != nil {
		return nil, err
	}
	return routes.NewRetryingGateway(gw, in.Logger, in.Retries, routes.RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    2 * time.Second,
	}), nil
}
