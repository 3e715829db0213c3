package eta

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mjperez2704/deli-back-office/internal/apperr"
	"github.com/mjperez2704/deli-back-office/internal/domain"
	"github.com/mjperez2704/deli-back-office/internal/gateway/routes"
	"github.com/mjperez2704/deli-back-office/internal/geo"
)

type orderGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
}

type driverGetter interface {
	Get(ctx context.Context, id int64) (*domain.Driver, error)
}

type routeEstimator interface {
	Estimate(ctx context.Context, origin, destination domain.Point) (routes.Estimate, error)
}

// Estimate is a delivery time estimate for a concrete order/driver pair.
type Estimate struct {
	OrderID    int64
	DriverID   int64
	DistanceKm float64
	Minutes    int
	Source     string
}

// Estimate sources.
const (
	SourceRoutes       = "routes"
	SourceStraightLine = "straight_line"
)

// Service computes road ETAs between a driver's last position and an order's
// dropoff. When no route gateway is configured it falls back to the
// straight-line distance at average courier speed.
type Service struct {
	orders           orderGetter
	drivers          driverGetter
	routes           routeEstimator
	operationTimeout time.Duration
}

// NewService creates an ETA Service. routes may be nil.
func NewService(orders orderGetter, drivers driverGetter, routes routeEstimator, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{orders: orders, drivers: drivers, routes: routes, operationTimeout: timeout}
}

// Estimate returns the delivery time estimate for the given order and driver.
func (s *Service) Estimate(ctx context.Context, orderID, driverID int64) (Estimate, error) {
	if orderID <= 0 || driverID <= 0 {
		return Estimate{}, apperr.ErrInvalid
	}
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	ord, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return Estimate{}, err
	}
	if ord == nil {
		return Estimate{}, fmt.Errorf("%w: order %d", apperr.ErrNotFound, orderID)
	}

	drv, err := s.drivers.Get(ctx, driverID)
	if err != nil {
		return Estimate{}, err
	}
	if drv == nil {
		return Estimate{}, fmt.Errorf("%w: driver %d", apperr.ErrNotFound, driverID)
	}
	if !drv.Locatable() {
		return Estimate{}, fmt.Errorf("%w: driver %d has no known location", apperr.ErrInvalid, driverID)
	}

	if s.routes != nil {
		est, err := s.routes.Estimate(ctx, *drv.Location, ord.Dropoff)
		if err == nil {
			return Estimate{
				OrderID:    orderID,
				DriverID:   driverID,
				DistanceKm: est.DistanceKm,
				Minutes:    int(math.Ceil(est.Duration.Minutes())),
				Source:     SourceRoutes,
			}, nil
		}
		if ctx.Err() != nil {
			return Estimate{}, err
		}
		// fall through to the straight-line estimate
	}

	dist := geo.Distance(*drv.Location, ord.Dropoff)
	return Estimate{
		OrderID:    orderID,
		DriverID:   driverID,
		DistanceKm: dist,
		Minutes:    geo.EstimateDeliveryTime(dist),
		Source:     SourceStraightLine,
	}, nil
}
