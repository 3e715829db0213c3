package handlers

import (
	"context"
	"time"

	"github.com/mjperez2704/deli-back-office/internal/domain"
	"github.com/mjperez2704/deli-back-office/internal/repository"
	"github.com/mjperez2704/deli-back-office/internal/service/dispatch"
	"github.com/mjperez2704/deli-back-office/internal/service/drivers"
	"github.com/mjperez2704/deli-back-office/internal/service/eta"
	"github.com/mjperez2704/deli-back-office/internal/service/orders"
)

type dispatchUsecase interface {
	AutoAssignOrder(ctx context.Context, orderID int64, criteria domain.AssignmentCriteria) (domain.AssignmentResult, error)
	AutoAssignPendingOrders(ctx context.Context, criteria domain.AssignmentCriteria) (domain.BatchResult, error)
	ReassignOrder(ctx context.Context, orderID, excludeDriverID int64, criteria domain.AssignmentCriteria) (domain.AssignmentResult, error)
}

// NewDispatchUsecase wires an assignment Engine into a dispatchUsecase.
func NewDispatchUsecase(e *dispatch.Engine) dispatchUsecase {
	return e
}

type schedulerUsecase interface {
	Start(interval time.Duration) error
	Stop()
	IsActive() bool
	Interval() time.Duration
}

// NewSchedulerUsecase wires a Scheduler into a schedulerUsecase.
func NewSchedulerUsecase(s *dispatch.Scheduler) schedulerUsecase {
	return s
}

type orderUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus, limit, offset *int) ([]domain.Order, error)
	Create(ctx context.Context, o *domain.Order) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
}

// NewOrderUsecase wires an order Service into an orderUsecase.
func NewOrderUsecase(s *orders.Service) orderUsecase {
	return s
}

type driverUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Driver, error)
	List(ctx context.Context, online *bool, limit, offset *int) ([]domain.Driver, error)
	Create(ctx context.Context, d *domain.Driver) (int64, error)
	UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) error
	ReportLocation(ctx context.Context, id int64, p domain.Point) error
	Nearby(ctx context.Context, p domain.Point, radiusKm float64) ([]repository.NearbyDriver, error)
}

// NewDriverUsecase wires a driver Service into a driverUsecase.
func NewDriverUsecase(s *drivers.Service) driverUsecase {
	return s
}

type etaUsecase interface {
	Estimate(ctx context.Context, orderID, driverID int64) (eta.Estimate, error)
}

// NewETAUsecase wires an ETA Service into an etaUsecase.
func NewETAUsecase(s *eta.Service) etaUsecase {
	return s
}
