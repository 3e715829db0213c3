package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mjperez2704/deli-back-office/internal/apperr"
	"github.com/mjperez2704/deli-back-office/internal/domain"
	"github.com/mjperez2704/deli-back-office/internal/geo"
	"github.com/mjperez2704/deli-back-office/internal/logx"
)

// Config stores engine timing settings.
type Config struct {
	// OperationTimeout bounds one assignment attempt end to end.
	OperationTimeout time.Duration
	// InterAssignDelay is the pause between orders in a batch pass, so the
	// persistence and notification collaborators are not hammered in a burst.
	InterAssignDelay time.Duration
}

// Metrics holds the engine's Prometheus counters. Any field may be nil.
type Metrics struct {
	Assignments          prometheus.Counter
	AssignmentFailures   *prometheus.CounterVec
	NotificationFailures prometheus.Counter
}

// Engine selects the best online driver for an order and persists the
// assignment. It performs no cross-call locking; the conditional driver
// update in the order store is what prevents double assignment.
type Engine struct {
	orders   orderStore
	drivers  driverStore
	notifier Notifier
	logger   logx.Logger
	metrics  Metrics

	operationTimeout time.Duration
	interAssignDelay time.Duration
	sleep            func(ctx context.Context, d time.Duration) bool
}

// NewEngine creates a new dispatch Engine.
func NewEngine(orders orderStore, drivers driverStore, notifier Notifier, cfg Config, m Metrics, logger logx.Logger) *Engine {
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = 3 * time.Second
	}
	if cfg.InterAssignDelay <= 0 {
		cfg.InterAssignDelay = 100 * time.Millisecond
	}
	return &Engine{
		orders:           orders,
		drivers:          drivers,
		notifier:         notifier,
		logger:           logger,
		metrics:          m,
		operationTimeout: cfg.OperationTimeout,
		interAssignDelay: cfg.InterAssignDelay,
		sleep:            sleepWithContext,
	}
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.operationTimeout)
}

// AutoAssignOrder selects the nearest eligible online driver for the order
// and persists the assignment. Failures come back as apperr sentinels with
// detail; the returned result always carries the machine-readable reason.
func (e *Engine) AutoAssignOrder(ctx context.Context, orderID int64, criteria domain.AssignmentCriteria) (domain.AssignmentResult, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.assign(ctx, orderID, 0, criteria.WithDefaults())
}

// ReassignOrder repeats driver selection for an order whose previous
// assignment failed, never considering the excluded driver.
func (e *Engine) ReassignOrder(ctx context.Context, orderID, excludeDriverID int64, criteria domain.AssignmentCriteria) (domain.AssignmentResult, error) {
	if excludeDriverID <= 0 {
		return failure(orderID, apperr.ErrInvalid)
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.assign(ctx, orderID, excludeDriverID, criteria.WithDefaults())
}

// AutoAssignPendingOrders runs one assignment pass over every assignable
// order. Orders are processed sequentially with a short delay between
// attempts; per-order failures land in the batch results and are never
// propagated. Only the assignable-orders query itself can fail the call.
func (e *Engine) AutoAssignPendingOrders(ctx context.Context, criteria domain.AssignmentCriteria) (domain.BatchResult, error) {
	listCtx, cancel := e.withTimeout(ctx)
	orders, err := e.orders.ListAssignable(listCtx)
	cancel()
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("list assignable orders: %w", err)
	}

	batch := domain.BatchResult{
		Total:   len(orders),
		Results: make([]domain.AssignmentResult, 0, len(orders)),
	}
	for i, ord := range orders {
		if i > 0 && !e.sleep(ctx, e.interAssignDelay) {
			break
		}
		if ctx.Err() != nil {
			break
		}
		res, _ := e.AutoAssignOrder(ctx, ord.ID, criteria)
		batch.Results = append(batch.Results, res)
		if res.Assigned {
			batch.Assigned++
		} else {
			batch.Failed++
		}
	}
	return batch, nil
}

func (e *Engine) assign(ctx context.Context, orderID, excludeDriverID int64, criteria domain.AssignmentCriteria) (domain.AssignmentResult, error) {
	ord, err := e.orders.GetByID(ctx, orderID)
	if err != nil {
		return failure(orderID, fmt.Errorf("get order %d: %w", orderID, err))
	}
	if ord == nil {
		return e.reject(orderID, fmt.Errorf("%w: order %d", apperr.ErrOrderNotFound, orderID))
	}
	if !ord.Status.Assignable() {
		return e.reject(orderID, fmt.Errorf("%w: current status %q", apperr.ErrOrderState, ord.Status))
	}

	online, err := e.drivers.ListOnline(ctx)
	if err != nil {
		return e.reject(orderID, fmt.Errorf("%w: %w", apperr.ErrNoDriversAvailable, err))
	}
	if len(online) == 0 {
		return e.reject(orderID, apperr.ErrNoDriversAvailable)
	}
	if excludeDriverID != 0 && len(withoutDriver(online, excludeDriverID)) == 0 {
		return e.reject(orderID, fmt.Errorf("%w: excluding driver %d", apperr.ErrNoAlternativeDrivers, excludeDriverID))
	}

	eligible := eligibleDrivers(online, criteria, excludeDriverID)
	if len(eligible) == 0 {
		return e.reject(orderID, apperr.ErrNoEligibleDrivers)
	}

	chosen, dist, ok := geo.NearestDriver(ord.Dropoff, eligible)
	if !ok {
		return e.reject(orderID, apperr.ErrNoNearestDriver)
	}
	if dist > criteria.MaxDistanceKm {
		return e.reject(orderID, fmt.Errorf("%w: nearest at %.2f km, max %.2f km",
			apperr.ErrDistanceExceeded, dist, criteria.MaxDistanceKm))
	}
	if criteria.PreferRating {
		chosen, dist = bestRatedWithin(ord.Dropoff, eligible, criteria.MaxDistanceKm, chosen, dist)
	}

	eta := geo.EstimateDeliveryTime(dist)

	if err := e.orders.AssignDriver(ctx, ord.ID, chosen.ID); err != nil {
		if !errors.Is(err, apperr.ErrAssignmentPersist) {
			err = fmt.Errorf("%w: %w", apperr.ErrAssignmentPersist, err)
		}
		e.logger.Error("assignment persist failed",
			logx.Int64("order_id", ord.ID),
			logx.Int64("driver_id", chosen.ID),
			logx.Any("err", err),
		)
		e.countFailure(err)
		return failure(orderID, err)
	}

	e.notifyAssigned(ctx, *ord, chosen, dist, eta)

	if e.metrics.Assignments != nil {
		e.metrics.Assignments.Inc()
	}
	e.logger.Info("order assigned",
		logx.String("event", "order_assigned"),
		logx.Int64("order_id", ord.ID),
		logx.Int64("driver_id", chosen.ID),
		logx.Float64("distance_km", dist),
		logx.Int("eta_minutes", eta),
	)

	return domain.AssignmentResult{
		Assigned:         true,
		OrderID:          ord.ID,
		DriverID:         chosen.ID,
		DriverName:       chosen.Name,
		DistanceKm:       dist,
		EstimatedMinutes: eta,
	}, nil
}

// bestRatedWithin picks the highest-rated eligible driver inside the distance
// cap; distance breaks rating ties. The fallback is the nearest driver, which
// is already known to be in range.
func bestRatedWithin(target domain.Point, drivers []domain.Driver, maxKm float64, fallback domain.Driver, fallbackDist float64) (domain.Driver, float64) {
	best, bestDist := fallback, fallbackDist
	for _, d := range drivers {
		dist := geo.Distance(target, *d.Location)
		if dist > maxKm {
			continue
		}
		if d.Rating > best.Rating || (d.Rating == best.Rating && dist < bestDist) {
			best, bestDist = d, dist
		}
	}
	return best, bestDist
}

// reject records an expected dispatch outcome. These are routine under normal
// load, so they log at info, not error.
func (e *Engine) reject(orderID int64, err error) (domain.AssignmentResult, error) {
	e.countFailure(err)
	if apperr.Operational(err) {
		e.logger.Info("order not assigned",
			logx.Int64("order_id", orderID),
			logx.String("reason", apperr.Reason(err)),
		)
	}
	return failure(orderID, err)
}

func (e *Engine) countFailure(err error) {
	if e.metrics.AssignmentFailures != nil {
		e.metrics.AssignmentFailures.WithLabelValues(apperr.Reason(err)).Inc()
	}
}

func failure(orderID int64, err error) (domain.AssignmentResult, error) {
	return domain.AssignmentResult{
		OrderID: orderID,
		Reason:  apperr.Reason(err),
	}, err
}

// notifyAssigned tells the driver and the customer about the assignment.
// Failures are logged and swallowed: the assignment already succeeded, so a
// lost notification must not flip the result. The publish runs on a detached
// context so an almost-expired operation deadline does not clip it.
func (e *Engine) notifyAssigned(ctx context.Context, ord domain.Order, drv domain.Driver, dist float64, eta int) {
	if e.notifier == nil {
		return
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	intents := []domain.Notification{
		{
			UserID:  drv.ID,
			OrderID: ord.ID,
			Title:   "New delivery assigned",
			Message: fmt.Sprintf("Order #%d, pickup %.1f km away", ord.ID, dist),
			Type:    domain.NotificationTypeDriverAssigned,
		},
		{
			UserID:  ord.CustomerID,
			OrderID: ord.ID,
			Title:   "Driver on the way",
			Message: fmt.Sprintf("%s is delivering your order, about %d minutes", drv.Name, eta),
			Type:    domain.NotificationTypeOrderAssigned,
		},
	}
	for _, n := range intents {
		if err := e.notifier.Notify(nctx, n); err != nil {
			if e.metrics.NotificationFailures != nil {
				e.metrics.NotificationFailures.Inc()
			}
			e.logger.Warn("notification dropped",
				logx.Int64("user_id", n.UserID),
				logx.Int64("order_id", n.OrderID),
				logx.String("type", n.Type),
				logx.Any("err", err),
			)
		}
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
