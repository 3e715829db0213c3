package dispatch

import (
	"context"
	"time"

	"github.com/mjperez2704/deli-back-office/internal/apperr"
	"github.com/mjperez2704/deli-back-office/internal/domain"
	"github.com/mjperez2704/deli-back-office/internal/logx"
)

// EventDeliveryFailed is emitted when a driver could not complete a delivery.
const EventDeliveryFailed = "delivery_failed"

// Event is an order lifecycle event consumed from the order stream.
type Event struct {
	OrderID   int64
	Status    string
	DriverID  int64
	CreatedAt time.Time
}

// HandleOrderEvent reacts to a single order stream event. Events in an
// assignable status trigger an assignment attempt; delivery_failed triggers
// reassignment away from the failed driver. Operational outcomes (no drivers,
// order already taken) are not errors from the stream's point of view.
func (e *Engine) HandleOrderEvent(ctx context.Context, ev Event) error {
	switch {
	case ev.Status == EventDeliveryFailed:
		if ev.DriverID <= 0 {
			e.logger.Warn("delivery_failed event without driver_id",
				logx.Int64("order_id", ev.OrderID),
			)
			return nil
		}
		_, err := e.ReassignOrder(ctx, ev.OrderID, ev.DriverID, domain.AssignmentCriteria{})
		return ignoreOperational(err)
	case domain.OrderStatus(ev.Status).Assignable():
		_, err := e.AutoAssignOrder(ctx, ev.OrderID, domain.AssignmentCriteria{})
		return ignoreOperational(err)
	default:
		return nil
	}
}

func ignoreOperational(err error) error {
	if err == nil || apperr.Operational(err) {
		return nil
	}
	return err
}
