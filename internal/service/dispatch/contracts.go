package dispatch

import (
	"context"

	"github.com/mjperez2704/deli-back-office/internal/domain"
)

// orderStore abstracts order persistence as seen by the engine.
type orderStore interface {
	// GetByID returns nil, nil when the order does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// ListAssignable returns orders in an assignable status with no driver yet.
	ListAssignable(ctx context.Context) ([]domain.Order, error)
	// AssignDriver atomically sets the driver and moves the order to the
	// assigned status, conditional on the order still being assignable.
	// Returns apperr.ErrAssignmentPersist when the condition no longer holds.
	AssignDriver(ctx context.Context, orderID, driverID int64) error
}

// driverStore abstracts driver persistence as seen by the engine.
type driverStore interface {
	ListOnline(ctx context.Context) ([]domain.Driver, error)
}

// Notifier dispatches a notification intent. Delivery is best-effort: the
// engine logs a failure and moves on, it never fails an assignment over it.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}
