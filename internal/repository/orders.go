package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mjperez2704/deli-back-office/internal/apperr"
	"github.com/mjperez2704/deli-back-office/internal/domain"
)

// OrderRepo represents order repository.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

const orderColumns = `id, customer_id, status, dropoff_lat, dropoff_lng, driver_id, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.Status,
		&o.Dropoff.Lat, &o.Dropoff.Lng, &o.DriverID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID - returns order by its ID, or nil when absent.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return o, nil
}

// List returns orders ordered by id, optionally filtered by status.
// If limit/offset are nil, returns the full list.
func (r *OrderRepo) List(ctx context.Context, status *domain.OrderStatus, limit, offset *int) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders`
	args := make([]any, 0, 3)
	if status != nil {
		args = append(args, *status)
		q += fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	q += " ORDER BY id"
	if limit != nil {
		args = append(args, *limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset != nil {
		args = append(args, *offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// Create - creates a new order in pending status.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO orders (customer_id, status, dropoff_lat, dropoff_lng)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, o.CustomerID, domain.StatusPending, o.Dropoff.Lat, o.Dropoff.Lng).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}
	return id, nil
}

// ListAssignable returns orders that may still receive a driver: status in
// the assignable set and no driver assigned. Ordered by id, so older orders
// are attempted first.
func (r *OrderRepo) ListAssignable(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+orderColumns+`
        FROM orders
        WHERE status IN ($1, $2, $3)
          AND driver_id IS NULL
        ORDER BY id
    `, domain.StatusPending, domain.StatusConfirmed, domain.StatusReady)
	if err != nil {
		return nil, fmt.Errorf("list assignable orders: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// AssignDriver sets the driver and moves the order to assigned, conditional
// on the order still being unassigned and in an assignable status. Zero rows
// affected means the order changed underneath the caller; that surfaces as
// apperr.ErrAssignmentPersist, never a silent overwrite.
func (r *OrderRepo) AssignDriver(ctx context.Context, orderID, driverID int64) error {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET driver_id = $2,
            status = $3,
            updated_at = now()
        WHERE id = $1
          AND driver_id IS NULL
          AND status IN ($4, $5, $6)
    `, orderID, driverID, domain.StatusAssigned,
		domain.StatusPending, domain.StatusConfirmed, domain.StatusReady)
	if err != nil {
		return fmt.Errorf("assign driver %d to order %d: %w", driverID, orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %d no longer assignable", apperr.ErrAssignmentPersist, orderID)
	}
	return nil
}

// UpdateStatus updates an order's status and returns true if a row was affected.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET status = $2, updated_at = now()
        WHERE id = $1
    `, id, status)
	if err != nil {
		return false, fmt.Errorf("update order status %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
