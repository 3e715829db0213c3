package domain

import "time"

// OrderStatus represents the lifecycle status of an order.
type OrderStatus string

// Order represents a customer order with a delivery destination.
type Order struct {
	ID         int64
	CustomerID int64
	Status     OrderStatus
	Dropoff    Point
	DriverID   *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Assigned reports whether a driver has already been assigned to the order.
func (o Order) Assigned() bool {
	return o.DriverID != nil
}
