package domain

// List of possible order statuses
const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusAssigned       OrderStatus = "assigned"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// List of allowed statuses
var allowedStatuses = [...]OrderStatus{
	StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
	StatusAssigned, StatusOutForDelivery, StatusDelivered, StatusCancelled,
}

// assignableStatuses are the only statuses from which a driver may be assigned.
var assignableStatuses = [...]OrderStatus{
	StatusPending, StatusConfirmed, StatusReady,
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Assignable reports whether an order in this status may receive a driver.
func (s OrderStatus) Assignable() bool {
	for _, v := range assignableStatuses {
		if s == v {
			return true
		}
	}
	return false
}
