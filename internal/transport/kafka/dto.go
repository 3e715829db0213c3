package kafka

import (
	"strings"
	"time"

	"github.com/mjperez2704/deli-back-office/internal/service/dispatch"
)

// EventDTO is the wire representation of an order stream event.
type EventDTO struct {
	OrderID   int64     `json:"order_id"`
	Status    string    `json:"status"`
	DriverID  int64     `json:"driver_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDomain converts EventDTO to dispatch.Event
func ToDomain(dto EventDTO) dispatch.Event {
	return dispatch.Event{
		OrderID:   dto.OrderID,
		Status:    strings.TrimSpace(dto.Status),
		DriverID:  dto.DriverID,
		CreatedAt: dto.CreatedAt,
	}
}
