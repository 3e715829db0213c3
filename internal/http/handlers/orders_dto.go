package handlers

import (
	"time"

	"github.com/mjperez2704/deli-back-office/internal/domain"
)

type pointDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type orderDTO struct {
	ID         int64              `json:"id"`
	CustomerID int64              `json:"customer_id"`
	Status     domain.OrderStatus `json:"status"`
	Dropoff    pointDTO           `json:"dropoff"`
	DriverID   *int64             `json:"driver_id,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type createOrderRequest struct {
	CustomerID int64    `json:"customer_id"`
	Dropoff    pointDTO `json:"dropoff"`
}

type updateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func orderToResponse(o domain.Order) orderDTO {
	return orderDTO{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Dropoff:    pointDTO{Lat: o.Dropoff.Lat, Lng: o.Dropoff.Lng},
		DriverID:   o.DriverID,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func ordersToResponse(list []domain.Order) []orderDTO {
	out := make([]orderDTO, 0, len(list))
	for _, o := range list {
		out = append(out, orderToResponse(o))
	}
	return out
}

func (r createOrderRequest) toModel() *domain.Order {
	return &domain.Order{
		CustomerID: r.CustomerID,
		Dropoff:    domain.Point{Lat: r.Dropoff.Lat, Lng: r.Dropoff.Lng},
	}
}
