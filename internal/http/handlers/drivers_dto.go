package handlers

import (
	"github.com/mjperez2704/deli-back-office/internal/domain"
	"github.com/mjperez2704/deli-back-office/internal/repository"
)

type driverDTO struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Phone               string    `json:"phone"`
	Online              bool      `json:"online"`
	Location            *pointDTO `json:"location,omitempty"`
	Rating              float64   `json:"rating"`
	CompletedDeliveries int       `json:"completed_deliveries"`
}

type createDriverRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type updateDriverRequest struct {
	Name   *string  `json:"name,omitempty"`
	Phone  *string  `json:"phone,omitempty"`
	Online *bool    `json:"online,omitempty"`
	Rating *float64 `json:"rating,omitempty"`
}

type reportLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type nearbyDriverDTO struct {
	DriverID   int64   `json:"driver_id"`
	DistanceKm float64 `json:"distance_km"`
}

func driverToResponse(d domain.Driver) driverDTO {
	dto := driverDTO{
		ID:                  d.ID,
		Name:                d.Name,
		Phone:               d.Phone,
		Online:              d.Online,
		Rating:              d.Rating,
		CompletedDeliveries: d.CompletedDeliveries,
	}
	if d.Location != nil {
		dto.Location = &pointDTO{Lat: d.Location.Lat, Lng: d.Location.Lng}
	}
	return dto
}

func driversToResponse(list []domain.Driver) []driverDTO {
	out := make([]driverDTO, 0, len(list))
	for _, d := range list {
		out = append(out, driverToResponse(d))
	}
	return out
}

func (r createDriverRequest) toModel() *domain.Driver {
	return &domain.Driver{
		Name:  r.Name,
		Phone: r.Phone,
	}
}

func (r updateDriverRequest) toModel(id int64) domain.PartialDriverUpdate {
	return domain.PartialDriverUpdate{
		ID:     id,
		Name:   r.Name,
		Phone:  r.Phone,
		Online: r.Online,
		Rating: r.Rating,
	}
}

func nearbyToResponse(list []repository.NearbyDriver) []nearbyDriverDTO {
	out := make([]nearbyDriverDTO, 0, len(list))
	for _, n := range list {
		out = append(out, nearbyDriverDTO{DriverID: n.DriverID, DistanceKm: n.DistanceKm})
	}
	return out
}
