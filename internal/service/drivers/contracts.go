package drivers

import (
	"context"

	"github.com/mjperez2704/deli-back-office/internal/domain"
	"github.com/mjperez2704/deli-back-office/internal/repository"
)

// driverRepository defines storage operations required by the business layer.
type driverRepository interface {
	Get(ctx context.Context, id int64) (*domain.Driver, error)
	List(ctx context.Context, online *bool, limit, offset *int) ([]domain.Driver, error)
	Create(ctx context.Context, d *domain.Driver) (int64, error)
	UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error)
	UpdateLocation(ctx context.Context, id int64, p domain.Point) (bool, error)
}

// locationIndex is the geo index of last-reported driver positions.
type locationIndex interface {
	Upsert(ctx context.Context, driverID int64, p domain.Point) error
	Remove(ctx context.Context, driverID int64) error
	Nearby(ctx context.Context, p domain.Point, radiusKm float64) ([]repository.NearbyDriver, error)
}
