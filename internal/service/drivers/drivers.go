package drivers

import (
	"context"
	"strings"
	"time"

	"github.com/mjperez2704/deli-back-office/internal/apperr"
	"github.com/mjperez2704/deli-back-office/internal/domain"
	"github.com/mjperez2704/deli-back-office/internal/logx"
	"github.com/mjperez2704/deli-back-office/internal/repository"
)

// Service coordinates driver business logic and orchestrates repository calls.
// Location reports land in two places: Postgres is the source of truth the
// assignment engine reads, and the Redis geo index serves the map view.
type Service struct {
	repo             driverRepository
	index            locationIndex
	logger           logx.Logger
	operationTimeout time.Duration
}

// NewService creates and configures a driver Service. index may be nil when
// Redis is not configured.
func NewService(r driverRepository, index locationIndex, logger logx.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, index: index, logger: logger, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateCreate validates a driver for creation.
func validateCreate(d *domain.Driver) error {
	if d == nil {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(d.Name) == "" {
		return apperr.ErrInvalid
	}
	if !domain.ValidatePhone(d.Phone) {
		return apperr.ErrInvalid
	}
	return nil
}

func validateUpdate(u *domain.PartialDriverUpdate) error {
	if u.ID <= 0 {
		return apperr.ErrInvalid
	}
	if u.Name == nil && u.Phone == nil && u.Online == nil && u.Rating == nil {
		return apperr.ErrInvalid
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return apperr.ErrInvalid
	}
	if u.Phone != nil && !domain.ValidatePhone(*u.Phone) {
		return apperr.ErrInvalid
	}
	if u.Rating != nil && (*u.Rating < 0 || *u.Rating > 5) {
		return apperr.ErrInvalid
	}
	return nil
}

func validPoint(p domain.Point) bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Get retrieves a driver by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	if id <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}

// List returns drivers with an optional online filter and pagination.
func (s *Service) List(ctx context.Context, online *bool, limit, offset *int) ([]domain.Driver, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, online, limit, offset)
}

// Create persists a new driver and returns its generated ID. New drivers
// start offline with the baseline rating.
func (s *Service) Create(ctx context.Context, d *domain.Driver) (int64, error) {
	if err := validateCreate(d); err != nil {
		return 0, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, d)
}

// UpdatePartial applies a partial update to a driver. A driver going offline
// is dropped from the geo index so the map view stops showing them.
func (s *Service) UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) error {
	if err := validateUpdate(&u); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdatePartial(ctx, u)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	if s.index != nil && u.Online != nil && !*u.Online {
		if err := s.index.Remove(ctx, u.ID); err != nil {
			s.logger.Warn("geo index remove failed",
				logx.Int64("driver_id", u.ID),
				logx.Any("err", err),
			)
		}
	}
	return nil
}

// ReportLocation stores a driver's reported position. The Redis index update
// is best-effort; Postgres is what assignment reads.
func (s *Service) ReportLocation(ctx context.Context, id int64, p domain.Point) error {
	if id <= 0 || !validPoint(p) {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdateLocation(ctx, id, p)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	if s.index != nil {
		if err := s.index.Upsert(ctx, id, p); err != nil {
			s.logger.Warn("geo index upsert failed",
				logx.Int64("driver_id", id),
				logx.Any("err", err),
			)
		}
	}
	return nil
}

// Nearby returns drivers within radiusKm of p, closest first, from the geo
// index.
func (s *Service) Nearby(ctx context.Context, p domain.Point, radiusKm float64) ([]repository.NearbyDriver, error) {
	if !validPoint(p) || radiusKm <= 0 {
		return nil, apperr.ErrInvalid
	}
	if s.index == nil {
		return nil, apperr.ErrNotFound
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.index.Nearby(ctx, p, radiusKm)
}
