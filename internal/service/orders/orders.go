package orders

import (
	"context"
	"time"

	"github.com/mjperez2704/deli-back-office/internal/apperr"
	"github.com/mjperez2704/deli-back-office/internal/domain"
)

// Service coordinates order business logic and orchestrates repository calls.
type Service struct {
	repo             orderRepository
	operationTimeout time.Duration
}

// NewService creates and configures an order Service.
func NewService(r orderRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateCreate validates an order for creation.
func validateCreate(o *domain.Order) error {
	if o == nil {
		return apperr.ErrInvalid
	}
	if o.CustomerID <= 0 {
		return apperr.ErrInvalid
	}
	if !validPoint(o.Dropoff) {
		return apperr.ErrInvalid
	}
	return nil
}

func validPoint(p domain.Point) bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Get retrieves an order by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.ErrNotFound
	}
	return o, nil
}

// List returns orders with an optional status filter and pagination.
func (s *Service) List(ctx context.Context, status *domain.OrderStatus, limit, offset *int) ([]domain.Order, error) {
	if status != nil && !status.Valid() {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, status, limit, offset)
}

// Create persists a new order and returns its generated ID.
// New orders always start in pending status.
func (s *Service) Create(ctx context.Context, o *domain.Order) (int64, error) {
	if err := validateCreate(o); err != nil {
		return 0, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, o)
}

// UpdateStatus moves an order to the given status.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	if id <= 0 || !status.Valid() {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}
