package orders

import (
	"context"

	"github.com/mjperez2704/deli-back-office/internal/domain"
)

// orderRepository defines storage operations required by the business layer.
type orderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus, limit, offset *int) ([]domain.Order, error)
	Create(ctx context.Context, o *domain.Order) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (bool, error)
}
