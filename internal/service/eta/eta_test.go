package eta

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mjperez2704/deli-back-office/internal/apperr"
	"github.com/mjperez2704/deli-back-office/internal/domain"
	"github.com/mjperez2704/deli-back-office/internal/gateway/routes"
)

type mockOrders struct {
	getFn func(ctx context.Context, id int64) (*domain.Order, error)
}

func (m *mockOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return m.getFn(ctx, id)
}

type mockDrivers struct {
	getFn func(ctx context.Context, id int64) (*domain.Driver, error)
}

func (m *mockDrivers) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	return m.getFn(ctx, id)
}

type mockRoutes struct {
	estimateFn func(ctx context.Context, origin, destination domain.Point) (routes.Estimate, error)
}

func (m *mockRoutes) Estimate(ctx context.Context, o, d domain.Point) (routes.Estimate, error) {
	return m.estimateFn(ctx, o, d)
}

func knownOrder(id int64) *domain.Order {
	return &domain.Order{
		ID:      id,
		Status:  domain.StatusReady,
		Dropoff: domain.Point{Lat: 19.4300, Lng: -99.1330},
	}
}

func locatedDriver(id int64) *domain.Driver {
	return &domain.Driver{
		ID:       id,
		Name:     "Ana",
		Online:   true,
		Location: &domain.Point{Lat: 19.4320, Lng: -99.1330},
	}
}

func TestService_Estimate_UsesRouteGateway(t *testing.T) {
	t.Parallel()

	orders := &mockOrders{getFn: func(_ context.Context, id int64) (*domain.Order, error) {
		return knownOrder(id), nil
	}}
	drivers := &mockDrivers{getFn: func(_ context.Context, id int64) (*domain.Driver, error) {
		return locatedDriver(id), nil
	}}
	gw := &mockRoutes{estimateFn: func(_ context.Context, origin, dest domain.Point) (routes.Estimate, error) {
		return routes.Estimate{Duration: 11*time.Minute + 30*time.Second, DistanceKm: 3.7}, nil
	}}

	got, err := NewService(orders, drivers, gw, time.Second).Estimate(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != SourceRoutes {
		t.Fatalf("expected routes source, got %q", got.Source)
	}
	if got.Minutes != 12 {
		t.Fatalf("expected 12 minutes (ceil), got %d", got.Minutes)
	}
	if got.DistanceKm != 3.7 {
		t.Fatalf("expected 3.7 km, got %v", got.DistanceKm)
	}
}

func TestService_Estimate_FallsBackWithoutGateway(t *testing.T) {
	t.Parallel()

	orders := &mockOrders{getFn: func(_ context.Context, id int64) (*domain.Order, error) {
		return knownOrder(id), nil
	}}
	drivers := &mockDrivers{getFn: func(_ context.Context, id int64) (*domain.Driver, error) {
		return locatedDriver(id), nil
	}}

	got, err := NewService(orders, drivers, nil, time.Second).Estimate(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != SourceStraightLine {
		t.Fatalf("expected straight_line source, got %q", got.Source)
	}
	if got.DistanceKm <= 0 || got.DistanceKm > 1 {
		t.Fatalf("expected a short distance, got %v km", got.DistanceKm)
	}
	if got.Minutes < 15 {
		t.Fatalf("estimate must include the preparation buffer, got %d", got.Minutes)
	}
}

func TestService_Estimate_FallsBackOnGatewayError(t *testing.T) {
	t.Parallel()

	orders := &mockOrders{getFn: func(_ context.Context, id int64) (*domain.Order, error) {
		return knownOrder(id), nil
	}}
	drivers := &mockDrivers{getFn: func(_ context.Context, id int64) (*domain.Driver, error) {
		return locatedDriver(id), nil
	}}
	gw := &mockRoutes{estimateFn: func(context.Context, domain.Point, domain.Point) (routes.Estimate, error) {
		return routes.Estimate{}, errors.New("quota exceeded")
	}}

	got, err := NewService(orders, drivers, gw, time.Second).Estimate(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != SourceStraightLine {
		t.Fatalf("expected fallback source, got %q", got.Source)
	}
}

func TestService_Estimate_Failures(t *testing.T) {
	t.Parallel()

	t.Run("unknown order", func(t *testing.T) {
		orders := &mockOrders{getFn: func(context.Context, int64) (*domain.Order, error) {
			return nil, nil
		}}
		_, err := NewService(orders, &mockDrivers{}, nil, time.Second).Estimate(context.Background(), 1, 2)
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("driver without location", func(t *testing.T) {
		orders := &mockOrders{getFn: func(_ context.Context, id int64) (*domain.Order, error) {
			return knownOrder(id), nil
		}}
		drivers := &mockDrivers{getFn: func(context.Context, int64) (*domain.Driver, error) {
			return &domain.Driver{ID: 2, Name: "Braulio"}, nil
		}}
		_, err := NewService(orders, drivers, nil, time.Second).Estimate(context.Background(), 1, 2)
		if !errors.Is(err, apperr.ErrInvalid) {
			t.Fatalf("expected ErrInvalid, got %v", err)
		}
	})

	t.Run("invalid ids", func(t *testing.T) {
		_, err := NewService(&mockOrders{}, &mockDrivers{}, nil, time.Second).Estimate(context.Background(), 0, 2)
		if !errors.Is(err, apperr.ErrInvalid) {
			t.Fatalf("expected ErrInvalid, got %v", err)
		}
	})
}
