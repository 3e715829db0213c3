package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjperez2704/deli-back-office/internal/apperr"
	"github.com/mjperez2704/deli-back-office/internal/domain"
	"github.com/mjperez2704/deli-back-office/internal/logx"
)

type stubOrderUsecase struct {
	getFn    func(ctx context.Context, id int64) (*domain.Order, error)
	listFn   func(ctx context.Context, status *domain.OrderStatus, limit, offset *int) ([]domain.Order, error)
	createFn func(ctx context.Context, o *domain.Order) (int64, error)
	updateFn func(ctx context.Context, id int64, status domain.OrderStatus) error
}

func (s *stubOrderUsecase) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.getFn(ctx, id)
}

func (s *stubOrderUsecase) List(ctx context.Context, status *domain.OrderStatus, limit, offset *int) ([]domain.Order, error) {
	return s.listFn(ctx, status, limit, offset)
}

func (s *stubOrderUsecase) Create(ctx context.Context, o *domain.Order) (int64, error) {
	return s.createFn(ctx, o)
}

func (s *stubOrderUsecase) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	return s.updateFn(ctx, id, status)
}

// withURLParam injects a chi route parameter into the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestOrderHandler_GetByID_OK(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		getFn: func(_ context.Context, id int64) (*domain.Order, error) {
			require.Equal(t, int64(5), id)
			return &domain.Order{
				ID:         5,
				CustomerID: 100,
				Status:     domain.StatusPending,
				Dropoff:    domain.Point{Lat: 19.43, Lng: -99.13},
			}, nil
		},
	}

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/orders/5", nil), "id", "5")
	rr := httptest.NewRecorder()

	NewOrderHandler(logx.Nop(), uc).GetByID(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"pending"`)
	assert.Contains(t, rr.Body.String(), `"customer_id":100`)
}

func TestOrderHandler_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		getFn: func(context.Context, int64) (*domain.Order, error) {
			return nil, apperr.ErrNotFound
		},
	}

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/orders/5", nil), "id", "5")
	rr := httptest.NewRecorder()

	NewOrderHandler(logx.Nop(), uc).GetByID(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestOrderHandler_GetByID_BadID(t *testing.T) {
	t.Parallel()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/orders/abc", nil), "id", "abc")
	rr := httptest.NewRecorder()

	NewOrderHandler(logx.Nop(), &stubOrderUsecase{}).GetByID(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOrderHandler_List_StatusFilter(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		listFn: func(_ context.Context, status *domain.OrderStatus, _, _ *int) ([]domain.Order, error) {
			require.NotNil(t, status)
			require.Equal(t, domain.StatusReady, *status)
			return []domain.Order{{ID: 1, Status: domain.StatusReady}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/orders?status=ready", nil)
	rr := httptest.NewRecorder()

	NewOrderHandler(logx.Nop(), uc).List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestOrderHandler_List_InvalidStatus(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/orders?status=shipped", nil)
	rr := httptest.NewRecorder()

	NewOrderHandler(logx.Nop(), &stubOrderUsecase{}).List(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOrderHandler_Create_OK(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		createFn: func(_ context.Context, o *domain.Order) (int64, error) {
			require.Equal(t, int64(100), o.CustomerID)
			return 11, nil
		},
	}

	body := `{"customer_id":100,"dropoff":{"lat":19.43,"lng":-99.13}}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rr := httptest.NewRecorder()

	NewOrderHandler(logx.Nop(), uc).Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/orders/11", rr.Header().Get("Location"))
	assert.JSONEq(t, `{"id":11}`, rr.Body.String())
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		uc := &stubOrderUsecase{
			updateFn: func(_ context.Context, id int64, status domain.OrderStatus) error {
				require.Equal(t, domain.StatusCancelled, status)
				return nil
			},
		}

		req := withURLParam(httptest.NewRequest(http.MethodPatch, "/orders/5/status", strings.NewReader(`{"status":"cancelled"}`)), "id", "5")
		rr := httptest.NewRecorder()

		NewOrderHandler(logx.Nop(), uc).UpdateStatus(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("invalid status", func(t *testing.T) {
		uc := &stubOrderUsecase{
			updateFn: func(context.Context, int64, domain.OrderStatus) error {
				return apperr.ErrInvalid
			},
		}

		req := withURLParam(httptest.NewRequest(http.MethodPatch, "/orders/5/status", strings.NewReader(`{"status":"shipped"}`)), "id", "5")
		rr := httptest.NewRecorder()

		NewOrderHandler(logx.Nop(), uc).UpdateStatus(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
