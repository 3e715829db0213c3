package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mjperez2704/deli-back-office/internal/apperr"
	"github.com/mjperez2704/deli-back-office/internal/logx"
)

// ETAHandler serves road travel estimates for order/driver pairs.
type ETAHandler struct {
	usecase etaUsecase
	logger  logx.Logger
}

// NewETAHandler creates a new ETAHandler.
func NewETAHandler(logger logx.Logger, uc etaUsecase) *ETAHandler {
	return &ETAHandler{usecase: uc, logger: logger}
}

// Estimate handles GET /dispatch/eta?order_id=&driver_id=.
func (h *ETAHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	orderID, err1 := strconv.ParseInt(r.URL.Query().Get("order_id"), 10, 64)
	driverID, err2 := strconv.ParseInt(r.URL.Query().Get("driver_id"), 10, 64)
	if err1 != nil || err2 != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "order_id and driver_id are required")
		return
	}

	est, err := h.usecase.Estimate(r.Context(), orderID, driverID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, estimateToResponse(est))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
