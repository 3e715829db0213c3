package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/mjperez2704/deli-back-office/internal/apperr"
	"github.com/mjperez2704/deli-back-office/internal/domain"
	"github.com/mjperez2704/deli-back-office/internal/logx"
)

// DispatchHandler serves the order-to-driver assignment endpoints.
type DispatchHandler struct {
	usecase         dispatchUsecase
	scheduler       schedulerUsecase
	logger          logx.Logger
	defaultInterval time.Duration
}

// NewDispatchHandler creates a new DispatchHandler. defaultInterval is used
// when a scheduler start request does not carry one.
func NewDispatchHandler(logger logx.Logger, uc dispatchUsecase, sched schedulerUsecase, defaultInterval time.Duration) *DispatchHandler {
	return &DispatchHandler{
		usecase:         uc,
		scheduler:       sched,
		logger:          logger,
		defaultInterval: defaultInterval,
	}
}

// Assign handles POST /dispatch/assign.
// @Summary Assign a driver to an order
// @Description Picks the nearest eligible online driver and assigns the order
// @Tags dispatch
// @Accept json
// @Produce json
// @Param request body assignOrderRequest true "Assign payload"
// @Success 200 {object} assignmentResultDTO
// @Failure 400 {object} errResponse "invalid input"
// @Failure 404 {object} errResponse "order not found"
// @Failure 409 {object} errResponse "no suitable driver"
// @Router /dispatch/assign [post]
func (h *DispatchHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.OrderID <= 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order_id")
		return
	}

	res, err := h.usecase.AutoAssignOrder(r.Context(), req.OrderID, req.Criteria.toModel())
	h.writeAssignment(w, r, res, err)
}

// AssignPending handles POST /dispatch/assign-pending. The batch endpoint
// always answers 200 with the summary; per-order failures live inside it.
func (h *DispatchHandler) AssignPending(w http.ResponseWriter, r *http.Request) {
	var req assignPendingRequest
	if ok := decodeJSONOptional(h.logger, w, r, &req); !ok {
		return
	}

	batch, err := h.usecase.AutoAssignPendingOrders(r.Context(), req.Criteria.toModel())
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, batchToResponse(batch))
}

// Reassign handles POST /dispatch/reassign.
// @Summary Reassign an order away from a failed driver
// @Tags dispatch
// @Accept json
// @Produce json
// @Param request body reassignOrderRequest true "Reassign payload"
// @Success 200 {object} assignmentResultDTO
// @Failure 400 {object} errResponse "invalid input"
// @Failure 404 {object} errResponse "order not found"
// @Failure 409 {object} errResponse "no alternative drivers"
// @Router /dispatch/reassign [post]
func (h *DispatchHandler) Reassign(w http.ResponseWriter, r *http.Request) {
	var req reassignOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.OrderID <= 0 || req.ExcludeDriverID <= 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order_id or exclude_driver_id")
		return
	}

	res, err := h.usecase.ReassignOrder(r.Context(), req.OrderID, req.ExcludeDriverID, req.Criteria.toModel())
	h.writeAssignment(w, r, res, err)
}

func (h *DispatchHandler) writeAssignment(w http.ResponseWriter, r *http.Request, res domain.AssignmentResult, err error) {
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, resultToResponse(res))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrOrderNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, apperr.ErrOrderState):
		writeError(h.logger, w, r, http.StatusConflict, apperr.Reason(err))
	case apperr.Operational(err):
		writeError(h.logger, w, r, http.StatusConflict, apperr.Reason(err))
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// SchedulerStart handles POST /dispatch/scheduler/start.
func (h *DispatchHandler) SchedulerStart(w http.ResponseWriter, r *http.Request) {
	var req schedulerStartRequest
	if ok := decodeJSONOptional(h.logger, w, r, &req); !ok {
		return
	}
	if req.IntervalSeconds < 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid interval_seconds")
		return
	}

	interval := h.defaultInterval
	if req.IntervalSeconds > 0 {
		interval = time.Duration(req.IntervalSeconds) * time.Second
	}

	if err := h.scheduler.Start(interval); err != nil {
		if errors.Is(err, apperr.ErrInvalid) {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid interval")
			return
		}
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	h.writeSchedulerStatus(w, r)
}

// SchedulerStop handles POST /dispatch/scheduler/stop.
func (h *DispatchHandler) SchedulerStop(w http.ResponseWriter, r *http.Request) {
	h.scheduler.Stop()
	h.writeSchedulerStatus(w, r)
}

// SchedulerStatus handles GET /dispatch/scheduler/status.
func (h *DispatchHandler) SchedulerStatus(w http.ResponseWriter, r *http.Request) {
	h.writeSchedulerStatus(w, r)
}

func (h *DispatchHandler) writeSchedulerStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, schedulerStatusResponse{
		Active:          h.scheduler.IsActive(),
		IntervalSeconds: int(h.scheduler.Interval() / time.Second),
	})
}
