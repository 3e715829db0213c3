package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mjperez2704/deli-back-office/internal/http/handlers"
	mw "github.com/mjperez2704/deli-back-office/internal/http/middleware"
	"github.com/mjperez2704/deli-back-office/internal/logx"
)

// Deps are the handlers and middleware the router wires together.
type Deps struct {
	Logger    logx.Logger
	Base      *handlers.Handlers
	Dispatch  *handlers.DispatchHandler
	Orders    *handlers.OrderHandler
	Drivers   *handlers.DriverHandler
	ETA       *handlers.ETAHandler
	RateLimit func(http.Handler) http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Observability(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/dispatch", func(r chi.Router) {
		r.Get("/eta", d.ETA.Estimate)
		r.Get("/scheduler/status", d.Dispatch.SchedulerStatus)

		// mutating dispatch endpoints sit behind the rate limiter
		r.Group(func(r chi.Router) {
			if d.RateLimit != nil {
				r.Use(d.RateLimit)
			}
			r.Post("/assign", d.Dispatch.Assign)
			r.Post("/assign-pending", d.Dispatch.AssignPending)
			r.Post("/reassign", d.Dispatch.Reassign)
			r.Post("/scheduler/start", d.Dispatch.SchedulerStart)
			r.Post("/scheduler/stop", d.Dispatch.SchedulerStop)
		})
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", d.Orders.Create)
		r.Get("/", d.Orders.List)
		r.Get("/{id}", d.Orders.GetByID)
		r.Patch("/{id}/status", d.Orders.UpdateStatus)
	})

	r.Route("/drivers", func(r chi.Router) {
		r.Post("/", d.Drivers.Create)
		r.Get("/", d.Drivers.List)
		r.Get("/nearby", d.Drivers.Nearby)
		r.Get("/{id}", d.Drivers.GetByID)
		r.Patch("/{id}", d.Drivers.Update)
		r.Post("/{id}/location", d.Drivers.ReportLocation)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
