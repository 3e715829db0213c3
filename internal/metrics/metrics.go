package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewAssignmentsTotal returns a Prometheus counter for successfully assigned orders
func NewAssignmentsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_assignments_total",
		Help: "Total number of orders successfully assigned to a driver",
	})
}

// NewAssignmentFailuresTotal returns a Prometheus counter vector for failed assignment attempts by reason
func NewAssignmentFailuresTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_assignment_failures_total",
		Help: "Total number of failed assignment attempts, labelled by failure reason",
	}, []string{"reason"})
}

// NewSchedulerPassesTotal returns a Prometheus counter for completed scheduler passes
func NewSchedulerPassesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_scheduler_passes_total",
		Help: "Total number of completed automatic assignment passes",
	})
}

// NewSchedulerTicksSkippedTotal returns a Prometheus counter for scheduler ticks skipped because a pass was still running
func NewSchedulerTicksSkippedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_scheduler_ticks_skipped_total",
		Help: "Total number of scheduler ticks skipped because the previous pass was still in flight",
	})
}

// NewNotificationFailuresTotal returns a Prometheus counter for swallowed notification delivery failures
func NewNotificationFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_notification_failures_total",
		Help: "Total number of notification publishes that failed and were dropped",
	})
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}
