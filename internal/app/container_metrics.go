package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/mjperez2704/deli-back-office/internal/metrics"
	"github.com/mjperez2704/deli-back-office/internal/service/dispatch"
)

// countersOut exposes standalone counters under dig names so middleware and
// gateway providers can pick the one they need.
type countersOut struct {
	dig.Out

	RateLimitExceeded prometheus.Counter `name:"rate_limit_exceeded_total"`
	GatewayRetries    prometheus.Counter `name:"gateway_retries_total"`
}

func newCounters() countersOut {
	out := countersOut{
		RateLimitExceeded: metrics.NewRateLimitExceededTotal(),
		GatewayRetries:    metrics.NewGatewayRetriesTotal(),
	}
	registerCollectors(out.RateLimitExceeded, out.GatewayRetries)
	return out
}

func newDispatchMetrics() dispatch.Metrics {
	m := dispatch.Metrics{
		Assignments:          metrics.NewAssignmentsTotal(),
		AssignmentFailures:   metrics.NewAssignmentFailuresTotal(),
		NotificationFailures: metrics.NewNotificationFailuresTotal(),
	}
	registerCollectors(m.Assignments, m.AssignmentFailures, m.NotificationFailures)
	return m
}

func newSchedulerMetrics() dispatch.SchedulerMetrics {
	m := dispatch.SchedulerMetrics{
		Passes:       metrics.NewSchedulerPassesTotal(),
		TicksSkipped: metrics.NewSchedulerTicksSkippedTotal(),
	}
	registerCollectors(m.Passes, m.TicksSkipped)
	return m
}

// registerCollectors registers on the default registry, tolerating a collector
// that an earlier container in the same process already registered.
func registerCollectors(cs ...prometheus.Collector) {
	for _, c := range cs {
		if err := prometheus.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				panic(err)
			}
		}
	}
}
