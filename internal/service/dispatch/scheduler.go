package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mjperez2704/deli-back-office/internal/apperr"
	"github.com/mjperez2704/deli-back-office/internal/domain"
	"github.com/mjperez2704/deli-back-office/internal/logx"
)

// batchAssigner is the engine surface the scheduler drives.
type batchAssigner interface {
	AutoAssignPendingOrders(ctx context.Context, criteria domain.AssignmentCriteria) (domain.BatchResult, error)
}

// SchedulerMetrics holds the scheduler's Prometheus counters. Fields may be nil.
type SchedulerMetrics struct {
	Passes       prometheus.Counter
	TicksSkipped prometheus.Counter
}

// Scheduler periodically runs an assignment pass over pending orders. It is
// an ordinary injectable component: the host process constructs one and hands
// it to whatever exposes the start/stop endpoints. A tick that fires while
// the previous pass is still in flight is skipped, which bounds concurrent
// load to one pass at a time.
type Scheduler struct {
	engine   batchAssigner
	criteria domain.AssignmentCriteria
	logger   logx.Logger
	metrics  SchedulerMetrics

	mu       sync.Mutex
	running  bool
	interval time.Duration
	cancel   context.CancelFunc

	// passMu is held for the duration of one pass; TryLock implements the
	// skip-if-in-progress tick policy.
	passMu sync.Mutex
}

// NewScheduler creates a Scheduler that assigns with the given fixed criteria.
func NewScheduler(engine batchAssigner, criteria domain.AssignmentCriteria, m SchedulerMetrics, logger logx.Logger) *Scheduler {
	return &Scheduler{
		engine:   engine,
		criteria: criteria.WithDefaults(),
		logger:   logger,
		metrics:  m,
	}
}

// Start arms the periodic timer and fires one pass immediately. Calling Start
// while already running is a logged no-op; the original timer keeps its
// interval.
func (s *Scheduler) Start(interval time.Duration) error {
	if interval <= 0 {
		return apperr.ErrInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.logger.Info("auto-assign scheduler already running",
			logx.Duration("interval", s.interval),
		)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.interval = interval
	s.running = true

	go s.loop(ctx, interval)

	s.logger.Info("auto-assign scheduler started", logx.Duration("interval", interval))
	return nil
}

// Stop disarms the timer. A pass already in flight is not interrupted, only
// future ticks are prevented. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cancel()
	s.cancel = nil
	s.running = false
	s.interval = 0
	s.logger.Info("auto-assign scheduler stopped")
}

// IsActive reports whether the periodic timer is armed.
func (s *Scheduler) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Interval returns the configured interval, or zero when stopped.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration) {
	s.runPass(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go s.runPass(ctx)
		}
	}
}

func (s *Scheduler) runPass(ctx context.Context) {
	if !s.passMu.TryLock() {
		if s.metrics.TicksSkipped != nil {
			s.metrics.TicksSkipped.Inc()
		}
		s.logger.Debug("assignment pass skipped, previous still in flight")
		return
	}
	defer s.passMu.Unlock()

	// Detached from the loop context: Stop only prevents future ticks, it
	// never cancels a pass that already started.
	res, err := s.engine.AutoAssignPendingOrders(context.WithoutCancel(ctx), s.criteria)
	if err != nil {
		s.logger.Error("assignment pass failed", logx.Any("err", err))
		return
	}
	if s.metrics.Passes != nil {
		s.metrics.Passes.Inc()
	}
	s.logger.Info("assignment pass finished",
		logx.Int("total", res.Total),
		logx.Int("assigned", res.Assigned),
		logx.Int("failed", res.Failed),
	)
}
