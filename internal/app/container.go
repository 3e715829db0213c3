package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/mjperez2704/deli-back-office/internal/config"
	"github.com/mjperez2704/deli-back-office/internal/domain"
	"github.com/mjperez2704/deli-back-office/internal/gateway/routes"
	"github.com/mjperez2704/deli-back-office/internal/http/handlers"
	"github.com/mjperez2704/deli-back-office/internal/http/middleware/ratelimit"
	"github.com/mjperez2704/deli-back-office/internal/http/router"
	"github.com/mjperez2704/deli-back-office/internal/logx"
	"github.com/mjperez2704/deli-back-office/internal/notify"
	"github.com/mjperez2704/deli-back-office/internal/repository"
	"github.com/mjperez2704/deli-back-office/internal/service/dispatch"
	"github.com/mjperez2704/deli-back-office/internal/service/drivers"
	"github.com/mjperez2704/deli-back-office/internal/service/eta"
	"github.com/mjperez2704/deli-back-office/internal/service/orders"
)

// autoAssignInterval is the scheduler interval used when a start request
// carries no explicit one.
type autoAssignInterval time.Duration

// notifierCloser releases the notification broker connection, if any.
type notifierCloser func()

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the container for the kafka worker process.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	b := NewContainerBuilder()
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		func(cfg *config.Config) autoAssignInterval {
			return autoAssignInterval(cfg.Dispatch.AutoAssignInterval)
		},
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewOrderRepo,
		repository.NewDriverRepo,
		newLocationIndex,
		newNotifier,
		newDispatchMetrics,
		newSchedulerMetrics,
		newCounters,
		newRouteGateway,
		newEngine,
		newScheduler,
		newOrderService,
		newDriverService,
		newETAService,
	)
}

func newLocationIndex(cfg *config.Config) *repository.LocationIndex {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return repository.NewLocationIndex(redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr}))
}

func newNotifier(cfg *config.Config, logger logx.Logger) (dispatch.Notifier, notifierCloser, error) {
	if cfg.Rabbit.URL == "" {
		return notify.NopNotifier{}, func() {}, nil
	}
	pub, err := notify.Dial(cfg.Rabbit.URL, cfg.Rabbit.Exchange, logger)
	if err != nil {
		return nil, nil, err
	}
	return pub, pub.Close, nil
}

func newEngine(
	ordersRepo *repository.OrderRepo,
	driversRepo *repository.DriverRepo,
	notifier dispatch.Notifier,
	cfg *config.Config,
	m dispatch.Metrics,
	logger logx.Logger,
) *dispatch.Engine {
	return dispatch.NewEngine(ordersRepo, driversRepo, notifier, dispatch.Config{
		OperationTimeout: cfg.Dispatch.OperationTimeout,
		InterAssignDelay: cfg.Dispatch.InterAssignDelay,
	}, m, logger)
}

func newScheduler(
	engine *dispatch.Engine,
	cfg *config.Config,
	m dispatch.SchedulerMetrics,
	logger logx.Logger,
) *dispatch.Scheduler {
	return dispatch.NewScheduler(engine, domain.AssignmentCriteria{
		MaxDistanceKm: cfg.Dispatch.MaxDistanceKm,
		MinRating:     cfg.Dispatch.MinRating,
	}, m, logger)
}

func newOrderService(repo *repository.OrderRepo, cfg *config.Config) *orders.Service {
	return orders.NewService(repo, cfg.Dispatch.OperationTimeout)
}

func newDriverService(
	repo *repository.DriverRepo,
	index *repository.LocationIndex,
	logger logx.Logger,
	cfg *config.Config,
) *drivers.Service {
	if index == nil {
		return drivers.NewService(repo, nil, logger, cfg.Dispatch.OperationTimeout)
	}
	return drivers.NewService(repo, index, logger, cfg.Dispatch.OperationTimeout)
}

func newETAService(
	ordersRepo *repository.OrderRepo,
	driversRepo *repository.DriverRepo,
	gw *routes.RetryingGateway,
	cfg *config.Config,
) *eta.Service {
	if gw == nil {
		return eta.NewService(ordersRepo, driversRepo, nil, cfg.Dispatch.OperationTimeout)
	}
	return eta.NewService(ordersRepo, driversRepo, gw, cfg.Dispatch.OperationTimeout)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		func(i autoAssignInterval) time.Duration { return time.Duration(i) },
		handlers.New,
		handlers.NewDispatchUsecase,
		handlers.NewSchedulerUsecase,
		handlers.NewDispatchHandler,
		handlers.NewOrderUsecase,
		handlers.NewOrderHandler,
		handlers.NewDriverUsecase,
		handlers.NewDriverHandler,
		handlers.NewETAUsecase,
		handlers.NewETAHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		serverProvider,
	)
}

func newRouter(
	logger logx.Logger,
	base *handlers.Handlers,
	dispatchHandler *handlers.DispatchHandler,
	orderHandler *handlers.OrderHandler,
	driverHandler *handlers.DriverHandler,
	etaHandler *handlers.ETAHandler,
	rl *ratelimit.Middleware,
) http.Handler {
	return router.New(router.Deps{
		Logger:    logger,
		Base:      base,
		Dispatch:  dispatchHandler,
		Orders:    orderHandler,
		Drivers:   driverHandler,
		ETA:       etaHandler,
		RateLimit: rl.Handler(),
	})
}
