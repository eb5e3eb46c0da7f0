package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-rider-platform/internal/config"
	"service-rider-platform/internal/domain"
	ordersgw "service-rider-platform/internal/gateway/orders"
	"service-rider-platform/internal/http/handlers"
	"service-rider-platform/internal/http/middleware/ratelimit"
	"service-rider-platform/internal/http/pprofserver"
	"service-rider-platform/internal/http/router"
	"service-rider-platform/internal/idempotency"
	"service-rider-platform/internal/logx"
	"service-rider-platform/internal/metrics"
	ordersproto "service-rider-platform/internal/proto"
	"service-rider-platform/internal/repository"
	"service-rider-platform/internal/service/feed"
	"service-rider-platform/internal/service/rider"
	"service-rider-platform/internal/service/transition"
	"service-rider-platform/internal/telemetry"
)

const (
	dbConnectRetries = 10
	dbConnectDelay   = time.Second
	riderCallTimeout = 3 * time.Second
)

type dbConnectFunc func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect  dbConnectFunc
	loadConfig func() (*config.Config, error)
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect:  connectDbWithRetry,
		loadConfig: config.Load,
		logFatalf:  log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithConfig replaces config loading with a fixed config.
func (b *ContainerBuilder) WithConfig(cfg *config.Config) *ContainerBuilder {
	if cfg != nil {
		b.loadConfig = func() (*config.Config, error) { return cfg, nil }
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

// MustBuild builds the HTTP service container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the Kafka worker container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDB(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerGateway(container); err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerGateway(container); err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the HTTP service container with defaults.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the worker container with defaults.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

// namedCloser is a resource released on shutdown.
type namedCloser struct {
	name  string
	close func() error
}

type closersIn struct {
	dig.In
	Closers []namedCloser `group:"closers"`
}

func registerCore(container *dig.Container, ctx context.Context, load func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		load,
		NewLogger,
		func() prometheus.Registerer { return prometheus.DefaultRegisterer },
		func(ctx context.Context, cfg *config.Config) (telemetry.ShutdownFunc, error) {
			return telemetry.SetupTracer(ctx, cfg.Telemetry)
		},
	)
}

func registerDB(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, logger, cfg.DB.DSN(), dbConnectRetries, dbConnectDelay)
		if err != nil {
			return nil, err
		}
		if cfg.Migrations {
			changed, err := repository.Migrate(cfg.DB.DSN())
			if err != nil {
				pool.Close()
				return nil, err
			}
			logger.Info("migrations applied", logx.Bool("changed", changed))
		}
		return pool, nil
	}
	return provideAll(container, providerDB)
}

type ordersBackend interface {
	GetByID(context.Context, string) (*domain.Order, error)
	List(context.Context, ordersgw.ListFilter) ([]domain.Order, error)
	UpdateItemStatus(context.Context, domain.ItemStatusUpdate) (string, error)
}

type gatewayIn struct {
	dig.In
	Config   *config.Config
	Logger   logx.Logger
	Registry prometheus.Registerer
}

type gatewayOut struct {
	dig.Out
	Gateway *ordersgw.RetryingGateway
	Closer  namedCloser `group:"closers"`
}

func registerGateway(container *dig.Container) error {
	return provideAll(container, newOrdersGateway)
}

func newOrdersGateway(in gatewayIn) (gatewayOut, error) {
	cfg := in.Config.Orders

	var (
		next   ordersBackend
		closer = func() error { return nil }
	)
	switch cfg.Transport {
	case config.TransportGRPC:
		cc, err := ordersgw.DialGRPC(cfg.GRPCAddr)
		if err != nil {
			return gatewayOut{}, err
		}
		next = ordersgw.NewGRPCGateway(ordersproto.NewOrdersServiceClient(cc))
		closer = cc.Close
	default:
		gql := ordersgw.NewGraphQLGateway(cfg.GraphQLURL, cfg.APIToken, &http.Client{Timeout: cfg.Timeout}, in.Logger)
		if gql == nil {
			return gatewayOut{}, fmt.Errorf("orders gateway: graphql url is empty")
		}
		next = gql
	}

	retries := metrics.NewGatewayRetriesTotal()
	if err := registerCollector(in.Registry, retries); err != nil {
		_ = closer()
		return gatewayOut{}, err
	}

	gw := ordersgw.NewRetryingGateway(next, in.Logger, retries, ordersgw.RetryConfig{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.BaseDelay,
		MaxDelay:    cfg.MaxDelay,
	})
	in.Logger.Info("orders gateway ready",
		logx.String("transport", cfg.Transport),
		logx.Int("max_attempts", cfg.MaxAttempts),
	)
	return gatewayOut{Gateway: gw, Closer: namedCloser{name: "orders gateway", close: closer}}, nil
}

type storeOut struct {
	dig.Out
	Store  *idempotency.Store
	Closer namedCloser `group:"closers"`
}

func newIdempotencyStore(cfg *config.Config, logger logx.Logger) storeOut {
	client := idempotency.NewClient(cfg.Redis.Addr)
	if client == nil {
		logger.Warn("REDIS_ADDR is empty, idempotent replay disabled")
		return storeOut{Closer: namedCloser{name: "redis", close: func() error { return nil }}}
	}
	return storeOut{
		Store:  idempotency.NewStore(client, cfg.Redis.IdempotencyTTL),
		Closer: namedCloser{name: "redis", close: client.Close},
	}
}

func newTransitionsCounter(reg prometheus.Registerer) (*metrics.Transitions, error) {
	c := metrics.NewTransitionsTotal()
	if err := registerCollector(reg, c.Collector()); err != nil {
		return nil, err
	}
	return c, nil
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewRiderRepo,
		repository.NewTransitionRepo,
		func(repo *repository.RiderRepo) *rider.Service {
			return rider.NewService(repo, riderCallTimeout)
		},
		func(gw *ordersgw.RetryingGateway) *feed.Service {
			return feed.NewService(gw)
		},
		newTransitionsCounter,
		func(
			cfg *config.Config,
			logger logx.Logger,
			gw *ordersgw.RetryingGateway,
			riders *rider.Service,
			audit *repository.TransitionRepo,
			counter *metrics.Transitions,
		) *transition.Service {
			return transition.NewService(gw, riders, audit, logger, cfg.Delivery.TransitionTimeout,
				transition.WithCounter(counter))
		},
		newIdempotencyStore,
	)
}

type pprofOut struct {
	dig.Out
	Server *http.Server `name:"pprof_server"`
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		// no WriteTimeout: /deliveries/stream is long-lived, other routes are bounded by the router
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		func(logger logx.Logger, uc *rider.Service) *handlers.RiderHandler {
			return handlers.NewRiderHandler(logger, uc)
		},
		func(cfg *config.Config, logger logx.Logger, uc *feed.Service) *handlers.DeliveryHandler {
			return handlers.NewDeliveryHandler(logger, uc, cfg.Delivery.PollInterval)
		},
		func(logger logx.Logger, uc *transition.Service, store *idempotency.Store) *handlers.TransitionHandler {
			return handlers.NewTransitionHandler(logger, uc, store)
		},
		newRateLimitClock,
		newRateLimiter,
		newRateLimitCounter,
		newRateLimitMiddleware,
		newRouter,
		serverProvider,
		func(cfg *config.Config) pprofOut {
			return pprofOut{Server: pprofserver.New(cfg.Pprof)}
		},
	)
}

type routerIn struct {
	dig.In
	Config      *config.Config
	Logger      logx.Logger
	Base        *handlers.Handlers
	Riders      *handlers.RiderHandler
	Deliveries  *handlers.DeliveryHandler
	Transitions *handlers.TransitionHandler
	RateLimit   *ratelimit.Middleware
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Logger:      in.Logger,
		Base:        in.Base,
		Riders:      in.Riders,
		Deliveries:  in.Deliveries,
		Transitions: in.Transitions,
		RateLimit:   in.RateLimit,
		JWTSecret:   in.Config.JWTSecret,
	})
}
