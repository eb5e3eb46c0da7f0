package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"service-rider-platform/internal/config"
	ordersgw "service-rider-platform/internal/gateway/orders"
	"service-rider-platform/internal/http/handlers"
	"service-rider-platform/internal/idempotency"
	"service-rider-platform/internal/logx"
)

func testConfig() *config.Config {
	return &config.Config{
		Port: 8080,
		Orders: config.Orders{
			Transport:   config.TransportGraphQL,
			GraphQLURL:  "http://127.0.0.1:1/graphql",
			GRPCAddr:    "127.0.0.1:1",
			Timeout:     time.Second,
			MaxAttempts: 1,
		},
		Delivery: config.Delivery{
			PollInterval:      time.Second,
			TransitionTimeout: time.Second,
		},
		JWTSecret: "secret",
		Log:       config.Log{Backend: "slog", Level: "info"},
	}
}

func setupHTTPContainer(t *testing.T, cfg *config.Config) *dig.Container {
	t.Helper()

	c := dig.New()
	require.NoError(t, c.Provide(func() *config.Config { return cfg }))
	require.NoError(t, c.Provide(logx.Nop))
	require.NoError(t, c.Provide(func() prometheus.Registerer { return prometheus.NewRegistry() }))
	require.NoError(t, c.Provide(func() *pgxpool.Pool { return &pgxpool.Pool{} }))

	require.NoError(t, registerGateway(c))
	require.NoError(t, registerDomainServices(c))
	require.NoError(t, registerHTTP(c))
	return c
}

type httpServersIn struct {
	dig.In
	Main  *http.Server
	Pprof *http.Server `name:"pprof_server" optional:"true"`
}

func TestRegisterHTTP_ProvidesServerAndHandlers(t *testing.T) {
	t.Parallel()

	c := setupHTTPContainer(t, testConfig())
	err := c.Invoke(func(
		in httpServersIn,
		base *handlers.Handlers,
		riders *handlers.RiderHandler,
		deliveries *handlers.DeliveryHandler,
		transitions *handlers.TransitionHandler,
	) {
		require.NotNil(t, in.Main)
		require.Equal(t, ":8080", in.Main.Addr)
		require.Greater(t, in.Main.ReadHeaderTimeout, time.Duration(0))
		require.Greater(t, in.Main.IdleTimeout, time.Duration(0))
		require.Zero(t, in.Main.WriteTimeout)
		require.Nil(t, in.Pprof)

		require.NotNil(t, base)
		require.NotNil(t, riders)
		require.NotNil(t, deliveries)
		require.NotNil(t, transitions)
	})
	require.NoError(t, err)
}

func TestRegisterHTTP_RouterServesPing(t *testing.T) {
	t.Parallel()

	c := setupHTTPContainer(t, testConfig())
	err := c.Invoke(func(mux http.Handler) {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		rr = httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/deliveries/new", nil))
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
	require.NoError(t, err)
}

func TestRegisterHTTP_PprofEnabled(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Pprof = config.PprofConfig{Enabled: true, Addr: "127.0.0.1:6060"}

	c := setupHTTPContainer(t, cfg)
	err := c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Pprof)
		require.Equal(t, "127.0.0.1:6060", in.Pprof.Addr)
	})
	require.NoError(t, err)
}

func TestRegisterDomainServices_IdempotencyStore(t *testing.T) {
	t.Parallel()

	t.Run("disabled without redis", func(t *testing.T) {
		c := setupHTTPContainer(t, testConfig())
		require.NoError(t, c.Invoke(func(s *idempotency.Store, cl closersIn) {
			require.Nil(t, s)
			require.Len(t, cl.Closers, 2)
		}))
	})

	t.Run("enabled with redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := testConfig()
		cfg.Redis = config.Redis{Addr: mr.Addr(), IdempotencyTTL: time.Minute}

		c := setupHTTPContainer(t, cfg)
		require.NoError(t, c.Invoke(func(s *idempotency.Store, cl closersIn) {
			require.NotNil(t, s)
			require.NoError(t, s.Ping(context.Background()))
			for _, cc := range cl.Closers {
				require.NoError(t, cc.close())
			}
		}))
	})
}

func TestNewOrdersGateway(t *testing.T) {
	t.Parallel()

	newIn := func(cfg *config.Config) gatewayIn {
		return gatewayIn{Config: cfg, Logger: logx.Nop(), Registry: prometheus.NewRegistry()}
	}

	t.Run("graphql", func(t *testing.T) {
		out, err := newOrdersGateway(newIn(testConfig()))
		require.NoError(t, err)
		require.NotNil(t, out.Gateway)
		require.NoError(t, out.Closer.close())
	})

	t.Run("grpc", func(t *testing.T) {
		cfg := testConfig()
		cfg.Orders.Transport = config.TransportGRPC
		out, err := newOrdersGateway(newIn(cfg))
		require.NoError(t, err)
		require.NotNil(t, out.Gateway)
		require.Equal(t, "orders gateway", out.Closer.name)
		require.NoError(t, out.Closer.close())
	})

	t.Run("graphql without url", func(t *testing.T) {
		cfg := testConfig()
		cfg.Orders.GraphQLURL = ""
		_, err := newOrdersGateway(newIn(cfg))
		require.Error(t, err)
	})

	t.Run("retries counter is registered once per registry", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		in := gatewayIn{Config: testConfig(), Logger: logx.Nop(), Registry: reg}
		_, err := newOrdersGateway(in)
		require.NoError(t, err)
		_, err = newOrdersGateway(in)
		require.NoError(t, err)
	})
}

func TestMustBuild_WiresServiceGraph(t *testing.T) {
	t.Parallel()

	var fatal string
	b := NewContainerBuilder().
		WithConfig(testConfig()).
		WithDBConnect(func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error) {
			return &pgxpool.Pool{}, nil
		}).
		WithLogFatalf(func(format string, _ ...interface{}) { fatal = format })

	c := b.MustBuild(context.Background())
	require.NotNil(t, c)
	require.Empty(t, fatal)

	require.NoError(t, c.Invoke(func(gw *ordersgw.RetryingGateway, mux http.Handler) {
		require.NotNil(t, gw)
		require.NotNil(t, mux)
	}))
}

func TestBuildWorker_ConsumerNilWithoutBrokers(t *testing.T) {
	t.Parallel()

	c := NewContainerBuilder().WithConfig(testConfig()).MustBuildWorker(context.Background())
	err := runWorker(c)
	require.Error(t, err)
	require.Contains(t, err.Error(), "KAFKA_BROKERS")
}
