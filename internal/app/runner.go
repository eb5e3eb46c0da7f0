package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-rider-platform/internal/logx"
	"service-rider-platform/internal/telemetry"
)

const shutdownTimeout = 15 * time.Second

// MustRun starts the HTTP server using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type serviceIn struct {
	dig.In
	Ctx     context.Context
	Logger  logx.Logger
	Server  *http.Server
	Pprof   *http.Server `name:"pprof_server" optional:"true"`
	Pool    *pgxpool.Pool
	Tracing telemetry.ShutdownFunc
	Closers []namedCloser `group:"closers"`
}

func run(container *dig.Container) error {
	return container.Invoke(func(in serviceIn) error {
		errCh := make(chan error, 2)
		startServer(in.Server, in.Logger, "service-rider", errCh)
		if in.Pprof != nil {
			startServer(in.Pprof, in.Logger, "pprof", errCh)
		}

		var runErr error
		select {
		case <-in.Ctx.Done():
			in.Logger.Info("shutting down service-rider")
		case runErr = <-errCh:
			in.Logger.Error("server stopped unexpectedly", logx.Err(runErr))
		}

		gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
		if in.Pprof != nil {
			gracefulShutdown(in.Pprof, in.Logger, shutdownTimeout)
		}
		closeResources(in.Logger, in.Pool, in.Tracing, in.Closers)
		return runErr
	})
}

func startServer(server *http.Server, logger logx.Logger, name string, errCh chan<- error) {
	go func() {
		logger.Info("listening", logx.String("server", name), logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.String("addr", srv.Addr), logx.Err(err))
	}
}

func closeResources(logger logx.Logger, pool *pgxpool.Pool, tracing telemetry.ShutdownFunc, closers []namedCloser) {
	for _, c := range closers {
		if c.close == nil {
			continue
		}
		if err := c.close(); err != nil {
			logger.Error("close error", logx.String("resource", c.name), logx.Err(err))
		}
	}
	if tracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing(ctx); err != nil {
			logger.Error("tracer shutdown error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
	_ = logger.Sync()
}
