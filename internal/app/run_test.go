package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"service-rider-platform/internal/logx"
	"service-rider-platform/internal/telemetry"
	testlog "service-rider-platform/internal/testutil"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

type closersOut struct {
	dig.Out
	Closer namedCloser `group:"closers"`
}

func TestRun_ShutsDownAndClosesResources(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := testlog.New()

	var traced, closed atomic.Int32
	addr := freeAddr(t)

	c := dig.New()
	require.NoError(t, c.Provide(func() context.Context { return ctx }))
	require.NoError(t, c.Provide(func() logx.Logger { return rec.Logger() }))
	require.NoError(t, c.Provide(func() *http.Server {
		return &http.Server{Addr: addr, Handler: http.NewServeMux(), ReadHeaderTimeout: time.Second}
	}))
	require.NoError(t, c.Provide(func() *pgxpool.Pool { return nil }))
	require.NoError(t, c.Provide(func() telemetry.ShutdownFunc {
		return func(context.Context) error { traced.Add(1); return nil }
	}))
	require.NoError(t, c.Provide(func() closersOut {
		return closersOut{Closer: namedCloser{name: "redis", close: func() error {
			closed.Add(1)
			return errors.New("already closed")
		}}}
	}))

	done := make(chan error, 1)
	go func() { done <- run(c) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}

	require.Equal(t, int32(1), traced.Load())
	require.Equal(t, int32(1), closed.Load())

	e, ok := rec.Find("close error")
	require.True(t, ok)
	res, _ := e.Field("resource")
	require.Equal(t, "redis", res)
	_, ok = rec.Find("shutting down service-rider")
	require.True(t, ok)
}

func TestRun_ReturnsListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	c := dig.New()
	require.NoError(t, c.Provide(func() context.Context { return context.Background() }))
	require.NoError(t, c.Provide(logx.Nop))
	require.NoError(t, c.Provide(func() *http.Server {
		return &http.Server{Addr: l.Addr().String(), ReadHeaderTimeout: time.Second}
	}))
	require.NoError(t, c.Provide(func() *pgxpool.Pool { return nil }))
	require.NoError(t, c.Provide(func() telemetry.ShutdownFunc { return nil }))

	err = run(c)
	require.Error(t, err)
}

func TestGracefulShutdown_DoesNotPanic(t *testing.T) {
	t.Parallel()

	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux(), ReadHeaderTimeout: time.Second}
	require.NotPanics(t, func() { gracefulShutdown(srv, logx.Nop(), time.Second) })
}
