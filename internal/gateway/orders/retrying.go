package orders

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"service-rider-platform/internal/domain"
	"service-rider-platform/internal/logx"
)

type gateway interface {
	GetByID(context.Context, string) (*domain.Order, error)
	List(context.Context, ListFilter) ([]domain.Order, error)
	UpdateItemStatus(context.Context, domain.ItemStatusUpdate) (string, error)
}

type counter interface {
	Inc()
}

// RetryConfig описывает поведение RetryingGateway
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway retries transient failures of the wrapped gateway.
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(time.Duration)
}

// NewRetryingGateway конструктор который проверяет, что next не nil и возвращает RetryingGateway
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg, sleep: time.Sleep}
}

// GetByID retries reads on transient failures.
func (g *RetryingGateway) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return retry(ctx, g, "GetByID", isRetryable, func(ctx context.Context) (*domain.Order, error) {
		return g.next.GetByID(ctx, id)
	})
}

// List retries reads on transient failures.
func (g *RetryingGateway) List(ctx context.Context, f ListFilter) ([]domain.Order, error) {
	return retry(ctx, g, "List", isRetryable, func(ctx context.Context) ([]domain.Order, error) {
		return g.next.List(ctx, f)
	})
}

// UpdateItemStatus retries only failures where the request was not processed.
func (g *RetryingGateway) UpdateItemStatus(ctx context.Context, u domain.ItemStatusUpdate) (string, error) {
	return retry(ctx, g, "UpdateItemStatus", isRetryableWrite, func(ctx context.Context) (string, error) {
		return g.next.UpdateItemStatus(ctx, u)
	})
}

func retry[T any](
	ctx context.Context,
	g *RetryingGateway,
	method string,
	retryable func(error) bool,
	call func(context.Context) (T, error),
) (T, error) {
	var zero T
	var lastErr error
	// цикл по повторам
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		res, err := call(ctx)
		if err == nil {
			return res, nil
		}
		lastErr = err
		// проверяем условия повтора
		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !retryable(err) {
			break
		}
		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("orders gateway retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, g.sleep, delay) {
			break
		}
	}
	return zero, lastErr
}

// isRetryable определяет, является ли ошибка повторяемой
func isRetryable(err error) bool {
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	switch st.Code() {
	case codes.ResourceExhausted,
		codes.Unavailable,
		codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}

// DeadlineExceeded is excluded for writes: the server may have applied the change.
func isRetryableWrite(err error) bool {
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	return st.Code() == codes.Unavailable || st.Code() == codes.ResourceExhausted
}

// backoff вычисляет задержку повтора
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, sleep func(time.Duration), d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	done := make(chan struct{})
	go func() {
		sleep(d)
		close(done)
	}()
	select {
	case <-ctx.Done():
		return false
	case <-done:
		return true
	}
}
