package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/dig"

	"service-rider-platform/internal/logx"
	"service-rider-platform/internal/telemetry"
	"service-rider-platform/internal/transport/kafka"
)

// WorkerRunner runs the orders event worker.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes order events until the container context is done.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

type workerIn struct {
	dig.In
	Ctx      context.Context
	Logger   logx.Logger
	Consumer *kafka.Consumer
	Tracing  telemetry.ShutdownFunc
	Closers  []namedCloser `group:"closers"`
}

func runWorker(container *dig.Container) error {
	return container.Invoke(func(in workerIn) error {
		return workerRun(in.Ctx, in.Logger, in.Consumer, in.Tracing, in.Closers)
	})
}

func workerRun(
	ctx context.Context,
	logger logx.Logger,
	consumer *kafka.Consumer,
	tracing telemetry.ShutdownFunc,
	closers []namedCloser,
) error {
	if consumer == nil {
		return fmt.Errorf("kafka consumer is nil: set KAFKA_BROKERS to run the worker")
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
		closeResources(logger, nil, tracing, closers)
	}()

	logger.Info("service-rider-worker started")
	return consumer.Run(ctx)
}
