// Command worker turns order events into delivery offers for riders.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"service-rider-platform/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	builder := app.NewContainerBuilder()
	app.NewWorkerRunner().MustRun(builder.MustBuildWorker(ctx))
}
