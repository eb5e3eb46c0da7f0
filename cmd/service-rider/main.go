package main

import (
	"context"
	"os/signal"
	"syscall"

	"service-rider-platform/internal/app"
)

// @title service-rider API
// @version 1.0
// @description Rider-facing delivery feeds and status transitions over the commerce backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container := app.MustBuildContainer(ctx)
	app.MustRun(container)
}
