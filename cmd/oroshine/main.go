package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"oroshine/internal/app"
	"oroshine/internal/app/deps"
	"oroshine/internal/app/services"
	"oroshine/internal/worker"
	"syscall"
	"time"

	dl "oroshine/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	workerPool := initEmbeddedWorkerPool(deps, services)

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdown(context.Background(), httpServer, workerPool, deps, shutdownDeps)
}

// initEmbeddedWorkerPool starts dispatch workers in-process when no broker is
// configured. With RabbitMQ the worker binary consumes the queue instead.
func initEmbeddedWorkerPool(deps *deps.Deps, services *services.Services) *worker.Pool {
	if deps.ChannelIntake == nil {
		return nil
	}
	workerPool := worker.NewPool(
		deps.Logger,
		deps.ChannelIntake.Jobs(),
		services.DispatchNotification,
		deps.Config.DispatchWorkerCount,
	)
	workerPool.Start()
	deps.Logger.Info(
		context.Background(),
		"Embedded dispatch worker pool has started.",
		dl.Entry("workerCount", deps.Config.DispatchWorkerCount),
	)
	return workerPool
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(
	ctx context.Context,
	server *http.Server,
	workerPool *worker.Pool,
	deps *deps.Deps,
	shutdownDeps func(),
) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	// No new jobs arrive once the HTTP server is down; close the intake and
	// let the pool drain what is buffered before tearing down dependencies.
	if workerPool != nil {
		deps.ChannelIntake.Close()
		workerPool.Stop()
		deps.Logger.Info(ctx, "Embedded dispatch worker pool has stopped.")
	}

	shutdownDeps()
	deps.Logger.Info(ctx, "HTTP server has shutdowned.")
}
