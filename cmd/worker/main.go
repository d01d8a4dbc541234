package main

import (
	"context"
	"os"
	"os/signal"
	"oroshine/internal/app/consumers"
	"oroshine/internal/app/deps"
	"oroshine/internal/app/services"
	"syscall"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	if deps.Rabbitmq == nil {
		panic("RABBITMQ_URL must be set for the worker binary")
	}

	services := services.InitServices(deps)

	shutdownConsumers := consumers.InitConsumers(deps, services)
	defer shutdownConsumers()

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(context.Background(), "Dispatch worker has started.")
	<-stopCh
	log.Info(context.Background(), "Stopping dispatch worker.")
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
