package consumers

import (
	"context"
	"oroshine/internal/app/deps"
	"oroshine/internal/app/services"
	dl "oroshine/internal/core/domain/logging"
	pendingnotification "oroshine/internal/rabbitmq/consumers/pending_notification"
)

func initPendingNotificationConsumer(deps *deps.Deps, services *services.Services) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqNotificationQueue
	pendingNotificationConsumer := pendingnotification.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		services.DispatchNotification,
	)
	if err = pendingNotificationConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	shutdownPendingNotificationConsumer := initPendingNotificationConsumer(deps, services)

	return func() {
		shutdownPendingNotificationConsumer()
	}
}
