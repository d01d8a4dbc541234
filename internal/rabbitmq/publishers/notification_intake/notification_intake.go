package notificationintake

import (
	"context"
	e "oroshine/internal/core/domain/errors"
	"oroshine/internal/core/domain/logging"
	"oroshine/internal/core/domain/outbox"
	"oroshine/internal/rabbitmq"
	"oroshine/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQ implements outbox.Intake by publishing released jobs to a durable
// queue consumed by the standalone worker binary.
type RabbitMQ struct {
	log        logging.Logger
	channel    *rabbitmq.Channel
	exchange   string
	routingKey string
}

func New(log logging.Logger, channel *rabbitmq.Channel, exchange string, routingKey string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, routingKey: routingKey}
}

func (i *RabbitMQ) Submit(ctx context.Context, job outbox.Job) error {
	body, err := schema.Encode(job)
	if err != nil {
		return err
	}
	err = i.channel.PublishWithContext(ctx, i.exchange, i.routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    job.ID.String(),
		Body:         body,
	})
	if err != nil {
		i.log.Error(
			ctx,
			"Could not publish job to RabbitMQ.",
			logging.Entry("jobID", job.ID),
			logging.Entry("err", err),
		)
		return err
	}
	i.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", i.exchange),
		logging.Entry("RK", i.routingKey),
		logging.Entry("jobID", job.ID),
	)
	return nil
}
