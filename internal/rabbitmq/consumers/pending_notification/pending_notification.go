package pendingnotification

import (
	"context"
	e "oroshine/internal/core/domain/errors"
	"oroshine/internal/core/domain/logging"
	"oroshine/internal/core/services"
	dispatchnotification "oroshine/internal/core/services/dispatch_notification"
	"oroshine/internal/rabbitmq"
	"oroshine/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// Consumer feeds released jobs from the queue into the dispatch service. The
// service performs its own bounded retries, so deliveries are acked either
// way once it returns.
type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	service services.Service[dispatchnotification.Input, dispatchnotification.Result]
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	service services.Service[dispatchnotification.Input, dispatchnotification.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic(e.NewInvalidStateError("queue name must not be empty"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Consumer{log: log, channel: channel, queue: queue, service: service}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			job, err := schema.Decode(delivery.Body)
			if err != nil {
				c.log.Error(
					context.Background(),
					"Could not decode job, dropping delivery.",
					logging.Entry("err", err),
					logging.Entry("messageID", delivery.MessageId),
				)
				c.ack(delivery)
				continue
			}

			_, err = c.service.Run(context.Background(), dispatchnotification.Input{Job: job})
			if err != nil {
				c.log.Error(
					context.Background(),
					"Dispatch service returned an error.",
					logging.Entry("jobID", job.ID),
					logging.Entry("err", err),
				)
			}
			c.ack(delivery)
		}
	}()
	return nil
}

func (c *Consumer) ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
