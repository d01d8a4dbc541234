package rabbitmq

import (
	"context"
	e "oroshine/internal/core/domain/errors"
	"oroshine/internal/core/domain/logging"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// redialDelay is how long to wait before reconnect attempts.
const redialDelay = 3 * time.Second

// Connection wraps amqp.Connection with automatic redial.
type Connection struct {
	*amqp.Connection
	log logging.Logger
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{Connection: conn, log: log}

	go func() {
		for {
			reason, ok := <-connection.Connection.NotifyClose(make(chan *amqp.Error))
			if !ok {
				log.Info(context.Background(), "RabbitMQ connection closed.")
				break
			}
			log.Warning(context.Background(), "RabbitMQ connection lost.", logging.Entry("reason", *reason))

			for {
				time.Sleep(redialDelay)
				conn, err := amqp.Dial(url)
				if err == nil {
					connection.Connection = conn
					log.Info(context.Background(), "RabbitMQ reconnect success.")
					break
				}
				log.Error(context.Background(), "RabbitMQ reconnect failed.", logging.Entry("err", err))
			}
		}
	}()

	return connection, nil
}

// Channel returns an amqp channel that recreates itself when the broker
// closes it; a Close call from our side stops the recreate loop.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{Channel: ch, log: c.log}

	go func() {
		for {
			reason, ok := <-channel.Channel.NotifyClose(make(chan *amqp.Error))
			if !ok || channel.IsClosed() {
				channel.Close()
				break
			}
			c.log.Warning(context.Background(), "RabbitMQ channel closed.", logging.Entry("reason", *reason))

			for {
				time.Sleep(redialDelay)
				ch, err := c.Connection.Channel()
				if err == nil {
					c.log.Info(context.Background(), "RabbitMQ channel recreated.")
					channel.Channel = ch
					break
				}
				c.log.Error(context.Background(), "RabbitMQ channel recreate failed.", logging.Entry("err", err))
			}
		}
	}()

	return channel, nil
}

type Channel struct {
	*amqp.Channel
	closed int32
	log    logging.Logger
}

// IsClosed reports whether Close was called from our side.
func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if ch.IsClosed() {
		return amqp.ErrClosed
	}
	atomic.StoreInt32(&ch.closed, 1)
	return ch.Channel.Close()
}

// Consume keeps delivering across channel recreations; the returned channel
// ends only after Close.
func (ch *Channel) Consume(
	queue, consumer string,
	autoAck, exclusive, noLocal, noWait bool,
	args amqp.Table,
) (<-chan amqp.Delivery, error) {
	deliveries := make(chan amqp.Delivery)

	go func() {
		for {
			d, err := ch.Channel.Consume(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
			if err != nil {
				ch.log.Error(context.Background(), "Consume failed.", logging.Entry("err", err))
				time.Sleep(redialDelay)
				continue
			}

			for msg := range d {
				deliveries <- msg
			}

			// The delivery stream ended; give the recreate loop time to swap
			// in a fresh channel before checking for developer close.
			time.Sleep(redialDelay)

			if ch.IsClosed() {
				ch.log.Info(context.Background(), "Channel is closed, stop consuming.", logging.Entry("queue", queue))
				close(deliveries)
				break
			}
		}
	}()

	return deliveries, nil
}
