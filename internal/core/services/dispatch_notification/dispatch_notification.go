package dispatchnotification

import (
	"context"
	"errors"
	e "oroshine/internal/core/domain/errors"
	"oroshine/internal/core/domain/logging"
	"oroshine/internal/core/domain/notification"
	"oroshine/internal/core/domain/outbox"
	"oroshine/internal/core/services"
	"time"
)

var ErrDeliveryFailed = errors.New("notification delivery failed")

type Input struct {
	Job outbox.Job
}

type Result struct {
	Attempts int
}

type service struct {
	log            logging.Logger
	sender         notification.Sender
	guard          notification.DeliveryGuard
	maxAttempts    int
	backoffBase    time.Duration
	attemptTimeout time.Duration
	sleep          func(d time.Duration)
}

func New(
	log logging.Logger,
	sender notification.Sender,
	guard notification.DeliveryGuard,
	maxAttempts int,
	backoffBase time.Duration,
	attemptTimeout time.Duration,
	sleep func(d time.Duration),
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if guard == nil {
		panic(e.NewNilArgumentError("guard"))
	}
	if maxAttempts < 1 {
		panic(e.NewInvalidStateError("maxAttempts must be at least 1"))
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	return &service{
		log:            log,
		sender:         sender,
		guard:          guard,
		maxAttempts:    maxAttempts,
		backoffBase:    backoffBase,
		attemptTimeout: attemptTimeout,
		sleep:          sleep,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	job := input.Job

	if !s.guard.Acquire(ctx, job.ID.String()) {
		s.log.Info(
			ctx,
			"Notification already delivered, skipping.",
			logging.Entry("jobID", job.ID),
			logging.Entry("kind", job.Kind),
		)
		return result, nil
	}

	for attempt := 1; ; attempt++ {
		result.Attempts = attempt

		sendCtx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
		err = s.sender.Send(sendCtx, job.Recipient, job.Kind, job.Params)
		cancel()

		if err == nil {
			s.log.Info(
				ctx,
				"Notification has been delivered.",
				logging.Entry("jobID", job.ID),
				logging.Entry("kind", job.Kind),
				logging.Entry("attempt", attempt),
			)
			return result, nil
		}
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return result, err
		}
		if notification.IsPermanent(err) {
			s.log.Error(
				ctx,
				"Notification rejected permanently, not retrying.",
				logging.Entry("jobID", job.ID),
				logging.Entry("kind", job.Kind),
				logging.Entry("err", err),
			)
			return result, err
		}

		if attempt >= s.maxAttempts {
			s.log.Error(
				ctx,
				"Notification delivery failed, attempts exhausted.",
				logging.Entry("jobID", job.ID),
				logging.Entry("kind", job.Kind),
				logging.Entry("attempts", attempt),
				logging.Entry("err", err),
			)
			return result, ErrDeliveryFailed
		}

		backoff := s.backoffBase << (attempt - 1)
		s.log.Warning(
			ctx,
			"Notification delivery failed, will retry.",
			logging.Entry("jobID", job.ID),
			logging.Entry("kind", job.Kind),
			logging.Entry("attempt", attempt),
			logging.Entry("backoff", backoff),
			logging.Entry("err", err),
		)
		s.sleep(backoff)
	}
}
