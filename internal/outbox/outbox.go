package outbox

import (
	"context"
	e "oroshine/internal/core/domain/errors"
	"oroshine/internal/core/domain/logging"
	"oroshine/internal/core/domain/outbox"
	uow "oroshine/internal/core/domain/unit_of_work"
	"time"
)

// Enqueuer ties job release to the commit of the enclosing unit of work: the
// job reaches the intake if and only if the unit of work durably commits.
// The hook performs only the intake handoff, never the send itself.
type Enqueuer struct {
	log           logging.Logger
	intake        outbox.Intake
	submitTimeout time.Duration
}

func New(log logging.Logger, intake outbox.Intake, submitTimeout time.Duration) *Enqueuer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if intake == nil {
		panic(e.NewNilArgumentError("intake"))
	}
	return &Enqueuer{log: log, intake: intake, submitTimeout: submitTimeout}
}

func (q *Enqueuer) EnqueueOnCommit(u uow.Context, job outbox.Job) {
	if u == nil {
		panic(e.NewNilArgumentError("u"))
	}
	u.OnCommit(func() {
		// The unit of work has already committed; the request context may be
		// gone by now, so the handoff gets its own deadline.
		ctx, cancel := context.WithTimeout(context.Background(), q.submitTimeout)
		defer cancel()

		if err := q.intake.Submit(ctx, job); err != nil {
			q.log.Error(
				ctx,
				"Could not submit committed job to the intake, notification is lost.",
				logging.Entry("jobID", job.ID),
				logging.Entry("kind", job.Kind),
				logging.Entry("err", err),
			)
			return
		}
		q.log.Info(
			ctx,
			"Job has been released to the intake.",
			logging.Entry("jobID", job.ID),
			logging.Entry("kind", job.Kind),
		)
	})
}
