package outbox

import (
	"context"
	c "oroshine/internal/core/domain/common"
	uow "oroshine/internal/core/domain/unit_of_work"
	"time"

	"github.com/google/uuid"
)

type JobKind string

const (
	KindResetRequested JobKind = "reset_requested"
	KindResetSucceeded JobKind = "reset_succeeded"
)

// Job is one pending asynchronous notification. Kind plus Params must be
// sufficient to retry the send without anything from the original request.
type Job struct {
	ID         uuid.UUID
	Kind       JobKind
	Recipient  c.Email
	Params     map[string]string
	EnqueuedAt time.Time
}

func NewJob(kind JobKind, recipient c.Email, params map[string]string, at time.Time) Job {
	return Job{
		ID:         uuid.New(),
		Kind:       kind,
		Recipient:  recipient,
		Params:     params,
		EnqueuedAt: at,
	}
}

// Intake is the handoff point between committing requests and dispatch
// workers. Implementations must be safe for concurrent producers.
type Intake interface {
	Submit(ctx context.Context, job Job) error
}

// Enqueuer defers submission of a job until the given unit of work durably
// commits; the job is discarded if the unit of work aborts.
type Enqueuer interface {
	EnqueueOnCommit(uow uow.Context, job Job)
}
