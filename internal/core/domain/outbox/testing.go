package outbox

import (
	"context"
	"fmt"
	uow "oroshine/internal/core/domain/unit_of_work"
	"sync"
)

type FakeIntake struct {
	Submitted   []Job
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeIntake() *FakeIntake {
	return &FakeIntake{}
}

func (i *FakeIntake) Submit(ctx context.Context, job Job) error {
	if i.ReturnError {
		return fmt.Errorf("could not submit job %s", job.ID)
	}
	i.lock.Lock()
	defer i.lock.Unlock()
	i.Submitted = append(i.Submitted, job)
	return nil
}

func (i *FakeIntake) SubmittedCount() int {
	i.lock.Lock()
	defer i.lock.Unlock()
	return len(i.Submitted)
}

type FakeEnqueuer struct {
	Enqueued []Job
	lock     sync.Mutex
}

func NewFakeEnqueuer() *FakeEnqueuer {
	return &FakeEnqueuer{}
}

func (e *FakeEnqueuer) EnqueueOnCommit(u uow.Context, job Job) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.Enqueued = append(e.Enqueued, job)
}

func (e *FakeEnqueuer) EnqueuedCount() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return len(e.Enqueued)
}
