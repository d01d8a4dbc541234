package outbox

import (
	"context"
	e "oroshine/internal/core/domain/errors"
	"oroshine/internal/core/domain/outbox"
)

// ChannelIntake is the in-process handoff between committing requests and the
// dispatch worker pool: a single buffered channel, safe for concurrent
// producers and consumers.
type ChannelIntake struct {
	jobs chan outbox.Job
}

func NewChannelIntake(bufferSize int) *ChannelIntake {
	if bufferSize < 1 {
		panic(e.NewInvalidStateError("intake buffer size must be at least 1"))
	}
	return &ChannelIntake{jobs: make(chan outbox.Job, bufferSize)}
}

func (i *ChannelIntake) Submit(ctx context.Context, job outbox.Job) error {
	select {
	case i.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (i *ChannelIntake) Jobs() <-chan outbox.Job {
	return i.jobs
}

// Close stops accepting new jobs; workers draining Jobs() terminate once the
// buffer is empty. Submit after Close panics, so Close only after all
// producers have stopped.
func (i *ChannelIntake) Close() {
	close(i.jobs)
}
