package worker

import (
	"context"
	e "oroshine/internal/core/domain/errors"
	"oroshine/internal/core/domain/logging"
	"oroshine/internal/core/domain/outbox"
	"oroshine/internal/core/services"
	dispatchnotification "oroshine/internal/core/services/dispatch_notification"
	"sync"
)

// Pool runs a fixed number of dispatch workers over a shared jobs channel.
// Workers exit when the channel is closed and drained; Stop blocks until all
// in-flight jobs have been handled.
type Pool struct {
	log     logging.Logger
	jobs    <-chan outbox.Job
	service services.Service[dispatchnotification.Input, dispatchnotification.Result]
	count   int
	wg      sync.WaitGroup
}

func NewPool(
	log logging.Logger,
	jobs <-chan outbox.Job,
	service services.Service[dispatchnotification.Input, dispatchnotification.Result],
	count int,
) *Pool {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if jobs == nil {
		panic(e.NewNilArgumentError("jobs"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if count < 1 {
		panic(e.NewInvalidStateError("worker count must be at least 1"))
	}
	return &Pool{log: log, jobs: jobs, service: service, count: count}
}

func (p *Pool) Start() {
	p.wg.Add(p.count)
	for i := 0; i < p.count; i++ {
		go p.run()
	}
	p.log.Info(context.Background(), "Dispatch worker pool started.", logging.Entry("workers", p.count))
}

func (p *Pool) Stop() {
	p.wg.Wait()
	p.log.Info(context.Background(), "Dispatch worker pool stopped.")
}

func (p *Pool) run() {
	defer p.wg.Done()
	for job := range p.jobs {
		_, err := p.service.Run(context.Background(), dispatchnotification.Input{Job: job})
		if err != nil {
			p.log.Error(
				context.Background(),
				"Dispatch service returned an error.",
				logging.Entry("jobID", job.ID),
				logging.Entry("kind", job.Kind),
				logging.Entry("err", err),
			)
		}
	}
}
