package uow

import (
	"context"
	"fmt"
	e "oroshine/internal/core/domain/errors"
	"oroshine/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository         *user.FakeUserRepository
	ResetRequestRepository *user.FakeResetRequestRepository
	WasRollbackCalled      bool
	WasCommitCalled        bool
	FailCommit             bool

	hooks    []func()
	finished bool
}

func NewFakeUnitOfWorkContext(
	userRepository *user.FakeUserRepository,
	resetRequestRepository *user.FakeResetRequestRepository,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		UserRepository:         userRepository,
		ResetRequestRepository: resetRequestRepository,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	if c.finished {
		return nil
	}
	c.finished = true
	c.WasRollbackCalled = true
	c.hooks = nil
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	if c.finished {
		return fmt.Errorf("unit of work already finished")
	}
	c.WasCommitCalled = true
	if c.FailCommit {
		c.finished = true
		c.hooks = nil
		return fmt.Errorf("commit failed")
	}
	c.finished = true
	for _, fn := range c.hooks {
		fn()
	}
	c.hooks = nil
	return nil
}

func (c *FakeUnitOfWorkContext) OnCommit(fn func()) {
	if c.finished {
		panic(e.NewInvalidStateError("on-commit hook registered on a finished unit of work"))
	}
	c.hooks = append(c.hooks, fn)
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) ResetRequests() user.ResetRequestRepository {
	return c.ResetRequestRepository
}

type FakeUnitOfWork struct {
	Context  *FakeUnitOfWorkContext
	BeginErr error
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			user.NewFakeUserRepository(),
			user.NewFakeResetRequestRepository(),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.BeginErr != nil {
		return nil, u.BeginErr
	}
	return u.Context, nil
}
