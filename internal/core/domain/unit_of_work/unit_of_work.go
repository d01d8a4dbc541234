package uow

import (
	"context"
	"oroshine/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	// OnCommit registers a callback that runs synchronously, in registration
	// order, after the unit of work has durably committed. Callbacks never
	// run after a rollback or a failed commit. Registering on a finished
	// unit of work is programmer misuse and panics.
	OnCommit(fn func())

	Users() user.UserRepository
	ResetRequests() user.ResetRequestRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
