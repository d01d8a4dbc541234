package uow

import (
	"context"
	e "oroshine/internal/core/domain/errors"
	uow "oroshine/internal/core/domain/unit_of_work"
	"oroshine/internal/core/domain/user"
	dbuser "oroshine/internal/db/user"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// pgxUnitOfWorkContext wraps one pgx transaction. A unit of work lives on a
// single request goroutine, so hook registration needs no locking.
type pgxUnitOfWorkContext struct {
	tx       pgx.Tx
	hooks    []func()
	finished bool
}

func newPgxUnitOfWorkContext(tx pgx.Tx) *pgxUnitOfWorkContext {
	return &pgxUnitOfWorkContext{tx: tx}
}

func (c *pgxUnitOfWorkContext) Commit(ctx context.Context) error {
	if err := c.tx.Commit(ctx); err != nil {
		c.finished = true
		c.hooks = nil
		return err
	}
	c.finished = true
	// Hooks run synchronously in registration order, only after the
	// transaction is durable.
	for _, fn := range c.hooks {
		fn()
	}
	c.hooks = nil
	return nil
}

func (c *pgxUnitOfWorkContext) Rollback(ctx context.Context) error {
	if c.finished {
		// Deferred rollback after a successful commit is a no-op.
		return nil
	}
	c.finished = true
	c.hooks = nil
	return c.tx.Rollback(ctx)
}

func (c *pgxUnitOfWorkContext) OnCommit(fn func()) {
	if c.finished {
		panic(e.NewInvalidStateError("on-commit hook registered on a finished unit of work"))
	}
	if fn == nil {
		panic(e.NewNilArgumentError("fn"))
	}
	c.hooks = append(c.hooks, fn)
}

func (c *pgxUnitOfWorkContext) Users() user.UserRepository {
	return dbuser.NewPgxRepository(c.tx)
}

func (c *pgxUnitOfWorkContext) ResetRequests() user.ResetRequestRepository {
	return dbuser.NewPgxResetRequestRepository(c.tx)
}

type PgxUnitOfWork struct {
	db *pgxpool.Pool
}

func NewPgxUnitOfWork(db *pgxpool.Pool) *PgxUnitOfWork {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUnitOfWork{db: db}
}

func (u *PgxUnitOfWork) Begin(ctx context.Context) (uow.Context, error) {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return newPgxUnitOfWorkContext(tx), nil
}
