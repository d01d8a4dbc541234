package uow

import (
	"context"
	"oroshine/internal/core/domain/user"
	"oroshine/internal/db"
	dbuser "oroshine/internal/db/user"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const EMAIL = "test@test.test"

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	uow  *PgxUnitOfWork
	repo *dbuser.PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.uow = NewPgxUnitOfWork(suite.pool)
	suite.repo = dbuser.NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUnitOfWork(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestChangesVisibleAfterCommit() {
	userID := s.createUser()
	ctx := context.Background()

	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)
	defer uow.Rollback(ctx)

	err = uow.Users().SetPassword(ctx, userID, user.PasswordHash("new-hash"), user.SecurityStamp("new-stamp"))
	s.Require().Nil(err)
	s.Require().Nil(uow.Commit(ctx))

	u, err := s.repo.GetActiveByID(ctx, userID)
	s.Require().Nil(err)
	s.Require().Equal(user.PasswordHash("new-hash"), u.PasswordHash)
}

func (s *testSuite) TestChangesDiscardedOnRollback() {
	userID := s.createUser()
	ctx := context.Background()

	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)

	err = uow.Users().SetPassword(ctx, userID, user.PasswordHash("new-hash"), user.SecurityStamp("new-stamp"))
	s.Require().Nil(err)
	s.Require().Nil(uow.Rollback(ctx))

	u, err := s.repo.GetActiveByID(ctx, userID)
	s.Require().Nil(err)
	s.Require().Equal(user.PasswordHash("old-hash"), u.PasswordHash)
}

func (s *testSuite) TestOnCommitHooksRunAfterCommit() {
	userID := s.createUser()
	ctx := context.Background()

	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)
	defer uow.Rollback(ctx)

	var order []int
	uow.OnCommit(func() {
		// The transaction must already be durable when the hook runs.
		u, err := s.repo.GetActiveByID(context.Background(), userID)
		s.Require().Nil(err)
		s.Require().Equal(user.PasswordHash("new-hash"), u.PasswordHash)
		order = append(order, 1)
	})
	uow.OnCommit(func() { order = append(order, 2) })

	err = uow.Users().SetPassword(ctx, userID, user.PasswordHash("new-hash"), user.SecurityStamp("new-stamp"))
	s.Require().Nil(err)

	s.Require().Equal([]int(nil), order)
	s.Require().Nil(uow.Commit(ctx))
	s.Require().Equal([]int{1, 2}, order)
}

func (s *testSuite) TestOnCommitHooksDiscardedOnRollback() {
	ctx := context.Background()

	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)

	called := false
	uow.OnCommit(func() { called = true })
	s.Require().Nil(uow.Rollback(ctx))
	s.Require().False(called)
}

func (s *testSuite) TestOnCommitAfterFinishPanics() {
	ctx := context.Background()

	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)
	s.Require().Nil(uow.Commit(ctx))

	s.Require().Panics(func() {
		uow.OnCommit(func() {})
	})
}

func (s *testSuite) TestRollbackAfterCommitIsNoop() {
	ctx := context.Background()

	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)
	s.Require().Nil(uow.Commit(ctx))
	s.Require().Nil(uow.Rollback(ctx))
}

func (s *testSuite) createUser() user.ID {
	s.T().Helper()

	var id int64
	err := s.pool.QueryRow(
		context.Background(),
		`INSERT INTO "user" (email, password_hash, security_stamp, created_at, activated_at)
		 VALUES ($1, 'old-hash', 'old-stamp', $2, $2) RETURNING id`,
		EMAIL,
		time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		s.FailNowf("could not create user", "%v", err)
	}
	return user.ID(id)
}
