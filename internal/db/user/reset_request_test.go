package user

import (
	"context"
	"oroshine/internal/core/domain/user"
	"oroshine/internal/db"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

type resetRequestTestSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxResetRequestRepository
}

func (suite *resetRequestTestSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.repo = NewPgxResetRequestRepository(suite.pool)
}

func (suite *resetRequestTestSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *resetRequestTestSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxResetRequestRepository(t *testing.T) {
	suite.Run(t, new(resetRequestTestSuite))
}

func (s *resetRequestTestSuite) TestCreate() {
	var userID int64
	err := s.pool.QueryRow(
		context.Background(),
		`INSERT INTO "user" (email, password_hash, security_stamp, created_at, activated_at)
		 VALUES ('test@test.test', 'hash', 'stamp', now(), now()) RETURNING id`,
	).Scan(&userID)
	s.Require().Nil(err)

	requestedAt := time.Date(2022, 6, 6, 15, 30, 30, 0, time.UTC)
	err = s.repo.Create(context.Background(), user.RecordResetRequestInput{
		UserID:      user.ID(userID),
		RequestedAt: requestedAt,
	})

	assert := s.Require()
	assert.Nil(err)

	var count int
	var storedAt time.Time
	err = s.pool.QueryRow(
		context.Background(),
		`SELECT count(*), min(requested_at) FROM password_reset_request WHERE user_id = $1`,
		userID,
	).Scan(&count, &storedAt)
	assert.Nil(err)
	assert.Equal(1, count)
	assert.True(requestedAt.Equal(storedAt))
}

func (s *resetRequestTestSuite) TestCreateUnknownUser() {
	err := s.repo.Create(context.Background(), user.RecordResetRequestInput{
		UserID:      user.ID(987654),
		RequestedAt: time.Now().UTC(),
	})
	s.Require().Error(err)
}
