package outbox

import (
	"context"
	c "oroshine/internal/core/domain/common"
	"oroshine/internal/core/domain/logging"
	"oroshine/internal/core/domain/outbox"
	uow "oroshine/internal/core/domain/unit_of_work"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const SUBMIT_TIMEOUT = time.Second

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	log        *logging.FakeLogger
	intake     *outbox.FakeIntake
	unitOfWork *uow.FakeUnitOfWork
}

func setupSuite() *testSuite {
	return &testSuite{
		log:        logging.NewFakeLogger(),
		intake:     outbox.NewFakeIntake(),
		unitOfWork: uow.NewFakeUnitOfWork(),
	}
}

func (s *testSuite) createEnqueuer() *Enqueuer {
	return New(s.log, s.intake, SUBMIT_TIMEOUT)
}

func testJob(kind outbox.JobKind) outbox.Job {
	return outbox.NewJob(kind, c.Email("test@test.test"), map[string]string{}, NOW)
}

func TestJobReleasedOnlyOnCommit(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	enqueuer := suite.createEnqueuer()
	ctx := context.Background()
	u, err := suite.unitOfWork.Begin(ctx)
	require.NoError(t, err)

	// Exercise ---
	job := testJob(outbox.KindResetRequested)
	enqueuer.EnqueueOnCommit(u, job)
	require.Equal(t, 0, suite.intake.SubmittedCount())

	require.NoError(t, u.Commit(ctx))

	// Verify ---
	require.Equal(t, 1, suite.intake.SubmittedCount())
	require.Equal(t, job.ID, suite.intake.Submitted[0].ID)
}

func TestJobsReleasedInEnqueueOrder(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	enqueuer := suite.createEnqueuer()
	ctx := context.Background()
	u, err := suite.unitOfWork.Begin(ctx)
	require.NoError(t, err)

	// Exercise ---
	first := testJob(outbox.KindResetRequested)
	second := testJob(outbox.KindResetSucceeded)
	enqueuer.EnqueueOnCommit(u, first)
	enqueuer.EnqueueOnCommit(u, second)
	require.NoError(t, u.Commit(ctx))

	// Verify ---
	require.Equal(t, 2, suite.intake.SubmittedCount())
	require.Equal(t, first.ID, suite.intake.Submitted[0].ID)
	require.Equal(t, second.ID, suite.intake.Submitted[1].ID)
}

func TestJobDiscardedOnRollback(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	enqueuer := suite.createEnqueuer()
	ctx := context.Background()
	u, err := suite.unitOfWork.Begin(ctx)
	require.NoError(t, err)

	// Exercise ---
	enqueuer.EnqueueOnCommit(u, testJob(outbox.KindResetRequested))
	require.NoError(t, u.Rollback(ctx))

	// Verify ---
	require.Equal(t, 0, suite.intake.SubmittedCount())
}

func TestJobDiscardedOnFailedCommit(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	suite.unitOfWork.Context.FailCommit = true
	enqueuer := suite.createEnqueuer()
	ctx := context.Background()
	u, err := suite.unitOfWork.Begin(ctx)
	require.NoError(t, err)

	// Exercise ---
	enqueuer.EnqueueOnCommit(u, testJob(outbox.KindResetRequested))
	require.Error(t, u.Commit(ctx))

	// Verify ---
	require.Equal(t, 0, suite.intake.SubmittedCount())
}

func TestEnqueueAfterCommitPanics(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	enqueuer := suite.createEnqueuer()
	ctx := context.Background()
	u, err := suite.unitOfWork.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, u.Commit(ctx))

	// Exercise & Verify ---
	require.Panics(t, func() {
		enqueuer.EnqueueOnCommit(u, testJob(outbox.KindResetRequested))
	})
}

func TestSubmitErrorDoesNotFailCommit(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	suite.intake.ReturnError = true
	enqueuer := suite.createEnqueuer()
	ctx := context.Background()
	u, err := suite.unitOfWork.Begin(ctx)
	require.NoError(t, err)

	// Exercise ---
	enqueuer.EnqueueOnCommit(u, testJob(outbox.KindResetRequested))

	// Verify ---
	require.NoError(t, u.Commit(ctx))
	require.Equal(t, 0, suite.intake.SubmittedCount())
}

func TestChannelIntakeHandsJobsOver(t *testing.T) {
	// Setup ---
	intake := NewChannelIntake(2)
	job := testJob(outbox.KindResetRequested)

	// Exercise ---
	require.NoError(t, intake.Submit(context.Background(), job))
	intake.Close()

	// Verify ---
	received, ok := <-intake.Jobs()
	require.True(t, ok)
	require.Equal(t, job.ID, received.ID)
	_, ok = <-intake.Jobs()
	require.False(t, ok)
}

func TestChannelIntakeSubmitHonorsContext(t *testing.T) {
	// Setup ---
	intake := NewChannelIntake(1)
	require.NoError(t, intake.Submit(context.Background(), testJob(outbox.KindResetRequested)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Exercise & Verify ---
	err := intake.Submit(ctx, testJob(outbox.KindResetSucceeded))
	require.ErrorIs(t, err, context.Canceled)
}
