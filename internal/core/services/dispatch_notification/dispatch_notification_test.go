package dispatchnotification

import (
	"context"
	"errors"
	c "oroshine/internal/core/domain/common"
	"oroshine/internal/core/domain/logging"
	"oroshine/internal/core/domain/notification"
	"oroshine/internal/core/domain/outbox"
	"oroshine/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	MAX_ATTEMPTS    = 5
	BACKOFF_BASE    = time.Second
	ATTEMPT_TIMEOUT = time.Second * 10
	RECIPIENT       = "test@test.test"
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	log    *logging.FakeLogger
	sender *notification.FakeSender
	guard  *notification.FakeDeliveryGuard
	sleeps []time.Duration
}

func setupSuite(sendErrs ...error) *testSuite {
	return &testSuite{
		log:    logging.NewFakeLogger(),
		sender: notification.NewFakeSender(sendErrs...),
		guard:  notification.NewFakeDeliveryGuard(),
	}
}

func (s *testSuite) createService() services.Service[Input, Result] {
	return New(
		s.log,
		s.sender,
		s.guard,
		MAX_ATTEMPTS,
		BACKOFF_BASE,
		ATTEMPT_TIMEOUT,
		func(d time.Duration) { s.sleeps = append(s.sleeps, d) },
	)
}

func testJob() outbox.Job {
	return outbox.NewJob(
		outbox.KindResetRequested,
		c.Email(RECIPIENT),
		map[string]string{"token": "test-token", "reference": "test-reference"},
		NOW,
	)
}

func TestDeliveredOnFirstAttempt(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Job: testJob()})

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, 1, result.Attempts)
	require.Equal(t, 1, suite.sender.SentCount())
	require.Empty(t, suite.sleeps)
}

func TestTransientFailuresAreRetried(t *testing.T) {
	// Setup ---
	transient := notification.NewTransientError(errors.New("throttled"))
	suite := setupSuite(transient, transient, transient)
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Job: testJob()})

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, 4, result.Attempts)
	require.Equal(t, 4, suite.sender.Calls())
	require.Equal(t, 1, suite.sender.SentCount())
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, suite.sleeps)
}

func TestAttemptsAreExhausted(t *testing.T) {
	// Setup ---
	transient := notification.NewTransientError(errors.New("unavailable"))
	suite := setupSuite(transient, transient, transient, transient, transient, transient)
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Job: testJob()})

	// Verify ---
	require.ErrorIs(t, err, ErrDeliveryFailed)
	require.Equal(t, MAX_ATTEMPTS, result.Attempts)
	require.Equal(t, MAX_ATTEMPTS, suite.sender.Calls())
	require.Equal(t, 0, suite.sender.SentCount())
	// No sleep after the final attempt.
	require.Equal(
		t,
		[]time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second},
		suite.sleeps,
	)
}

func TestUnclassifiedErrorsAreRetried(t *testing.T) {
	// Setup ---
	suite := setupSuite(errors.New("wire dropped"))
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Job: testJob()})

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, 2, result.Attempts)
}

func TestPermanentFailureIsNotRetried(t *testing.T) {
	// Setup ---
	permanent := notification.NewPermanentError(errors.New("address rejected"))
	suite := setupSuite(permanent)
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Job: testJob()})

	// Verify ---
	require.Error(t, err)
	require.True(t, notification.IsPermanent(err))
	require.Equal(t, 1, result.Attempts)
	require.Equal(t, 1, suite.sender.Calls())
	require.Empty(t, suite.sleeps)
}

func TestDuplicateJobIsSkipped(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()
	job := testJob()

	// Exercise ---
	_, err := service.Run(context.Background(), Input{Job: job})
	require.NoError(t, err)
	result, err := service.Run(context.Background(), Input{Job: job})

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, 0, result.Attempts)
	require.Equal(t, 1, suite.sender.Calls())
}
