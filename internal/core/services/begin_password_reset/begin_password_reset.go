package beginpasswordreset

import (
	"context"
	"errors"
	c "oroshine/internal/core/domain/common"
	e "oroshine/internal/core/domain/errors"
	"oroshine/internal/core/domain/logging"
	"oroshine/internal/core/domain/outbox"
	uow "oroshine/internal/core/domain/unit_of_work"
	"oroshine/internal/core/domain/user"
	"oroshine/internal/core/services"
	"time"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "begin-password-reset::" + string(i.Email)
}

// Token and Reference are set only when a token was actually issued. The
// boundary must answer identically either way to avoid leaking account
// existence; they exist for test mode and logging.
type Result struct {
	Token     user.PasswordResetToken
	Reference user.PasswordResetReference
}

type service struct {
	log              logging.Logger
	unitOfWork       uow.UnitOfWork
	passwordResetter user.PasswordResetter
	enqueuer         outbox.Enqueuer
	now              func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordResetter user.PasswordResetter,
	enqueuer outbox.Enqueuer,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordResetter == nil {
		panic(e.NewNilArgumentError("passwordResetter"))
	}
	if enqueuer == nil {
		panic(e.NewNilArgumentError("enqueuer"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:              log,
		unitOfWork:       unitOfWork,
		passwordResetter: passwordResetter,
		enqueuer:         enqueuer,
		now:              now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	u, err := uow.Users().GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(
			ctx,
			"Password reset requested for unknown email.",
			logging.Entry("email", input.Email),
		)
		return result, nil
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}
	if !u.IsActive() {
		s.log.Info(
			ctx,
			"Password reset requested for inactive user.",
			logging.Entry("userID", u.ID),
		)
		return result, nil
	}

	token := s.passwordResetter.GenerateToken(u)
	reference := s.passwordResetter.EncodeReference(u.ID)

	err = uow.ResetRequests().Create(ctx, user.RecordResetRequestInput{
		UserID:      u.ID,
		RequestedAt: s.now(),
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not record password reset request.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.enqueuer.EnqueueOnCommit(uow, outbox.NewJob(
		outbox.KindResetRequested,
		u.Email,
		map[string]string{
			"reference": string(reference),
			"token":     string(token),
		},
		s.now(),
	))

	if err := uow.Commit(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(
			ctx,
			"Could not commit password reset request.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "Password reset token has been issued.", logging.Entry("userID", u.ID))
	return Result{Token: token, Reference: reference}, nil
}
