package confirmpasswordreset

import (
	"context"
	"errors"
	e "oroshine/internal/core/domain/errors"
	"oroshine/internal/core/domain/logging"
	"oroshine/internal/core/domain/outbox"
	uow "oroshine/internal/core/domain/unit_of_work"
	"oroshine/internal/core/domain/user"
	"oroshine/internal/core/services"
	"time"
)

type Input struct {
	Reference   user.PasswordResetReference
	Token       user.PasswordResetToken
	NewPassword user.RawPassword
}

type Result struct{}

type service struct {
	log                    logging.Logger
	unitOfWork             uow.UnitOfWork
	passwordResetter       user.PasswordResetter
	passwordHasher         user.PasswordHasher
	securityStampGenerator user.SecurityStampGenerator
	enqueuer               outbox.Enqueuer
	now                    func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordResetter user.PasswordResetter,
	passwordHasher user.PasswordHasher,
	securityStampGenerator user.SecurityStampGenerator,
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
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if securityStampGenerator == nil {
		panic(e.NewNilArgumentError("securityStampGenerator"))
	}
	if enqueuer == nil {
		panic(e.NewNilArgumentError("enqueuer"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                    log,
		unitOfWork:             unitOfWork,
		passwordResetter:       passwordResetter,
		passwordHasher:         passwordHasher,
		securityStampGenerator: securityStampGenerator,
		enqueuer:               enqueuer,
		now:                    now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	userID, err := s.passwordResetter.DecodeReference(input.Reference)
	if err != nil {
		s.log.Info(ctx, "Malformed password reset reference.", logging.Entry("err", err))
		return result, user.ErrInvalidResetReference
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	u, err := uow.Users().GetActiveByID(ctx, userID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(
			ctx,
			"Password reset confirmation for unknown or inactive user.",
			logging.Entry("userID", userID),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset confirmation.",
			logging.Entry("userID", userID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := s.passwordResetter.ValidateToken(u, input.Token); err != nil {
		s.log.Info(
			ctx,
			"Password reset token rejected.",
			logging.Entry("userID", userID),
			logging.Entry("err", err),
		)
		return result, err
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash new password.", logging.Entry("err", err))
		return result, err
	}

	newStamp := s.securityStampGenerator.GenerateSecurityStamp()
	err = uow.Users().SetPassword(ctx, u.ID, newPasswordHash, newStamp)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.enqueuer.EnqueueOnCommit(uow, outbox.NewJob(
		outbox.KindResetSucceeded,
		u.Email,
		map[string]string{},
		s.now(),
	))

	if err := uow.Commit(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(
			ctx,
			"Could not commit password reset.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "New password has been successfully set.", logging.Entry("userID", u.ID))
	return result, nil
}
