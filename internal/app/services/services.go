package services

import (
	"oroshine/internal/app/deps"
	drl "oroshine/internal/core/domain/rate_limiter"
	"oroshine/internal/core/services"
	beginpasswordreset "oroshine/internal/core/services/begin_password_reset"
	confirmpasswordreset "oroshine/internal/core/services/confirm_password_reset"
	dispatchnotification "oroshine/internal/core/services/dispatch_notification"
	ratelimiting "oroshine/internal/core/services/rate_limiting"
)

type Services struct {
	BeginPasswordReset   services.Service[beginpasswordreset.Input, beginpasswordreset.Result]
	ConfirmPasswordReset services.Service[confirmpasswordreset.Input, confirmpasswordreset.Result]
	DispatchNotification services.Service[dispatchnotification.Input, dispatchnotification.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.BeginPasswordReset = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		beginpasswordreset.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.PasswordResetter,
			deps.Enqueuer,
			deps.Now,
		),
	)
	s.ConfirmPasswordReset = confirmpasswordreset.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordResetter,
		deps.PasswordHasher,
		deps.SecurityStampGenerator,
		deps.Enqueuer,
		deps.Now,
	)
	s.DispatchNotification = dispatchnotification.New(
		deps.Logger,
		deps.EmailSender,
		deps.DeliveryGuard,
		deps.Config.DispatchMaxAttempts,
		deps.Config.DispatchBackoffBase,
		deps.Config.DispatchAttemptTimeout,
		nil,
	)

	return s
}
