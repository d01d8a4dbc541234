package user

import "errors"

var (
	ErrUserDoesNotExist      = errors.New("user does not exist")
	ErrUserIsNotActive       = errors.New("user is not active")
	ErrInvalidResetReference = errors.New("invalid password reset reference")
	ErrResetTokenMismatch    = errors.New("password reset token mismatch")
	ErrResetTokenExpired     = errors.New("password reset token expired")
)
