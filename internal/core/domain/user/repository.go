package user

import (
	"context"
	c "oroshine/internal/core/domain/common"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email c.Email) (User, error)

	// GetActiveByID returns ErrUserDoesNotExist for unknown and inactive
	// users alike.
	GetActiveByID(ctx context.Context, id ID) (User, error)

	// SetPassword replaces the credential and the security stamp in one
	// atomic update.
	SetPassword(ctx context.Context, id ID, password PasswordHash, stamp SecurityStamp) error
}

type RecordResetRequestInput struct {
	UserID      ID
	RequestedAt time.Time
}

type ResetRequestRepository interface {
	Create(ctx context.Context, input RecordResetRequestInput) error
}
