package user

import (
	c "oroshine/internal/core/domain/common"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// SecurityStamp changes whenever a security-relevant field of the user
// changes, at minimum on every credential replacement. Password reset tokens
// are derived from it, so a stamp change invalidates all outstanding tokens.
type SecurityStamp string

type User struct {
	ID            ID
	Email         c.Email
	PasswordHash  PasswordHash
	SecurityStamp SecurityStamp
	CreatedAt     time.Time
	ActivatedAt   c.Optional[time.Time]
}

func (u *User) IsActive() bool {
	return u.ActivatedAt.IsPresent
}

type SecurityStampGenerator interface {
	GenerateSecurityStamp() SecurityStamp
}
