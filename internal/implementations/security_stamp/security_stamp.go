package securitystamp

import (
	"oroshine/internal/core/domain/user"

	"github.com/google/uuid"
)

type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) GenerateSecurityStamp() user.SecurityStamp {
	return user.SecurityStamp(uuid.New().String())
}
