package notification

import (
	"context"
	c "oroshine/internal/core/domain/common"
	"oroshine/internal/core/domain/outbox"
)

// Sender delivers one notification. Implementations classify failures by
// wrapping them with NewTransientError or NewPermanentError.
type Sender interface {
	Send(ctx context.Context, recipient c.Email, kind outbox.JobKind, params map[string]string) error
}

// DeliveryGuard suppresses duplicate sends of the same job across retries and
// worker restarts. Acquire reports whether the caller owns the first delivery
// of the key; implementations fail open when the backing store is down.
type DeliveryGuard interface {
	Acquire(ctx context.Context, key string) bool
}

type NopDeliveryGuard struct{}

func NewNopDeliveryGuard() NopDeliveryGuard {
	return NopDeliveryGuard{}
}

func (NopDeliveryGuard) Acquire(ctx context.Context, key string) bool {
	return true
}
