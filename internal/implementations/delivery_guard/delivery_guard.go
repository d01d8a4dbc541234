package deliveryguard

import (
	"context"
	e "oroshine/internal/core/domain/errors"
	"oroshine/internal/core/domain/logging"
	"time"

	"github.com/go-redis/redis/v9"
)

// Redis claims delivery ownership with SET NX under a TTL. It fails open:
// when Redis is unavailable the send proceeds, trading a possible duplicate
// notification for never dropping one.
type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
	ttl         time.Duration
}

func NewRedis(redisClient *redis.Client, log logging.Logger, ttl time.Duration) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Redis{redisClient: redisClient, log: log, ttl: ttl}
}

func (g *Redis) Acquire(ctx context.Context, key string) bool {
	ok, err := g.redisClient.SetNX(ctx, "notification-delivered::"+key, 1, g.ttl).Result()
	if err != nil {
		g.log.Error(
			ctx,
			"Could not check delivery guard due to Redis client error.",
			logging.Entry("key", key),
			logging.Entry("err", err),
		)
		return true
	}
	return ok
}
