package bootstrap

import (
	"context"

	"slotbook/internal/infra/events"
	"slotbook/internal/pkg/config"
	"slotbook/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		fx.Annotate(
			NewEventPublisher,
			fx.As(new(shared.EventPublisher)),
		),
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := events.NewRedisClient(cfg.Redis)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}

func NewEventPublisher(client *redis.Client, cfg config.Config) *events.RedisPublisher {
	return events.NewRedisPublisher(client, cfg.Redis.EventChannel)
}
