package events

import (
	"context"
	"encoding/json"
	"time"

	"slotbook/internal/pkg/config"
	"slotbook/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisPublisher broadcasts state-change events on a pub/sub channel.
// Consumers (cache invalidation, notification fan-out) live outside this
// service and just subscribe to the channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

type envelope struct {
	Type       string    `json:"type"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (p *RedisPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	data, err := json.Marshal(envelope{
		Type:       eventType,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return errs.Wrap(err, "failed to marshal event")
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return errs.Wrap(err, "failed to publish event")
	}
	return nil
}
