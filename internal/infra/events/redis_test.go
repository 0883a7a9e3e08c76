//go:build unit

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"slotbook/internal/infra/events"
	"slotbook/internal/pkg/config"
	"slotbook/internal/usecase/shared"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPublisher(t *testing.T) {
	mr := miniredis.RunT(t)

	client := events.NewRedisClient(config.RedisConfig{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sub := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = sub.Close() })

	ctx := context.Background()
	pubsub := sub.Subscribe(ctx, "slotbook:events")
	t.Cleanup(func() { _ = pubsub.Close() })

	// Wait for the subscription before publishing.
	_, err := pubsub.Receive(ctx)
	require.NoError(t, err)

	publisher := events.NewRedisPublisher(client, "slotbook:events")
	err = publisher.Publish(ctx, shared.EventBookingCreated, map[string]any{"booking_id": "b-1"})
	require.NoError(t, err)

	select {
	case msg := <-pubsub.Channel():
		var got struct {
			Type       string         `json:"type"`
			Payload    map[string]any `json:"payload"`
			OccurredAt time.Time      `json:"occurred_at"`
		}
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, shared.EventBookingCreated, got.Type)
		assert.Equal(t, "b-1", got.Payload["booking_id"])
		assert.False(t, got.OccurredAt.IsZero())
	case <-time.After(3 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, shared.NoopPublisher{}.Publish(context.Background(), shared.EventSlotsGenerated, nil))
}
