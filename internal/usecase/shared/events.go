package shared

import "context"

// State-change events emitted by the write side. Delivery to interested
// parties (cache invalidation, notifications) happens outside this system.
const (
	EventSlotsGenerated   = "slots_generated"
	EventSlotStatusSet    = "slot_status_set"
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCancelled = "booking_cancelled"
)

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// NoopPublisher is used in tests and when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error {
	return nil
}
