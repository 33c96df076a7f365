package events

import (
	"context"
	"time"
)

const (
	TypeOrderCreated         = "order.created"
	TypeOrderStatusUpdated   = "order.status_updated"
	TypeOrderRefundRequested = "order.refund_requested"
)

// OrderEvent is the wire shape published on order lifecycle changes.
type OrderEvent struct {
	EventID   string         `json:"event_id"`
	Type      string         `json:"type"`
	OrderID   string         `json:"order_id"`
	UserID    string         `json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// Publisher emits order lifecycle events. Publishing is best effort: the
// order service logs and continues when a publish fails.
type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, OrderEvent) error { return nil }
func (NopPublisher) Close() error                              { return nil }
