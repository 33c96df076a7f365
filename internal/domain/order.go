package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the fulfillment state of an order, independent of payment.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// statusTransitions is the fulfillment graph:
// pending -> accepted -> preparing -> ready -> completed, with cancelled
// and rejected reachable from any state before a terminal one.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusAccepted, OrderStatusRejected, OrderStatusCancelled},
	OrderStatusAccepted:  {OrderStatusPreparing, OrderStatusRejected, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusRejected, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusCompleted, OrderStatusRejected, OrderStatusCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusRejected,
		OrderStatusPreparing, OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// PaymentStatus is the settlement state: whether money has been collected.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

// RefundStatus is the lifecycle of a refund request. The move into
// "requested" is reserved for the customer-facing refund request; admins
// drive the rest.
type RefundStatus string

const (
	RefundStatusNone       RefundStatus = "none"
	RefundStatusRequested  RefundStatus = "requested"
	RefundStatusProcessing RefundStatus = "processing"
	RefundStatusCompleted  RefundStatus = "completed"
	RefundStatusRejected   RefundStatus = "rejected"
)

var refundTransitions = map[RefundStatus][]RefundStatus{
	RefundStatusNone:       {RefundStatusRequested},
	RefundStatusRequested:  {RefundStatusProcessing, RefundStatusRejected},
	RefundStatusProcessing: {RefundStatusCompleted, RefundStatusRejected},
}

func (s RefundStatus) Valid() bool {
	switch s {
	case RefundStatusNone, RefundStatusRequested, RefundStatusProcessing,
		RefundStatusCompleted, RefundStatusRejected:
		return true
	}
	return false
}

func (s RefundStatus) CanTransitionTo(next RefundStatus) bool {
	for _, allowed := range refundTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// OrderItem is an immutable priced copy of a cart line. Price is captured
// when the order is created and never re-read from the catalog.
type OrderItem struct {
	ProductID     primitive.ObjectID `bson:"product" json:"product"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Price         float64            `bson:"price" json:"price"`
	Customization Customization      `bson:"customization" json:"customization"`
}

// Order is an append-only record: created once at checkout, then mutated
// only through status updates and refund requests, never deleted.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user" json:"user"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	Status          OrderStatus        `bson:"status" json:"status"`
	PaymentStatus   PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	PaymentID       string             `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	RefundRequested bool               `bson:"refundRequested" json:"refundRequested"`
	RefundStatus    RefundStatus       `bson:"refundStatus" json:"refundStatus"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
