package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sreemonkavungal/BurgerByte/internal/domain"
	"github.com/sreemonkavungal/BurgerByte/internal/events"
	"github.com/sreemonkavungal/BurgerByte/internal/repository"
)

// OrderLineRequest is one requested order line as submitted at checkout.
// Quantity 0 means unspecified and defaults to 1.
type OrderLineRequest struct {
	ProductID     primitive.ObjectID
	Quantity      int
	Customization domain.Customization
}

// StatusUpdateRequest is a partial, privileged update of an order's
// lifecycle fields. Nil fields are left untouched.
type StatusUpdateRequest struct {
	Status        *domain.OrderStatus
	PaymentStatus *domain.PaymentStatus
	RefundStatus  *domain.RefundStatus
}

// OrderView is an order with current catalog details attached for display.
// Prices on the attached products are informational; the order's own item
// prices are the authoritative snapshot.
type OrderView struct {
	*domain.Order
	Products map[string]*domain.Product `json:"products,omitempty"`
}

// OrderService creates orders with price snapshots and drives their
// fulfillment, payment and refund state.
type OrderService struct {
	orders    repository.OrderRepository
	catalog   Catalog
	publisher events.Publisher
}

func NewOrderService(orders repository.OrderRepository, catalog Catalog, publisher events.Publisher) *OrderService {
	return &OrderService{
		orders:    orders,
		catalog:   catalog,
		publisher: publisher,
	}
}

// Create prices the requested lines against the catalog in one batched
// lookup and persists a new pending order. Prices are taken from the
// catalog, never from the request, and are fixed from this point on. If
// any product is missing the whole order fails; nothing partial is stored.
func (s *OrderService) Create(ctx context.Context, user *domain.User, lines []OrderLineRequest, paymentID string, paymentStatus domain.PaymentStatus) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	if paymentStatus == "" {
		paymentStatus = domain.PaymentStatusPending
	}
	if !paymentStatus.Valid() {
		return nil, ErrUnknownStatus
	}

	ids := make([]primitive.ObjectID, 0, len(lines))
	seen := make(map[primitive.ObjectID]bool, len(lines))
	for _, line := range lines {
		if line.Quantity < 0 {
			return nil, ErrInvalidQuantity
		}
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	products, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, len(lines))
	var total float64
	for i, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}

		quantity := line.Quantity
		if quantity == 0 {
			quantity = 1
		}

		items[i] = domain.OrderItem{
			ProductID:     line.ProductID,
			Quantity:      quantity,
			Price:         product.Price,
			Customization: line.Customization,
		}
		total += product.Price * float64(quantity)
	}

	order := &domain.Order{
		UserID:          user.ID,
		Items:           items,
		TotalAmount:     total,
		Status:          domain.OrderStatusPending,
		PaymentStatus:   paymentStatus,
		PaymentID:       paymentID,
		RefundRequested: false,
		RefundStatus:    domain.RefundStatusNone,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeOrderCreated, order, map[string]any{
		"totalAmount":   order.TotalAmount,
		"paymentStatus": order.PaymentStatus,
	})

	return order, nil
}

// Get returns an order with its line items resolved against the current
// catalog. Only the owner or an admin may read it.
func (s *OrderService) Get(ctx context.Context, user *domain.User, orderID primitive.ObjectID) (*OrderView, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapOrderErr(err)
	}
	if order.UserID != user.ID && !user.IsAdmin() {
		return nil, ErrNotOrderOwner
	}

	return s.resolve(ctx, order)
}

// ListMine returns the user's orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, user *domain.User) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, user.ID)
}

// ListAll returns every order, optionally filtered by fulfillment status.
func (s *OrderService) ListAll(ctx context.Context, status string) ([]*domain.Order, error) {
	filter := domain.OrderStatus(status)
	if status != "" && !filter.Valid() {
		return nil, ErrUnknownStatus
	}
	return s.orders.List(ctx, filter)
}

// RequestRefund is the only path that moves refundStatus into "requested".
// The flag and the status are flipped together in one conditional write, so
// a second request observes AlreadyRequested and changes nothing.
func (s *OrderService) RequestRefund(ctx context.Context, user *domain.User, orderID primitive.ObjectID) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapOrderErr(err)
	}
	if order.UserID != user.ID {
		return nil, ErrNotOrderOwner
	}
	if order.RefundRequested {
		return nil, ErrRefundAlreadyRequested
	}

	updated, err := s.orders.MarkRefundRequested(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrRefundAlreadyRequested) {
			return nil, ErrRefundAlreadyRequested
		}
		return nil, mapOrderErr(err)
	}

	s.publish(ctx, events.TypeOrderRefundRequested, updated, nil)
	return updated, nil
}

// UpdateStatus applies a privileged partial update. Fulfillment moves only
// along the transition graph; payment status is settable freely; refund
// status follows its own graph and can never be set to "requested" here.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, req StatusUpdateRequest) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapOrderErr(err)
	}

	update := repository.StatusUpdate{}

	if req.Status != nil && *req.Status != order.Status {
		if !req.Status.Valid() {
			return nil, ErrUnknownStatus
		}
		if !order.Status.CanTransitionTo(*req.Status) {
			return nil, ErrIllegalTransition
		}
		update.Status = req.Status
	}

	if req.PaymentStatus != nil && *req.PaymentStatus != order.PaymentStatus {
		if !req.PaymentStatus.Valid() {
			return nil, ErrUnknownStatus
		}
		update.PaymentStatus = req.PaymentStatus
	}

	if req.RefundStatus != nil && *req.RefundStatus != order.RefundStatus {
		if !req.RefundStatus.Valid() {
			return nil, ErrUnknownStatus
		}
		if *req.RefundStatus == domain.RefundStatusRequested {
			return nil, ErrIllegalTransition
		}
		if !order.RefundStatus.CanTransitionTo(*req.RefundStatus) {
			return nil, ErrIllegalTransition
		}
		current := order.RefundStatus
		update.RefundStatus = req.RefundStatus
		update.ExpectedRefundStatus = &current
	}

	if update.Status == nil && update.PaymentStatus == nil && update.RefundStatus == nil {
		return order, nil
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, update)
	if err != nil {
		if errors.Is(err, repository.ErrConcurrentModification) {
			return nil, ErrConflict
		}
		return nil, mapOrderErr(err)
	}

	s.publish(ctx, events.TypeOrderStatusUpdated, updated, map[string]any{
		"status":        updated.Status,
		"paymentStatus": updated.PaymentStatus,
		"refundStatus":  updated.RefundStatus,
	})

	return updated, nil
}

func (s *OrderService) resolve(ctx context.Context, order *domain.Order) (*OrderView, error) {
	ids := make([]primitive.ObjectID, 0, len(order.Items))
	seen := make(map[primitive.ObjectID]bool, len(order.Items))
	for _, item := range order.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	view := &OrderView{Order: order, Products: make(map[string]*domain.Product, len(products))}
	for id, product := range products {
		view.Products[id.Hex()] = product
	}
	return view, nil
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order, payload map[string]any) {
	err := s.publisher.Publish(ctx, events.OrderEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		OrderID:   order.ID.Hex(),
		UserID:    order.UserID.Hex(),
		CreatedAt: time.Now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		log.Printf("failed to publish %s for order %s: %v", eventType, order.ID.Hex(), err)
	}
}

func mapOrderErr(err error) error {
	if errors.Is(err, repository.ErrOrderNotFound) {
		return ErrOrderNotFound
	}
	return err
}
