package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sreemonkavungal/BurgerByte/internal/domain"
	"github.com/sreemonkavungal/BurgerByte/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type OrderLineDTO struct {
	ProductID     string               `json:"product"`
	Quantity      int                  `json:"quantity"`
	Customization domain.Customization `json:"customization"`
}

type CreateOrderRequestDTO struct {
	Items         []OrderLineDTO `json:"items"`
	PaymentID     string         `json:"paymentId"`
	PaymentStatus string         `json:"paymentStatus"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var req CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	lines := make([]service.OrderLineRequest, len(req.Items))
	for i, item := range req.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_product_id", "product must be a valid object id")
			return
		}
		lines[i] = service.OrderLineRequest{
			ProductID:     productID,
			Quantity:      item.Quantity,
			Customization: item.Customization,
		}
	}

	order, err := h.orders.Create(r.Context(), user, lines, req.PaymentID, domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	orders, err := h.orders.ListMine(r.Context(), user)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a valid object id")
		return
	}

	view, err := h.orders.Get(r.Context(), user, orderID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (h *OrderHandler) RequestRefund(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a valid object id")
		return
	}

	order, err := h.orders.RequestRefund(r.Context(), user, orderID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}
