package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sreemonkavungal/BurgerByte/internal/domain"
	"github.com/sreemonkavungal/BurgerByte/internal/service"
)

type CartHandler struct {
	cart *service.CartService
}

func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

type AddCartLineRequestDTO struct {
	ProductID     string               `json:"product"`
	Quantity      int                  `json:"quantity"`
	Customization domain.Customization `json:"customization"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	views, err := h.cart.Get(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, views)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var req AddCartLineRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product must be a valid object id")
		return
	}

	views, err := h.cart.AddOrUpdate(r.Context(), user, productID, req.Quantity, req.Customization)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, views)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	lineID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "itemId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "itemId must be a valid object id")
		return
	}

	views, err := h.cart.Remove(r.Context(), user.ID, lineID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, views)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	if err := h.cart.Clear(r.Context(), user.ID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, []domain.CartLineView{})
}
