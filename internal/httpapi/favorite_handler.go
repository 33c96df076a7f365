package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sreemonkavungal/BurgerByte/internal/service"
)

type FavoriteHandler struct {
	users *service.UserService
}

func NewFavoriteHandler(users *service.UserService) *FavoriteHandler {
	return &FavoriteHandler{users: users}
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	products, err := h.users.Favorites(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	productID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "productId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId must be a valid object id")
		return
	}

	products, err := h.users.AddFavorite(r.Context(), user.ID, productID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, products)
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	productID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "productId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId must be a valid object id")
		return
	}

	products, err := h.users.RemoveFavorite(r.Context(), user.ID, productID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}
