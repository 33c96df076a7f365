package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sreemonkavungal/BurgerByte/internal/domain"
	"github.com/sreemonkavungal/BurgerByte/internal/service"
)

type AdminHandler struct {
	orders  *service.OrderService
	reports *service.ReportService
	users   *service.UserService
}

func NewAdminHandler(orders *service.OrderService, reports *service.ReportService, users *service.UserService) *AdminHandler {
	return &AdminHandler{
		orders:  orders,
		reports: reports,
		users:   users,
	}
}

type StatusPatchDTO struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
	RefundStatus  *string `json:"refundStatus"`
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a valid object id")
		return
	}

	var patch StatusPatchDTO
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	req := service.StatusUpdateRequest{}
	if patch.Status != nil {
		status := domain.OrderStatus(*patch.Status)
		req.Status = &status
	}
	if patch.PaymentStatus != nil {
		status := domain.PaymentStatus(*patch.PaymentStatus)
		req.PaymentStatus = &status
	}
	if patch.RefundStatus != nil {
		status := domain.RefundStatus(*patch.RefundStatus)
		req.RefundStatus = &status
	}

	order, err := h.orders.UpdateStatus(r.Context(), orderID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *AdminHandler) SalesReport(w http.ResponseWriter, r *http.Request) {
	from, ok := parseDateParam(w, r.URL.Query().Get("from"), false)
	if !ok {
		return
	}
	to, ok := parseDateParam(w, r.URL.Query().Get("to"), true)
	if !ok {
		return
	}

	buckets, err := h.reports.SalesReport(r.Context(), from, to)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, buckets)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// parseDateParam accepts RFC3339 or a bare date. A bare end-of-range date
// covers its whole day.
func parseDateParam(w http.ResponseWriter, value string, endOfDay bool) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, true
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_date", "dates must be RFC3339 or YYYY-MM-DD")
		return nil, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, true
}
