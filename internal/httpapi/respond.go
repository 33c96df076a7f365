package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sreemonkavungal/BurgerByte/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// respondServiceError converts service error kinds to HTTP status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	var httpStatus int
	var code string

	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrUserNotFound):
		httpStatus = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrUnknownStatus),
		errors.Is(err, service.ErrIllegalTransition),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, service.ErrProductUnavailable),
		errors.Is(err, service.ErrRefundAlreadyRequested):
		httpStatus = http.StatusBadRequest
		code = "invalid_argument"
	case errors.Is(err, service.ErrNotOrderOwner):
		httpStatus = http.StatusForbidden
		code = "permission_denied"
	case errors.Is(err, service.ErrInvalidCredentials):
		httpStatus = http.StatusUnauthorized
		code = "unauthenticated"
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrConflict):
		httpStatus = http.StatusConflict
		code = "conflict"
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondError(w, httpStatus, code, err.Error())
}
