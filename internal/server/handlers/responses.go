package handlers

import (
	"errors"
	"net/http"

	"storepos-system/internal/alerts"
	"storepos-system/internal/auth"
	"storepos-system/internal/catalog"
	"storepos-system/internal/ledger"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func successResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func errorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}

// statusForError maps the service error taxonomy onto HTTP statuses. Every
// sentinel surfaces as a user-facing message; anything unrecognized is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrProductNotFound),
		errors.Is(err, ledger.ErrSupplierNotFound),
		errors.Is(err, ledger.ErrOrderNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, catalog.ErrSupplierNotFound),
		errors.Is(err, alerts.ErrProductNotFound),
		errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, ledger.ErrInsufficientStock),
		errors.Is(err, ledger.ErrInvalidOrderState),
		errors.Is(err, catalog.ErrDuplicateBarcode),
		errors.Is(err, catalog.ErrProductReferenced),
		errors.Is(err, auth.ErrDuplicateUsername):
		return http.StatusConflict

	case errors.Is(err, ledger.ErrInvalidQuantity),
		errors.Is(err, ledger.ErrInvalidCost),
		errors.Is(err, catalog.ErrPriceBelowCost),
		errors.Is(err, catalog.ErrInvalidAmount),
		errors.Is(err, alerts.ErrInvalidThreshold),
		errors.Is(err, auth.ErrPasswordMismatch),
		errors.Is(err, auth.ErrPasswordTooShort):
		return http.StatusUnprocessableEntity

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrWrongCurrentPassword):
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}

func serviceError(err error) (int, APIResponse) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		return status, errorResponse("Internal server error")
	}
	return status, errorResponse(err.Error())
}
