package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"agropos/services"
)

// statusForError сопоставляет ошибку сервиса с HTTP статусом
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrDebtNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrSaleNotFound),
		errors.Is(err, services.ErrSupplierNotFound),
		errors.Is(err, services.ErrPurchaseNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDebtLimitExceeded),
		errors.Is(err, services.ErrCustomerHasDebt),
		errors.Is(err, services.ErrPurchaseNotPending):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrCustomerRequired),
		errors.Is(err, services.ErrInsufficientPaid),
		errors.Is(err, services.ErrBadBackupSignature):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON отправляет ответ в формате JSON
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
