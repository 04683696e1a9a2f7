package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-user-accounts/internal/validation"
)

// ErrorResponse represents a generic error response body.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: User not found
	Error string `json:"error"`
}

// ValidationErrorResponse carries every field-level validation failure
// found in a request payload.
// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	// Field failures
	Errors []*validation.FieldError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeValidationErrors(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: errs})
}
