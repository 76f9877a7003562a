package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse carries a plain message in detail, e.g. {"detail":"User not found"}.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationError is one entry of a 422 response.
type ValidationError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type ValidationErrorResponse struct {
	Detail []ValidationError `json:"detail"`
}

func NewErrorResponse(detail string) ErrorResponse {
	return ErrorResponse{Detail: detail}
}

func NewValidationErrorResponse(errs ...ValidationError) ValidationErrorResponse {
	if errs == nil {
		errs = []ValidationError{}
	}
	return ValidationErrorResponse{Detail: errs}
}

// WriteJSON sends data with the given status. Encode failures are dropped:
// the status line is already out and the client sees a truncated body.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
