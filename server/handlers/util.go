package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is returned when an operation is rejected. The field is
// named detail to keep the wire contract of the original service.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is returned when an operation succeeds.
type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}
