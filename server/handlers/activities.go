package handlers

import (
	"net/http"
)

// ActivitiesHandler handles requests for the full activity listing.
type ActivitiesHandler struct {
	registry ActivityRegistry
}

// NewActivitiesHandler creates a new ActivitiesHandler.
func NewActivitiesHandler(registry ActivityRegistry) *ActivitiesHandler {
	return &ActivitiesHandler{
		registry: registry,
	}
}

// ServeHTTP implements http.Handler.
func (h *ActivitiesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.List())
}
