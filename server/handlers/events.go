package handlers

import (
	"net/http"
)

// EventsHandler handles requests for the roster change log.
type EventsHandler struct {
	provider EventsProvider
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(provider EventsProvider) *EventsHandler {
	return &EventsHandler{
		provider: provider,
	}
}

// ServeHTTP implements http.Handler.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.provider.Events())
}
