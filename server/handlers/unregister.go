package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mergington/rosterd/audit"
	"github.com/mergington/rosterd/metrics"
	"github.com/mergington/rosterd/registry"
)

// UnregisterHandler handles requests to remove a student from an activity.
type UnregisterHandler struct {
	logger   *slog.Logger
	registry ActivityRegistry
	recorder Recorder
}

// NewUnregisterHandler creates a new UnregisterHandler.
func NewUnregisterHandler(logger *slog.Logger, registry ActivityRegistry, recorder Recorder) *UnregisterHandler {
	return &UnregisterHandler{
		logger:   logger,
		registry: registry,
		recorder: recorder,
	}
}

// ServeHTTP implements http.Handler.
func (h *UnregisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	email := r.URL.Query().Get("email")
	if email == "" {
		h.recorder.RequestRejected(metrics.ReasonBadRequest)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Detail: "email query parameter is required",
		})
		return
	}

	if err := h.registry.Unregister(name, email); err != nil {
		h.reject(w, name, email, err)
		return
	}

	h.logger.Info("unregister accepted", "activity", name, "email", email)
	h.recorder.RosterChanged(audit.ActionUnregister, name, email)

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", email, name),
	})
}

func (h *UnregisterHandler) reject(w http.ResponseWriter, name, email string, err error) {
	h.logger.Info("unregister rejected", "activity", name, "email", email, "reason", err)

	switch {
	case errors.Is(err, registry.ErrActivityNotFound):
		h.recorder.RequestRejected(metrics.ReasonNotFound)
		writeJSON(w, http.StatusNotFound, ErrorResponse{Detail: "Activity not found"})
	case errors.Is(err, registry.ErrNotSignedUp):
		h.recorder.RequestRejected(metrics.ReasonNotSignedUp)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "Student is not signed up for this activity"})
	default:
		h.logger.Error("unregister failed", "activity", name, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
	}
}
