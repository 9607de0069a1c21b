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

// SignupHandler handles requests to sign a student up for an activity.
type SignupHandler struct {
	logger   *slog.Logger
	registry ActivityRegistry
	recorder Recorder
}

// NewSignupHandler creates a new SignupHandler.
func NewSignupHandler(logger *slog.Logger, registry ActivityRegistry, recorder Recorder) *SignupHandler {
	return &SignupHandler{
		logger:   logger,
		registry: registry,
		recorder: recorder,
	}
}

// ServeHTTP implements http.Handler.
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// ServeMux decodes the path segment, so names with spaces arrive
	// ready for lookup.
	name := r.PathValue("name")
	email := r.URL.Query().Get("email")
	if email == "" {
		h.recorder.RequestRejected(metrics.ReasonBadRequest)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Detail: "email query parameter is required",
		})
		return
	}

	if err := h.registry.Signup(name, email); err != nil {
		h.reject(w, name, email, err)
		return
	}

	h.logger.Info("signup accepted", "activity", name, "email", email)
	h.recorder.RosterChanged(audit.ActionSignup, name, email)

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, name),
	})
}

func (h *SignupHandler) reject(w http.ResponseWriter, name, email string, err error) {
	h.logger.Info("signup rejected", "activity", name, "email", email, "reason", err)

	switch {
	case errors.Is(err, registry.ErrActivityNotFound):
		h.recorder.RequestRejected(metrics.ReasonNotFound)
		writeJSON(w, http.StatusNotFound, ErrorResponse{Detail: "Activity not found"})
	case errors.Is(err, registry.ErrAlreadySignedUp):
		h.recorder.RequestRejected(metrics.ReasonDuplicate)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "Student is already signed up"})
	case errors.Is(err, registry.ErrActivityFull):
		h.recorder.RequestRejected(metrics.ReasonFull)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "Activity is full"})
	default:
		h.logger.Error("signup failed", "activity", name, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
	}
}
