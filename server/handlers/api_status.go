package handlers

import (
	"net/http"
	"time"

	"github.com/mergington/rosterd/buildinfo"
)

// PushStatus describes the scheduled metrics push.
type PushStatus struct {
	Scheduled bool       `json:"scheduled"`
	NextPush  *time.Time `json:"next_push,omitempty"`
}

// StatusResponse is the consolidated response for /api/status.
type StatusResponse struct {
	Build        buildinfo.Properties `json:"build"`
	Hostname     string               `json:"hostname"`
	StartedAt    time.Time            `json:"started_at"`
	Activities   int                  `json:"activities"`
	Participants int                  `json:"participants"`
	Push         PushStatus           `json:"push"`
}

// StatusHandler handles requests for the consolidated status endpoint.
type StatusHandler struct {
	provider StatusProvider
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(provider StatusProvider) *StatusHandler {
	return &StatusHandler{
		provider: provider,
	}
}

// ServeHTTP implements http.Handler.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	activities, participants := h.provider.Stats()
	nextPush := h.provider.NextPush()

	resp := StatusResponse{
		Build:        buildinfo.Get(),
		Hostname:     h.provider.Hostname(),
		StartedAt:    h.provider.StartedAt(),
		Activities:   activities,
		Participants: participants,
		Push: PushStatus{
			Scheduled: nextPush != nil,
			NextPush:  nextPush,
		},
	}

	writeJSON(w, http.StatusOK, resp)
}
