package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mergington/rosterd/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsHandler(t *testing.T) {
	store := audit.NewStore(10)
	store.Record(audit.Event{Action: audit.ActionSignup, Activity: "Chess Club", Email: "a@mergington.edu"})
	store.Record(audit.Event{Action: audit.ActionUnregister, Activity: "Chess Club", Email: "a@mergington.edu"})

	handler := NewEventsHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var events []audit.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 2)

	// Most recent first.
	assert.Equal(t, audit.ActionUnregister, events[0].Action)
	assert.Equal(t, audit.ActionSignup, events[1].Action)
}

func TestEventsHandler_Empty(t *testing.T) {
	handler := NewEventsHandler(audit.NewStore(10))

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
