package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStatusProvider struct {
	activities   int
	participants int
	startedAt    time.Time
	hostname     string
	nextPush     *time.Time
}

func (m *mockStatusProvider) Stats() (int, int)    { return m.activities, m.participants }
func (m *mockStatusProvider) StartedAt() time.Time { return m.startedAt }
func (m *mockStatusProvider) Hostname() string     { return m.hostname }
func (m *mockStatusProvider) NextPush() *time.Time { return m.nextPush }

func TestStatusHandler(t *testing.T) {
	next := time.Now().Add(5 * time.Minute)
	provider := &mockStatusProvider{
		activities:   11,
		participants: 22,
		startedAt:    time.Now().Add(-time.Hour),
		hostname:     "school-01",
		nextPush:     &next,
	}
	handler := NewStatusHandler(provider)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 11, resp.Activities)
	assert.Equal(t, 22, resp.Participants)
	assert.Equal(t, "school-01", resp.Hostname)
	assert.True(t, resp.Push.Scheduled)
	require.NotNil(t, resp.Push.NextPush)
}

func TestStatusHandler_NoPushConfigured(t *testing.T) {
	handler := NewStatusHandler(&mockStatusProvider{hostname: "school-01"})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Push.Scheduled)
	assert.Nil(t, resp.Push.NextPush)
}
