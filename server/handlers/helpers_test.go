package handlers

import (
	"testing"

	"github.com/mergington/rosterd/audit"
	"github.com/mergington/rosterd/registry"
	"github.com/stretchr/testify/require"
)

// mockRecorder captures audit/metrics notifications from handlers.
type mockRecorder struct {
	changed  []audit.Event
	rejected []string
}

func (m *mockRecorder) RosterChanged(action audit.Action, activity, email string) {
	m.changed = append(m.changed, audit.Event{Action: action, Activity: activity, Email: email})
}

func (m *mockRecorder) RequestRejected(reason string) {
	m.rejected = append(m.rejected, reason)
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg, err := registry.New([]registry.SeedActivity{
		{
			Name: "Chess Club",
			Activity: registry.Activity{
				Description:     "Learn strategies and compete in chess tournaments",
				Schedule:        "Fridays, 3:30 PM - 5:00 PM",
				MaxParticipants: 12,
				Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
			},
		},
		{
			Name: "Photography Club",
			Activity: registry.Activity{
				Description:     "Capture and edit photos of school events",
				Schedule:        "Wednesdays, 3:30 PM - 4:30 PM",
				MaxParticipants: 3,
				Participants:    []string{"isabella@mergington.edu", "jack@mergington.edu"},
			},
		},
	})
	require.NoError(t, err)
	return reg
}
