package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScrapeRegistry(t *testing.T) {
	reg, err := NewScrapeRegistry()
	require.NoError(t, err)
	require.NotNil(t, reg)
	require.NotNil(t, reg.Handler())
}

func TestNewRosterMetrics(t *testing.T) {
	reg, err := NewScrapeRegistry()
	require.NoError(t, err)

	m, err := NewRosterMetrics(reg)
	require.NoError(t, err)
	require.NotNil(t, m)

	// Registering twice must fail on duplicate names.
	_, err = NewRosterMetrics(reg)
	assert.Error(t, err)
}

func TestRosterMetrics_Counters(t *testing.T) {
	reg, err := NewScrapeRegistry()
	require.NoError(t, err)
	m, err := NewRosterMetrics(reg)
	require.NoError(t, err)

	m.SignupAccepted()
	m.SignupAccepted()
	m.UnregisterAccepted()
	m.RequestRejected(ReasonFull)

	expected := `
# HELP signups_total Total number of accepted signups.
# TYPE signups_total counter
signups_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg.prom, strings.NewReader(expected), "signups_total"))

	expected = `
# HELP roster_rejections_total Total number of rejected roster requests by reason.
# TYPE roster_rejections_total counter
roster_rejections_total{reason="full"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg.prom, strings.NewReader(expected), "roster_rejections_total"))
}

func TestRosterMetrics_SetRoster(t *testing.T) {
	reg, err := NewScrapeRegistry()
	require.NoError(t, err)
	m, err := NewRosterMetrics(reg)
	require.NoError(t, err)

	m.SetRoster("Chess Club", 2, 12)
	m.SetRoster("Chess Club", 3, 12)

	expected := `
# HELP activity_participants Current number of participants per activity.
# TYPE activity_participants gauge
activity_participants{activity="Chess Club"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg.prom, strings.NewReader(expected), "activity_participants"))
}
