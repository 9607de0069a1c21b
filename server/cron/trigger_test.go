package cron

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunnable is a test implementation of Runnable.
type mockRunnable struct {
	runCount atomic.Int32
	runErr   error
}

func (m *mockRunnable) Run() error {
	m.runCount.Add(1)
	return m.runErr
}

func TestNewTrigger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{
			name: "valid spec - daily at 2am",
			spec: "0 2 * * *",
		},
		{
			name: "valid spec - every five minutes",
			spec: "*/5 * * * *",
		},
		{
			name: "valid spec - every minute",
			spec: "* * * * *",
		},
		{
			name:    "invalid spec - empty",
			spec:    "",
			wantErr: true,
		},
		{
			name:    "invalid spec - wrong format",
			spec:    "not a cron spec",
			wantErr: true,
		},
		{
			name:    "invalid spec - too few fields",
			spec:    "0 2 *",
			wantErr: true,
		},
		{
			name:    "invalid spec - invalid value",
			spec:    "60 2 * * *",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trigger, err := NewTrigger(tt.spec, &mockRunnable{}, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidCronSpec)
				assert.Nil(t, trigger)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, trigger)
		})
	}
}

func TestTrigger_NextRun(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	trigger, err := NewTrigger("* * * * *", &mockRunnable{}, logger)
	require.NoError(t, err)

	next := trigger.NextRun()
	assert.True(t, next.After(time.Now()))
	assert.True(t, next.Before(time.Now().Add(61*time.Second)))
}

func TestTrigger_StartRespectsCancellation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	runnable := &mockRunnable{}

	trigger, err := NewTrigger("0 2 * * *", runnable, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	trigger.Start(ctx)
	cancel()

	// Give the loop a moment to observe cancellation; nothing should run.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), runnable.runCount.Load())
}
